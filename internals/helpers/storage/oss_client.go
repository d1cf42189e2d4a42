package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"net/url"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// Prefix folder upload (mengikuti konvensi disk lama)
const (
	DirLessonAttachments = "lessons/attachments"
	DirCourseThumbnails  = "courses/thumbnails"
	DirBootcampThumbs    = "bootcamps/thumbnails"
)

var maxUploadSize = int64(10 * 1024 * 1024)

/* =======================================================================
   OSS Service
======================================================================= */

type OSSService struct {
	Bucket    *oss.Bucket
	BaseURL   string // https://<bucket>.<endpoint>
	KeyPrefix string // optional, mis. "hairnerds"
}

func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := strings.TrimSpace(os.Getenv("OSS_ENDPOINT"))
	keyID := strings.TrimSpace(os.Getenv("OSS_ACCESS_KEY_ID"))
	keySecret := strings.TrimSpace(os.Getenv("OSS_ACCESS_KEY_SECRET"))
	bucketName := strings.TrimSpace(os.Getenv("OSS_BUCKET"))
	if endpoint == "" || keyID == "" || keySecret == "" || bucketName == "" {
		return nil, fmt.Errorf("OSS env belum lengkap (OSS_ENDPOINT/OSS_ACCESS_KEY_ID/OSS_ACCESS_KEY_SECRET/OSS_BUCKET)")
	}

	client, err := oss.New(endpoint, keyID, keySecret)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, err
	}

	base := strings.TrimSpace(os.Getenv("OSS_PUBLIC_BASE_URL"))
	if base == "" {
		host := strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")
		base = fmt.Sprintf("https://%s.%s", bucketName, host)
	}

	return &OSSService{
		Bucket:    bucket,
		BaseURL:   strings.TrimRight(base, "/"),
		KeyPrefix: strings.Trim(prefix, "/"),
	}, nil
}

// UploadFromFormFileToDir menaruh file multipart apa adanya di bawah dir.
// Balikannya: public URL + object key.
func (s *OSSService) UploadFromFormFileToDir(ctx context.Context, dir string, fh *multipart.FileHeader) (string, string, error) {
	if fh == nil {
		return "", "", fmt.Errorf("file kosong")
	}
	if fh.Size > maxUploadSize {
		return "", "", fmt.Errorf("ukuran file melebihi batas %d bytes", maxUploadSize)
	}

	src, err := fh.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	key := s.buildObjectKey(dir, fh.Filename)
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(path.Ext(fh.Filename))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	opts := []oss.Option{
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.putWithContext(ctx, key, src, opts...); err != nil {
		return "", "", err
	}
	return s.PublicURL(key), key, nil
}

func (s *OSSService) putWithContext(ctx context.Context, key string, r io.Reader, opts ...oss.Option) error {
	done := make(chan error, 1)
	go func() { done <- s.Bucket.PutObject(key, r, opts...) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *OSSService) DeleteObject(ctx context.Context, key string) error {
	done := make(chan error, 1)
	go func() { done <- s.Bucket.DeleteObject(key) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *OSSService) PublicURL(key string) string {
	return s.BaseURL + "/" + strings.TrimLeft(key, "/")
}

// IsOwnURL: true bila URL menunjuk ke bucket kita (boleh dihapus blob-nya).
// URL eksternal (youtube dsb.) TIDAK pernah dihapus dari storage.
func (s *OSSService) IsOwnURL(publicURL string) bool {
	return strings.HasPrefix(publicURL, s.BaseURL+"/")
}

// ExtractKeyFromPublicURL mengembalikan object key dari public URL milik kita.
func (s *OSSService) ExtractKeyFromPublicURL(publicURL string) (string, error) {
	if !s.IsOwnURL(publicURL) {
		return "", fmt.Errorf("bukan URL milik bucket ini: %s", publicURL)
	}
	u, err := url.Parse(publicURL)
	if err != nil {
		return "", err
	}
	return strings.TrimLeft(u.Path, "/"), nil
}

// DeleteByPublicURL menghapus object dari URL publik milik kita; no-op untuk URL eksternal.
func (s *OSSService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	if publicURL == "" || !s.IsOwnURL(publicURL) {
		return nil
	}
	key, err := s.ExtractKeyFromPublicURL(publicURL)
	if err != nil {
		return err
	}
	return s.DeleteObject(ctx, key)
}

func (s *OSSService) buildObjectKey(dir, filename string) string {
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	ext := strings.ToLower(path.Ext(filename))
	name := fmt.Sprintf("%s-%s%s", safePart(base), randHex(6), ext)

	parts := []string{}
	if s.KeyPrefix != "" {
		parts = append(parts, s.KeyPrefix)
	}
	if d := strings.Trim(dir, "/"); d != "" {
		parts = append(parts, d)
	}
	parts = append(parts, name)
	return strings.Join(parts, "/")
}

func safePart(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		out = "file"
	}
	return out
}

func randHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

/* =======================================================================
   Default service dari ENV (lazy, sekali)
======================================================================= */

var (
	defaultSvc  *OSSService
	defaultOnce sync.Once
	defaultErr  error
)

func Default() (*OSSService, error) {
	defaultOnce.Do(func() {
		defaultSvc, defaultErr = NewOSSServiceFromEnv(os.Getenv("OSS_KEY_PREFIX"))
		if defaultErr != nil {
			log.Printf("[WARN] OSS belum terkonfigurasi: %v", defaultErr)
		}
	})
	return defaultSvc, defaultErr
}

// DeleteByPublicURLENV: convenience pakai default service + timeout sendiri.
func DeleteByPublicURLENV(publicURL string, timeout time.Duration) error {
	svc, err := Default()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return svc.DeleteByPublicURL(ctx, publicURL)
}
