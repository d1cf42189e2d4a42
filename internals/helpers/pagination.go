package helper

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

/* ===============================
   Paging resolver (query → page/perPage/offset)
=================================*/

type Paging struct {
	Page    int
	PerPage int
	Offset  int
	Limit   int
}

// ResolvePaging membaca ?page= & ?per_page= (atau alias ?limit=) dan normalisasi.
func ResolvePaging(c *fiber.Ctx, defaultPerPage, maxPerPage int) Paging {
	pageStr := strings.TrimSpace(c.Query("page", "1"))

	perPageStr := strings.TrimSpace(c.Query("per_page"))
	if perPageStr == "" {
		perPageStr = strings.TrimSpace(c.Query("limit", strconv.Itoa(defaultPerPage)))
	}

	page, _ := strconv.Atoi(pageStr)
	if page < 1 {
		page = 1
	}

	perPage, _ := strconv.Atoi(perPageStr)
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if maxPerPage > 0 && perPage > maxPerPage {
		perPage = maxPerPage
	}

	return Paging{
		Page:    page,
		PerPage: perPage,
		Offset:  (page - 1) * perPage,
		Limit:   perPage,
	}
}

/* ===============================
   Paginated envelope {data, links, meta}
=================================*/

type PageLinks struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

type PageMeta struct {
	CurrentPage int   `json:"current_page"`
	From        int   `json:"from"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	To          int   `json:"to"`
	Total       int64 `json:"total"`
}

type PaginatedResponse struct {
	Data  interface{} `json:"data"`
	Links PageLinks   `json:"links"`
	Meta  PageMeta    `json:"meta"`
}

// Paginate membungkus list hasil query ke envelope {data, links, meta}.
// count = jumlah item pada halaman ini (untuk from/to).
func Paginate(path string, data interface{}, count int, total int64, p Paging) PaginatedResponse {
	lastPage := int((total + int64(p.PerPage) - 1) / int64(p.PerPage)) // ceil
	if lastPage == 0 {
		lastPage = 1
	}

	from := 0
	to := 0
	if count > 0 {
		from = p.Offset + 1
		to = p.Offset + count
	}

	pageURL := func(page int) string {
		return fmt.Sprintf("%s?page=%d&per_page=%d", path, page, p.PerPage)
	}

	links := PageLinks{
		First: pageURL(1),
		Last:  pageURL(lastPage),
	}
	if p.Page > 1 {
		prev := pageURL(p.Page - 1)
		links.Prev = &prev
	}
	if p.Page < lastPage {
		next := pageURL(p.Page + 1)
		links.Next = &next
	}

	return PaginatedResponse{
		Data:  data,
		Links: links,
		Meta: PageMeta{
			CurrentPage: p.Page,
			From:        from,
			LastPage:    lastPage,
			PerPage:     p.PerPage,
			To:          to,
			Total:       total,
		},
	}
}

// SuccessList: list endpoint selalu balas envelope paginated
func SuccessList(c *fiber.Ctx, message string, resp PaginatedResponse) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": message,
		"data":    resp.Data,
		"links":   resp.Links,
		"meta":    resp.Meta,
	})
}
