package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveViaRequest(t *testing.T, target string, defaultPerPage, maxPerPage int) Paging {
	t.Helper()
	app := fiber.New()
	var got Paging
	app.Get("/items", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, defaultPerPage, maxPerPage)
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return got
}

func TestResolvePaging(t *testing.T) {
	t.Run("default tanpa query", func(t *testing.T) {
		p := resolveViaRequest(t, "/items", 15, 100)
		assert.Equal(t, Paging{Page: 1, PerPage: 15, Offset: 0, Limit: 15}, p)
	})

	t.Run("page dan per_page dibaca", func(t *testing.T) {
		p := resolveViaRequest(t, "/items?page=3&per_page=20", 15, 100)
		assert.Equal(t, Paging{Page: 3, PerPage: 20, Offset: 40, Limit: 20}, p)
	})

	t.Run("alias limit dipakai bila per_page kosong", func(t *testing.T) {
		p := resolveViaRequest(t, "/items?limit=5", 15, 100)
		assert.Equal(t, 5, p.PerPage)
	})

	t.Run("page negatif dinormalisasi ke 1", func(t *testing.T) {
		p := resolveViaRequest(t, "/items?page=-2", 15, 100)
		assert.Equal(t, 1, p.Page)
		assert.Zero(t, p.Offset)
	})

	t.Run("per_page melebihi max di-clamp", func(t *testing.T) {
		p := resolveViaRequest(t, "/items?per_page=9999", 15, 100)
		assert.Equal(t, 100, p.PerPage)
	})

	t.Run("per_page bukan angka jatuh ke default", func(t *testing.T) {
		p := resolveViaRequest(t, "/items?per_page=abc", 15, 100)
		assert.Equal(t, 15, p.PerPage)
	})
}

func TestPaginate(t *testing.T) {
	items := []string{"a", "b", "c"}

	t.Run("halaman tengah punya prev dan next", func(t *testing.T) {
		p := Paging{Page: 2, PerPage: 3, Offset: 3, Limit: 3}
		resp := Paginate("/api/courses", items, len(items), 10, p)

		assert.Equal(t, "/api/courses?page=1&per_page=3", resp.Links.First)
		assert.Equal(t, "/api/courses?page=4&per_page=3", resp.Links.Last)
		require.NotNil(t, resp.Links.Prev)
		require.NotNil(t, resp.Links.Next)
		assert.Equal(t, "/api/courses?page=1&per_page=3", *resp.Links.Prev)
		assert.Equal(t, "/api/courses?page=3&per_page=3", *resp.Links.Next)

		assert.Equal(t, 2, resp.Meta.CurrentPage)
		assert.Equal(t, 4, resp.Meta.LastPage)
		assert.Equal(t, 4, resp.Meta.From)
		assert.Equal(t, 6, resp.Meta.To)
		assert.Equal(t, int64(10), resp.Meta.Total)
	})

	t.Run("halaman pertama tanpa prev", func(t *testing.T) {
		p := Paging{Page: 1, PerPage: 3, Offset: 0, Limit: 3}
		resp := Paginate("/api/courses", items, len(items), 10, p)
		assert.Nil(t, resp.Links.Prev)
		require.NotNil(t, resp.Links.Next)
		assert.Equal(t, 1, resp.Meta.From)
		assert.Equal(t, 3, resp.Meta.To)
	})

	t.Run("halaman terakhir tanpa next", func(t *testing.T) {
		p := Paging{Page: 4, PerPage: 3, Offset: 9, Limit: 3}
		resp := Paginate("/api/courses", []string{"j"}, 1, 10, p)
		assert.Nil(t, resp.Links.Next)
		assert.Equal(t, 10, resp.Meta.From)
		assert.Equal(t, 10, resp.Meta.To)
	})

	t.Run("hasil kosong", func(t *testing.T) {
		p := Paging{Page: 1, PerPage: 15, Offset: 0, Limit: 15}
		resp := Paginate("/api/courses", []string{}, 0, 0, p)
		assert.Equal(t, 1, resp.Meta.LastPage)
		assert.Zero(t, resp.Meta.From)
		assert.Zero(t, resp.Meta.To)
		assert.Nil(t, resp.Links.Prev)
		assert.Nil(t, resp.Links.Next)
	})
}
