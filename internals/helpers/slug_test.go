package helper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name, in, want string
		maxLen         int
	}{
		{"huruf besar dan spasi", "Belajar Fade Untuk Pemula", "belajar-fade-untuk-pemula", 0},
		{"diakritik dibuang", "Café Städt Teknik", "cafe-stadt-teknik", 0},
		{"karakter aneh jadi strip", "Fade 2.0 — Level (Advanced)!", "fade-2-0-level-advanced", 0},
		{"strip beruntun dikompres", "a --- b", "a-b", 0},
		{"ujung strip di-trim", "---potong---", "potong", 0},
		{"string kosong fallback", "   ", "item", 0},
		{"simbol semua fallback", "!!!", "item", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in, tc.maxLen))
		})
	}

	t.Run("maxLen dipotong tanpa strip menggantung", func(t *testing.T) {
		got := Slugify("abcde fghij", 6)
		assert.Equal(t, "abcde", got)
		assert.LessOrEqual(t, len(got), 6)
	})

	t.Run("default maxLen 100", func(t *testing.T) {
		got := Slugify(strings.Repeat("a", 250), 0)
		assert.Len(t, got, 100)
	})
}
