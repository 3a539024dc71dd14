package mockapi

import (
	"net/http/httptest"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct{ in, want string }{
		{"On Margins and Whitespace", "on-margins-and-whitespace"},
		{"Hello, World!", "hello-world"},
		{"  spaced   out  ", "spaced-out"},
		{"Already-Slugged", "already-slugged"},
		{"C'est la vie: 2024", "c-est-la-vie-2024"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPaginateBounds(t *testing.T) {
	items := make([]int, 25)

	r := httptest.NewRequest("GET", "/posts/?page=3", nil)
	page, ok := paginate(r, items)
	if !ok {
		t.Fatal("page 3 of 25 items should exist")
	}
	if len(page.Results) != 5 || page.Next != nil || page.Previous == nil {
		t.Fatalf("unexpected last page: %+v", page)
	}

	r = httptest.NewRequest("GET", "/posts/?page=4", nil)
	if _, ok := paginate(r, items); ok {
		t.Fatal("page past the end must be rejected")
	}

	r = httptest.NewRequest("GET", "/posts/?page=zero", nil)
	if _, ok := paginate(r, items); ok {
		t.Fatal("non-numeric page must be rejected")
	}

	// Page 1 of an empty collection is valid, later pages are not.
	r = httptest.NewRequest("GET", "/posts/", nil)
	page, ok = paginate(r, []int{})
	if !ok || page.Count != 0 {
		t.Fatalf("empty first page should succeed: %+v", page)
	}
}

func TestAutoExcerpt(t *testing.T) {
	short := "brief"
	if got := autoExcerpt(short); got != short {
		t.Errorf("short content should pass through, got %q", got)
	}

	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}
	got := autoExcerpt(string(long))
	if len(got) != 203 || got[200:] != "..." {
		t.Errorf("long content should truncate to 200 chars plus ellipsis, got len %d", len(got))
	}
}
