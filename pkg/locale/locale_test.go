package locale

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	cases := []struct {
		explicit, header string
		want             Lang
	}{
		{"", "", English},
		{"ar", "", Arabic},
		{"ar", "en-US", Arabic},
		{"en", "ar", English},
		{"", "ar-SA,ar;q=0.9,en;q=0.5", Arabic},
		{"", "fr-FR,en;q=0.8", English},
		{"", "de", English},
		{"not a tag!!", "ar-EG", Arabic},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Parse(c.explicit, c.header), "%q / %q", c.explicit, c.header)
	}
}

func TestPick(t *testing.T) {
	assert.Equal(t, "هاتف", Arabic.Pick("Phone", "هاتف"))
	assert.Equal(t, "Phone", English.Pick("Phone", "هاتف"))
	assert.Equal(t, "Phone", Arabic.Pick("Phone", ""))
}

func TestMiddleware(t *testing.T) {
	var got Lang
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromCtx(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?lang=ar", nil))

	assert.Equal(t, Arabic, got)
	assert.Equal(t, "ar", rec.Header().Get("Content-Language"))
}
