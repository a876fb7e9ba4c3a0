// Package locale picks the response language (en or ar) for storefront reads.
//
// An explicit ?lang= wins; otherwise Accept-Language is matched against the
// supported tags. English is the fallback.
package locale

import (
	"context"
	"net/http"

	"golang.org/x/text/language"
)

// Lang is a supported response language.
type Lang string

const (
	English Lang = "en"
	Arabic  Lang = "ar"
)

var (
	supported = []language.Tag{language.English, language.Arabic}
	matcher   = language.NewMatcher(supported)
)

type ctxKey struct{}

// Parse resolves a language from an explicit value and an Accept-Language header.
func Parse(explicit, acceptLanguage string) Lang {
	if explicit != "" {
		if tag, err := language.Parse(explicit); err == nil {
			return fromTag(tag)
		}
	}
	if acceptLanguage == "" {
		return English
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return English
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return English
	}
	return fromTag(supported[idx])
}

func fromTag(tag language.Tag) Lang {
	base, _ := tag.Base()
	if base.String() == "ar" {
		return Arabic
	}
	return English
}

// Pick returns ar when l is Arabic and ar is non-empty, otherwise en.
func (l Lang) Pick(en, ar string) string {
	if l == Arabic && ar != "" {
		return ar
	}
	return en
}

// WithLang stores l in ctx.
func WithLang(ctx context.Context, l Lang) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromCtx returns the language stored by Middleware, or English.
func FromCtx(ctx context.Context) Lang {
	if l, ok := ctx.Value(ctxKey{}).(Lang); ok {
		return l
	}
	return English
}

// Middleware resolves the language once per request and sets Content-Language.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := Parse(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
		w.Header().Set("Content-Language", string(l))
		w.Header().Add("Vary", "Accept-Language")
		next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), l)))
	})
}
