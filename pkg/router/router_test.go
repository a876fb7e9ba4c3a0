package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestGroupJoinsPrefixAndNamesRoutes(t *testing.T) {
	r := New()
	api := r.Group("/api/v1")
	api.Group("categories").Put("/{id}", "categories.update", ok)

	path, found := r.Path("categories.update")
	require.True(t, found)
	assert.Equal(t, "/api/v1/categories/{id}", path)

	url, err := r.URL("categories.update", map[string]string{"id": "7"})
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/categories/7", url)

	_, err = r.URL("categories.update", nil)
	assert.Error(t, err)
}

func TestGroupMiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(tag string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := New()
	g := r.Group("/a", mw("group"))
	g.Patch("/b", "", ok, mw("route"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/a/b", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"group", "route"}, order)
}

func TestRoutesSorted(t *testing.T) {
	r := New()
	r.Delete("/b", "b.delete", ok)
	r.Get("/b", "b.index", ok)
	r.Get("/a", "", ok)

	routes := r.Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, RouteInfo{Method: "GET", Path: "/a"}, routes[0])
	assert.Equal(t, "DELETE", routes[1].Method)
	assert.Equal(t, "GET", routes[2].Method)
}
