package kernel_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/souq/app/services"
	"github.com/shashiranjanraj/souq/internal/kernel"
	"github.com/shashiranjanraj/souq/internal/testdb"
	"github.com/shashiranjanraj/souq/pkg/auth"
	"github.com/shashiranjanraj/souq/pkg/orm"
	"github.com/shashiranjanraj/souq/pkg/rbac"
	"github.com/shashiranjanraj/souq/pkg/testkit"
)

func ping(db *gorm.DB) func(context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

func newKernel(t *testing.T) (*kernel.HTTPKernel, *orm.Query) {
	t.Helper()
	db := testdb.Open(t)
	q := orm.Use(db)
	k, err := kernel.NewHTTPKernel(kernel.Config{DB: q, Check: ping(db)})
	require.NoError(t, err)
	return k, q
}

// staffTokens creates one user per role (password "password123") and
// returns a TokenFunc issuing their access tokens.
func staffTokens(t *testing.T, q *orm.Query) testkit.TokenFunc {
	t.Helper()
	svc := services.NewAuthService(q)
	ids := map[string]uint{}
	for _, role := range []string{rbac.RoleAdmin, rbac.RoleManager, rbac.RoleUser} {
		u, err := svc.CreateUser(context.Background(), services.CreateUserInput{
			Name:     role,
			Email:    role + "@souq.test",
			Password: "password123",
			Role:     role,
		})
		require.NoError(t, err)
		ids[role] = u.ID
	}
	return func(t *testing.T, role string) string {
		id, ok := ids[role]
		require.True(t, ok, "no user for role %q", role)
		tok, err := auth.GenerateToken(id, role)
		require.NoError(t, err)
		return tok
	}
}

func TestAPIScenarios(t *testing.T) {
	k, q := newKernel(t)
	testkit.Runner{Handler: k.Handler(), Token: staffTokens(t, q)}.RunDir(t, "testdata/api")
}

func TestHealthDegradesWhenDatabaseIsDown(t *testing.T) {
	db := testdb.Open(t)
	k, err := kernel.NewHTTPKernel(kernel.Config{
		DB:    orm.Use(db),
		Check: func(context.Context) error { return assert.AnError },
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	k.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":503,"data":{"status":"degraded","database":"unavailable"}}`, rec.Body.String())
}

func TestMiddlewareHeaders(t *testing.T) {
	k, _ := newKernel(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/web/categories", nil)
	req.Header.Set("Accept-Language", "ar-SA,ar;q=0.9")
	rec := httptest.NewRecorder()
	k.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "ar", rec.Header().Get("Content-Language"))
}

func TestMetricsEndpoint(t *testing.T) {
	k, _ := newKernel(t)
	h := k.Handler()

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "souq_http_requests_total")
}

func TestRoutesAreNamed(t *testing.T) {
	k, _ := newKernel(t)

	names := map[string]bool{}
	for _, ri := range k.Routes() {
		names[ri.Name] = true
		assert.True(t, ri.Path == "/health" || ri.Path == "/metrics" || strings.HasPrefix(ri.Path, "/api/v1/"), ri.Path)
	}
	for _, want := range []string{
		"categories.store", "products.deactivated", "orders.confirm",
		"orders.live", "orders.stream", "web.orders.checkout", "web.graphql", "dashboard.summary",
	} {
		assert.True(t, names[want], want)
	}
}

func TestOrderLiveRequiresAdminToken(t *testing.T) {
	k, q := newKernel(t)
	tokens := staffTokens(t, q)
	h := k.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders/live", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders/stream?token="+tokens(t, rbac.RoleManager), nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
