package routes

import (
	"net/http"

	"github.com/shashiranjanraj/souq/app/controllers"
	"github.com/shashiranjanraj/souq/app/graph"
	"github.com/shashiranjanraj/souq/app/services"
	"github.com/shashiranjanraj/souq/pkg/ctx"
	gql "github.com/shashiranjanraj/souq/pkg/graphql"
	"github.com/shashiranjanraj/souq/pkg/middleware"
	"github.com/shashiranjanraj/souq/pkg/orm"
	"github.com/shashiranjanraj/souq/pkg/rbac"
	"github.com/shashiranjanraj/souq/pkg/router"
	"github.com/shashiranjanraj/souq/pkg/ws"
)

// RegisterAPI mounts the /api/v1 surface. Reads of the catalogue and the
// storefront are open; writes are gated by role.
func RegisterAPI(r *router.Router, db *orm.Query, hub *ws.Hub) error {
	storefrontService := services.NewStorefrontService(db)
	schema, err := graph.NewSchema(storefrontService)
	if err != nil {
		return err
	}

	authController := controllers.NewAuthController(services.NewAuthService(db))
	catalog := controllers.NewCatalogController(services.NewCatalogService(db))
	products := controllers.NewProductController(services.NewProductService(db))
	orders := controllers.NewOrderController(services.NewOrderService(db), hub)
	deliveryTypes := controllers.NewDeliveryTypeController(services.NewDeliveryTypeService(db))
	storefront := controllers.NewStorefrontController(storefrontService)
	dashboard := controllers.NewDashboardController(services.NewDashboardService(db))

	api := r.Group("/api/v1")
	staff := []router.Middleware{middleware.Auth, rbac.Staff()}
	admin := []router.Middleware{middleware.Auth, rbac.Admin()}

	// ── Auth ────────────────────────────────────────────────────────────────
	api.Post("/auth/login", "auth.login", ctx.Wrap(authController.Login))
	api.Post("/auth/refresh", "auth.refresh", ctx.Wrap(authController.Refresh))
	api.Get("/auth/me", "auth.me", ctx.Wrap(authController.Me), middleware.Auth)
	api.Post("/auth/users", "auth.users.store", ctx.Wrap(authController.CreateUser), admin...)

	// ── Catalogue ───────────────────────────────────────────────────────────
	api.Get("/categories", "categories.index", ctx.Wrap(catalog.Categories))
	api.Get("/categories/{id}", "categories.show", ctx.Wrap(catalog.Category))
	api.Post("/categories", "categories.store", ctx.Wrap(catalog.CreateCategory), staff...)
	api.Put("/categories/{id}", "categories.update", ctx.Wrap(catalog.UpdateCategory), staff...)
	api.Delete("/categories/{id}", "categories.destroy", ctx.Wrap(catalog.DeleteCategory), staff...)

	api.Get("/brands", "brands.index", ctx.Wrap(catalog.Brands))
	api.Get("/brands/{id}", "brands.show", ctx.Wrap(catalog.Brand))
	api.Get("/brands/category/{categoryID}", "brands.by_category", ctx.Wrap(catalog.BrandsByCategory))
	api.Post("/brands", "brands.store", ctx.Wrap(catalog.CreateBrand), staff...)
	api.Put("/brands/{id}", "brands.update", ctx.Wrap(catalog.UpdateBrand), staff...)
	api.Delete("/brands/{id}", "brands.destroy", ctx.Wrap(catalog.DeleteBrand), staff...)

	api.Get("/attributes", "attributes.index", ctx.Wrap(catalog.Attributes))
	api.Get("/attributes/{id}", "attributes.show", ctx.Wrap(catalog.Attribute))
	api.Post("/attributes", "attributes.store", ctx.Wrap(catalog.CreateAttribute), staff...)
	api.Put("/attributes/{id}", "attributes.update", ctx.Wrap(catalog.UpdateAttribute), staff...)
	api.Delete("/attributes/{id}", "attributes.destroy", ctx.Wrap(catalog.DeleteAttribute), staff...)

	api.Get("/products", "products.index", ctx.Wrap(products.Index))
	api.Get("/products/deactivated/all", "products.deactivated", ctx.Wrap(products.Deactivated), staff...)
	api.Get("/products/{id}", "products.show", ctx.Wrap(products.Show))
	api.Post("/products", "products.store", ctx.Wrap(products.Store), staff...)
	api.Put("/products/{id}", "products.update", ctx.Wrap(products.Update), staff...)
	api.Patch("/products/{id}/activate", "products.activate", ctx.Wrap(products.Activate), staff...)
	api.Patch("/products/{id}/deactivate", "products.deactivate", ctx.Wrap(products.Deactivate), staff...)
	api.Delete("/products/{id}", "products.destroy", ctx.Wrap(products.Destroy), staff...)
	api.Post("/products/images", "products.images.store", ctx.Wrap(products.UploadImage), staff...)
	api.Delete("/products/images", "products.images.destroy", ctx.Wrap(products.DeleteImage), staff...)

	// ── Orders ──────────────────────────────────────────────────────────────
	api.Post("/orders", "orders.place", ctx.Wrap(orders.Place), middleware.OptionalAuth)
	api.Get("/orders", "orders.index", ctx.Wrap(orders.Index), admin...)
	api.Get("/orders/live", "orders.live", http.HandlerFunc(orders.Live),
		middleware.TokenFromQuery, middleware.Auth, rbac.Admin())
	api.Get("/orders/stream", "orders.stream", http.HandlerFunc(orders.Stream),
		middleware.TokenFromQuery, middleware.Auth, rbac.Admin())
	api.Get("/orders/status/{status}", "orders.by_status", ctx.Wrap(orders.ByStatus), admin...)
	api.Get("/orders/{id}", "orders.show", ctx.Wrap(orders.Show), admin...)
	api.Patch("/orders/{id}/confirm", "orders.confirm", ctx.Wrap(orders.Confirm), admin...)
	api.Patch("/orders/{id}/cancel", "orders.cancel", ctx.Wrap(orders.Cancel), admin...)
	api.Patch("/orders/{id}/deliver", "orders.deliver", ctx.Wrap(orders.Deliver), admin...)
	api.Patch("/orders/{id}/delivery-type", "orders.delivery_type", ctx.Wrap(orders.AssignDeliveryType), admin...)

	api.Get("/delivery-types", "delivery_types.index", ctx.Wrap(deliveryTypes.Index), admin...)
	api.Post("/delivery-types", "delivery_types.store", ctx.Wrap(deliveryTypes.Store), admin...)
	api.Put("/delivery-types/{id}", "delivery_types.update", ctx.Wrap(deliveryTypes.Update), admin...)
	api.Delete("/delivery-types/{id}", "delivery_types.destroy", ctx.Wrap(deliveryTypes.Destroy), admin...)

	// ── Storefront ──────────────────────────────────────────────────────────
	web := api.Group("/web")
	web.Get("/products/recommended", "web.recommended", ctx.Wrap(storefront.Recommended))
	web.Get("/products/super-deals", "web.super_deals", ctx.Wrap(storefront.SuperDeals))
	web.Get("/products/hot-deals", "web.hot_deals", ctx.Wrap(storefront.HotDeals))
	web.Get("/products/{id}", "web.products.show", ctx.Wrap(storefront.Product))
	web.Get("/categories", "web.categories", ctx.Wrap(storefront.Categories))
	web.Post("/orders", "web.orders.checkout", ctx.Wrap(orders.Checkout), middleware.OptionalAuth)
	web.Post("/graphql", "web.graphql", gql.Handler(schema))

	// ── Dashboards ──────────────────────────────────────────────────────────
	api.Get("/dashboard/summary", "dashboard.summary", ctx.Wrap(dashboard.Admin), admin...)
	api.Get("/manager/summary", "manager.summary", ctx.Wrap(dashboard.Manager), staff...)

	return nil
}
