package controllers

import (
	"github.com/shashiranjanraj/souq/app/services"
	"github.com/shashiranjanraj/souq/pkg/ctx"
)

// StorefrontController serves the open shopper endpoints under /web.
type StorefrontController struct {
	service *services.StorefrontService
}

func NewStorefrontController(service *services.StorefrontService) *StorefrontController {
	return &StorefrontController{service: service}
}

func (sc *StorefrontController) Recommended(c *ctx.Context) {
	data, err := sc.service.Recommended(c.Context())
	respond(c, data, err)
}

func (sc *StorefrontController) SuperDeals(c *ctx.Context) {
	data, err := sc.service.SuperDeals(c.Context())
	respond(c, data, err)
}

func (sc *StorefrontController) HotDeals(c *ctx.Context) {
	data, err := sc.service.HotDeals(c.Context())
	respond(c, data, err)
}

func (sc *StorefrontController) Product(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	data, err := sc.service.Product(c.Context(), id)
	respond(c, data, err)
}

func (sc *StorefrontController) Categories(c *ctx.Context) {
	data, err := sc.service.Categories(c.Context())
	respond(c, data, err)
}
