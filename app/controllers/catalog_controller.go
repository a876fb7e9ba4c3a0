package controllers

import (
	"github.com/shashiranjanraj/souq/app/services"
	"github.com/shashiranjanraj/souq/pkg/ctx"
)

// CatalogController serves categories, brands and attributes.
type CatalogController struct {
	service *services.CatalogService
}

func NewCatalogController(service *services.CatalogService) *CatalogController {
	return &CatalogController{service: service}
}

// ── Categories ───────────────────────────────────────────────────────────────

func (cc *CatalogController) Categories(c *ctx.Context) {
	data, err := cc.service.Categories(c.Context())
	respond(c, data, err)
}

func (cc *CatalogController) Category(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	data, err := cc.service.Category(c.Context(), id)
	respond(c, data, err)
}

func (cc *CatalogController) CreateCategory(c *ctx.Context) {
	var in services.CategoryInput
	if !c.BindJSON(&in) {
		return
	}
	data, err := cc.service.CreateCategory(c.Context(), in)
	created(c, data, err)
}

func (cc *CatalogController) UpdateCategory(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	var in services.CategoryInput
	if !c.BindJSON(&in) {
		return
	}
	data, err := cc.service.UpdateCategory(c.Context(), id, in)
	respond(c, data, err)
}

func (cc *CatalogController) DeleteCategory(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	removed(c, "Category deleted", cc.service.DeleteCategory(c.Context(), id))
}

// ── Brands ───────────────────────────────────────────────────────────────────

func (cc *CatalogController) Brands(c *ctx.Context) {
	data, err := cc.service.Brands(c.Context())
	respond(c, data, err)
}

func (cc *CatalogController) Brand(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	data, err := cc.service.Brand(c.Context(), id)
	respond(c, data, err)
}

func (cc *CatalogController) BrandsByCategory(c *ctx.Context) {
	id, ok := c.ParamUint("categoryID")
	if !ok {
		return
	}
	data, err := cc.service.BrandsByCategory(c.Context(), id)
	respond(c, data, err)
}

func (cc *CatalogController) CreateBrand(c *ctx.Context) {
	var in services.BrandInput
	if !c.BindJSON(&in) {
		return
	}
	data, err := cc.service.CreateBrand(c.Context(), in)
	created(c, data, err)
}

func (cc *CatalogController) UpdateBrand(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	var in services.BrandInput
	if !c.BindJSON(&in) {
		return
	}
	data, err := cc.service.UpdateBrand(c.Context(), id, in)
	respond(c, data, err)
}

func (cc *CatalogController) DeleteBrand(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	removed(c, "Brand deleted", cc.service.DeleteBrand(c.Context(), id))
}

// ── Attributes ───────────────────────────────────────────────────────────────

func (cc *CatalogController) Attributes(c *ctx.Context) {
	data, err := cc.service.Attributes(c.Context())
	respond(c, data, err)
}

func (cc *CatalogController) Attribute(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	data, err := cc.service.Attribute(c.Context(), id)
	respond(c, data, err)
}

func (cc *CatalogController) CreateAttribute(c *ctx.Context) {
	var in services.AttributeInput
	if !c.BindJSON(&in) {
		return
	}
	data, err := cc.service.CreateAttribute(c.Context(), in)
	created(c, data, err)
}

func (cc *CatalogController) UpdateAttribute(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	var in services.AttributeInput
	if !c.BindJSON(&in) {
		return
	}
	data, err := cc.service.UpdateAttribute(c.Context(), id, in)
	respond(c, data, err)
}

func (cc *CatalogController) DeleteAttribute(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	removed(c, "Attribute deleted", cc.service.DeleteAttribute(c.Context(), id))
}
