package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/souq/app/services"
	"github.com/shashiranjanraj/souq/config"
	"github.com/shashiranjanraj/souq/pkg/ctx"
)

// multipart framing allowance on top of MAX_UPLOAD_BYTES
const multipartOverhead = 1 << 20

type ProductController struct {
	service *services.ProductService
}

func NewProductController(service *services.ProductService) *ProductController {
	return &ProductController{service: service}
}

// Index handles GET /products (active only).
func (pc *ProductController) Index(c *ctx.Context) {
	data, err := pc.service.Active(c.Context())
	respond(c, data, err)
}

// Deactivated handles GET /products/deactivated/all.
func (pc *ProductController) Deactivated(c *ctx.Context) {
	data, err := pc.service.Deactivated(c.Context())
	respond(c, data, err)
}

func (pc *ProductController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	data, err := pc.service.Find(c.Context(), id)
	respond(c, data, err)
}

func (pc *ProductController) Store(c *ctx.Context) {
	var in services.ProductInput
	if !c.BindJSON(&in) {
		return
	}
	data, err := pc.service.Create(c.Context(), in)
	created(c, data, err)
}

func (pc *ProductController) Update(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	var in services.ProductInput
	if !c.BindJSON(&in) {
		return
	}
	data, err := pc.service.Update(c.Context(), id, in)
	respond(c, data, err)
}

func (pc *ProductController) Activate(c *ctx.Context) {
	pc.setActive(c, true)
}

func (pc *ProductController) Deactivate(c *ctx.Context) {
	pc.setActive(c, false)
}

// Destroy is a soft delete.
func (pc *ProductController) Destroy(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	if _, err := pc.service.SetActive(c.Context(), id, false); err != nil {
		fail(c, err)
		return
	}
	c.Message("Product deleted", nil)
}

func (pc *ProductController) setActive(c *ctx.Context, active bool) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	data, err := pc.service.SetActive(c.Context(), id, active)
	respond(c, data, err)
}

// UploadImage handles multipart POST /products/images with the file in "image".
func (pc *ProductController) UploadImage(c *ctx.Context) {
	limit := config.MaxUploadBytes()
	c.R.Body = http.MaxBytesReader(c.W, c.R.Body, limit+multipartOverhead)

	file, header, err := c.R.FormFile("image")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			c.Error(http.StatusRequestEntityTooLarge, "image is too large")
			return
		}
		c.ValidationError(map[string]string{"image": "image is required"})
		return
	}
	defer file.Close()

	if header.Size > limit {
		c.Error(http.StatusRequestEntityTooLarge, "image is too large")
		return
	}

	data, err := pc.service.UploadImage(c.Context(), file)
	created(c, data, err)
}

// DeleteImage handles DELETE /products/images?key=products/<uuid>.png.
func (pc *ProductController) DeleteImage(c *ctx.Context) {
	key := c.Query("key")
	if key == "" {
		c.ValidationError(map[string]string{"key": "key is required"})
		return
	}
	removed(c, "Image deleted", pc.service.DeleteImage(c.Context(), key))
}
