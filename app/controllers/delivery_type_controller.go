package controllers

import (
	"github.com/shashiranjanraj/souq/app/services"
	"github.com/shashiranjanraj/souq/pkg/ctx"
)

type DeliveryTypeController struct {
	service *services.DeliveryTypeService
}

func NewDeliveryTypeController(service *services.DeliveryTypeService) *DeliveryTypeController {
	return &DeliveryTypeController{service: service}
}

func (dc *DeliveryTypeController) Index(c *ctx.Context) {
	data, err := dc.service.List(c.Context())
	respond(c, data, err)
}

func (dc *DeliveryTypeController) Store(c *ctx.Context) {
	var in services.DeliveryTypeInput
	if !c.BindJSON(&in) {
		return
	}
	data, err := dc.service.Create(c.Context(), in)
	created(c, data, err)
}

func (dc *DeliveryTypeController) Update(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	var in services.DeliveryTypeInput
	if !c.BindJSON(&in) {
		return
	}
	data, err := dc.service.Update(c.Context(), id, in)
	respond(c, data, err)
}

func (dc *DeliveryTypeController) Destroy(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	removed(c, "Delivery type deleted", dc.service.Delete(c.Context(), id))
}
