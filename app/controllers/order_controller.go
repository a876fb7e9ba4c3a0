package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shashiranjanraj/souq/app/models"
	"github.com/shashiranjanraj/souq/app/services"
	"github.com/shashiranjanraj/souq/pkg/ctx"
	"github.com/shashiranjanraj/souq/pkg/logger"
	"github.com/shashiranjanraj/souq/pkg/response"
	"github.com/shashiranjanraj/souq/pkg/sse"
	"github.com/shashiranjanraj/souq/pkg/ws"
)

type OrderController struct {
	service *services.OrderService
	hub     *ws.Hub
}

func NewOrderController(service *services.OrderService, hub *ws.Hub) *OrderController {
	return &OrderController{service: service, hub: hub}
}

// Place handles POST /orders, the single-product order.
func (oc *OrderController) Place(c *ctx.Context) {
	var in services.PlaceOrderInput
	if !c.BindJSON(&in) {
		return
	}
	data, err := oc.service.Place(c.Context(), in, currentUser(c))
	created(c, data, err)
}

// Checkout handles POST /web/orders.
func (oc *OrderController) Checkout(c *ctx.Context) {
	var in services.CheckoutInput
	if !c.BindJSON(&in) {
		return
	}
	data, err := oc.service.Checkout(c.Context(), in, currentUser(c))
	created(c, data, err)
}

func (oc *OrderController) Index(c *ctx.Context) {
	data, err := oc.service.List(c.Context(), "")
	respond(c, data, err)
}

// ByStatus handles GET /orders/status/{status}.
func (oc *OrderController) ByStatus(c *ctx.Context) {
	status := models.OrderStatus(c.Param("status"))
	if !status.Valid() {
		c.NotFound("unknown order status")
		return
	}
	data, err := oc.service.List(c.Context(), status)
	respond(c, data, err)
}

func (oc *OrderController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	data, err := oc.service.Find(c.Context(), id)
	respond(c, data, err)
}

func (oc *OrderController) Confirm(c *ctx.Context) { oc.transition(c, models.StatusConfirmed) }

func (oc *OrderController) Cancel(c *ctx.Context) { oc.transition(c, models.StatusCancelled) }

func (oc *OrderController) Deliver(c *ctx.Context) { oc.transition(c, models.StatusDelivered) }

func (oc *OrderController) transition(c *ctx.Context, to models.OrderStatus) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	data, err := oc.service.Transition(c.Context(), id, to)
	respond(c, data, err)
}

type deliveryTypeRequest struct {
	DeliveryTypeName string `json:"delivery_type_name" validate:"required,max=100"`
}

// AssignDeliveryType handles PATCH /orders/{id}/delivery-type.
func (oc *OrderController) AssignDeliveryType(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	var body deliveryTypeRequest
	if !c.BindJSON(&body) {
		return
	}
	data, err := oc.service.AssignDeliveryType(c.Context(), id, body.DeliveryTypeName)
	respond(c, data, err)
}

// Live upgrades to a websocket that receives order events.
func (oc *OrderController) Live(w http.ResponseWriter, r *http.Request) {
	ws.Upgrade(w, r, oc.hub)
}

var streamHeartbeat = 25 * time.Second

// Stream serves the same order events as Live over Server-Sent Events.
func (oc *OrderController) Stream(w http.ResponseWriter, r *http.Request) {
	stream, err := sse.New(w, r)
	if err != nil {
		response.InternalError(w, "Streaming unsupported", "")
		return
	}
	msgs, cancel := oc.hub.Subscribe()
	defer cancel()

	tick := time.NewTicker(streamHeartbeat)
	defer tick.Stop()

	if err := stream.Comment("connected"); err != nil {
		return
	}
	for {
		select {
		case <-stream.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			if err := stream.Send("order", json.RawMessage(msg)); err != nil {
				logger.WithCtx(r.Context()).Warn("sse: write failed", "error", err)
				return
			}
		case <-tick.C:
			if err := stream.Comment("ping"); err != nil {
				return
			}
		}
	}
}
