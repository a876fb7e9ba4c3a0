package controllers

import (
	"github.com/shashiranjanraj/souq/app/services"
	"github.com/shashiranjanraj/souq/pkg/ctx"
)

type DashboardController struct {
	service *services.DashboardService
}

func NewDashboardController(service *services.DashboardService) *DashboardController {
	return &DashboardController{service: service}
}

// Admin handles GET /dashboard/summary.
func (dc *DashboardController) Admin(c *ctx.Context) {
	data, err := dc.service.Admin(c.Context())
	respond(c, data, err)
}

// Manager handles GET /manager/summary.
func (dc *DashboardController) Manager(c *ctx.Context) {
	data, err := dc.service.Manager(c.Context())
	respond(c, data, err)
}
