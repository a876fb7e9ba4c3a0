package controllers

import (
	"github.com/shashiranjanraj/souq/app/services"
	"github.com/shashiranjanraj/souq/pkg/ctx"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Login handles POST /auth/login.
func (ac *AuthController) Login(c *ctx.Context) {
	var body loginRequest
	if !c.BindJSON(&body) {
		return
	}
	session, err := ac.service.Login(c.Context(), body.Email, body.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(session)
}

// Refresh handles POST /auth/refresh.
func (ac *AuthController) Refresh(c *ctx.Context) {
	var body refreshRequest
	if !c.BindJSON(&body) {
		return
	}
	session, err := ac.service.Refresh(c.Context(), body.RefreshToken)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(session)
}

// Me handles GET /auth/me.
func (ac *AuthController) Me(c *ctx.Context) {
	id := currentUser(c)
	if id == nil {
		c.Unauthorized()
		return
	}
	user, err := ac.service.Me(c.Context(), *id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(user)
}

// CreateUser handles POST /auth/users.
func (ac *AuthController) CreateUser(c *ctx.Context) {
	var body services.CreateUserInput
	if !c.BindJSON(&body) {
		return
	}
	user, err := ac.service.CreateUser(c.Context(), body)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(user)
}
