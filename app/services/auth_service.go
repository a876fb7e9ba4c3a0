package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shashiranjanraj/souq/app/models"
	"github.com/shashiranjanraj/souq/app/repositories"
	"github.com/shashiranjanraj/souq/pkg/auth"
	"github.com/shashiranjanraj/souq/pkg/orm"
	"github.com/shashiranjanraj/souq/pkg/rbac"
)

// Session is what login and refresh hand back.
type Session struct {
	auth.Pair
	User models.User `json:"user"`
}

type CreateUserInput struct {
	Name     string `json:"name"     validate:"required,max=255"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role"     validate:"required,in=admin,manager,user"`
}

type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(db *orm.Query) *AuthService {
	return &AuthService{users: repositories.NewUserRepository(db)}
}

// Login checks the password and issues a token pair. Unknown email and
// wrong password fail the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if orm.IsNotFound(err) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}
	if !auth.CheckPassword(user.Password, password) {
		return Session{}, ErrInvalidCredentials
	}
	return s.issue(user)
}

// Refresh exchanges a refresh token for a new pair. The role is re-read
// from the database so demotions take effect.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	claims, err := auth.ValidateRefreshToken(refreshToken)
	if err != nil {
		return Session{}, ErrInvalidCredentials
	}
	user, err := s.users.Find(ctx, claims.UserID)
	if orm.IsNotFound(err) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}
	return s.issue(user)
}

func (s *AuthService) Me(ctx context.Context, userID uint) (models.User, error) {
	user, err := s.users.Find(ctx, userID)
	return user, translate(err)
}

// CreateUser stores a new account with a bcrypt password.
func (s *AuthService) CreateUser(ctx context.Context, in CreateUserInput) (models.User, error) {
	if !rbac.ValidRole(in.Role) {
		return models.User{}, ErrInvalidRole
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}
	user := models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Password: hash,
		Role:     in.Role,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, orm.ErrDuplicate) {
			return models.User{}, ErrDuplicate
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *AuthService) issue(user models.User) (Session, error) {
	pair, err := auth.IssuePair(user.ID, user.Role)
	if err != nil {
		return Session{}, err
	}
	return Session{Pair: pair, User: user}, nil
}
