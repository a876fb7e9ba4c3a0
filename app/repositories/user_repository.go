package repositories

import (
	"context"

	"github.com/shashiranjanraj/souq/app/models"
	"github.com/shashiranjanraj/souq/pkg/orm"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	Repository[models.User]
}

func NewUserRepository(q *orm.Query) *UserRepository {
	return &UserRepository{newRepository[models.User](q)}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.model(ctx).Where("email = ?", email).First(&user)
	return user, err
}
