package services

import (
	"context"

	"github.com/shashiranjanraj/souq/app/models"
	"github.com/shashiranjanraj/souq/app/repositories"
	"github.com/shashiranjanraj/souq/pkg/orm"
)

type DeliveryTypeInput struct {
	Name   string `json:"name"    validate:"required,max=100"`
	EnName string `json:"en_name" validate:"max=255"`
	ArName string `json:"ar_name" validate:"max=255"`
}

type DeliveryTypeService struct {
	repo *repositories.DeliveryTypeRepository
}

func NewDeliveryTypeService(db *orm.Query) *DeliveryTypeService {
	return &DeliveryTypeService{repo: repositories.NewDeliveryTypeRepository(db)}
}

func (s *DeliveryTypeService) List(ctx context.Context) ([]models.DeliveryType, error) {
	return s.repo.All(ctx, "")
}

func (s *DeliveryTypeService) Create(ctx context.Context, in DeliveryTypeInput) (models.DeliveryType, error) {
	d := models.DeliveryType{Name: in.Name, EnName: in.EnName, ArName: in.ArName}
	return d, translate(s.repo.Create(ctx, &d))
}

// Update renames a delivery type. Orders keep the name they were given.
func (s *DeliveryTypeService) Update(ctx context.Context, id uint, in DeliveryTypeInput) (models.DeliveryType, error) {
	d, err := s.repo.Find(ctx, id)
	if err != nil {
		return d, translate(err)
	}
	d.Name, d.EnName, d.ArName = in.Name, in.EnName, in.ArName
	return d, translate(s.repo.Save(ctx, &d))
}

func (s *DeliveryTypeService) Delete(ctx context.Context, id uint) error {
	return deleted(s.repo.Delete(ctx, id))
}
