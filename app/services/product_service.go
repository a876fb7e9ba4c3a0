package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shashiranjanraj/souq/app/models"
	"github.com/shashiranjanraj/souq/app/repositories"
	"github.com/shashiranjanraj/souq/pkg/collection"
	"github.com/shashiranjanraj/souq/pkg/event"
	"github.com/shashiranjanraj/souq/pkg/orm"
	"github.com/shashiranjanraj/souq/pkg/storage"
	"github.com/shopspring/decimal"
)

// EventProductChanged carries the *models.Product that was written.
const EventProductChanged = "product.changed"

const imagePrefix = "products/"

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ProductInput is the full set of editable product fields.
type ProductInput struct {
	CategoryID         uint                 `json:"category_id"           validate:"required"`
	BrandID            uint                 `json:"brand_id"              validate:"required"`
	EnName             string               `json:"en_name"               validate:"required,max=255"`
	ArName             string               `json:"ar_name"               validate:"required,max=255"`
	EnDescription      string               `json:"en_description"`
	ArDescription      string               `json:"ar_description"`
	ActualPrice        *decimal.Decimal     `json:"actual_price"          validate:"required,gte=0"`
	OffPercentageValue decimal.Decimal      `json:"off_percentage_value"  validate:"gte=0,lte=100"`
	Cost               decimal.Decimal      `json:"cost"                  validate:"gte=0"`
	Quantity           *int                 `json:"quantity"              validate:"required,gte=0"`
	Attributes         models.AttributeList `json:"attributes"`
	Image              string               `json:"image"                 validate:"max=512"`
	Images             models.ImageList     `json:"images"`
	IsDeal             bool                 `json:"is_deal"`
	IsHotDeal          bool                 `json:"is_hot_deal"`
	VatIncluded        bool                 `json:"vat_included"`
	MaxQuantityPerUser int                  `json:"max_quantity_per_user" validate:"gte=0,lte=100"`
}

func (in ProductInput) apply(p *models.Product) {
	p.CategoryID = in.CategoryID
	p.BrandID = in.BrandID
	p.EnName = in.EnName
	p.ArName = in.ArName
	p.EnDescription = in.EnDescription
	p.ArDescription = in.ArDescription
	p.ActualPrice = *in.ActualPrice
	p.OffPercentageValue = in.OffPercentageValue
	p.Price = models.DiscountedPrice(*in.ActualPrice, in.OffPercentageValue)
	p.Cost = in.Cost
	p.Quantity = *in.Quantity
	p.Attributes = in.Attributes
	p.Image = in.Image
	p.Images = in.Images
	p.IsDeal = in.IsDeal
	p.IsHotDeal = in.IsHotDeal
	p.VatIncluded = in.VatIncluded
	p.MaxQuantityPerUser = in.MaxQuantityPerUser
	if p.MaxQuantityPerUser < 1 {
		p.MaxQuantityPerUser = 1
	}
	if p.Attributes == nil {
		p.Attributes = models.AttributeList{}
	}
	if p.Images == nil {
		p.Images = models.ImageList{}
	}
}

// UploadedImage is the stored object for an uploaded product image.
type UploadedImage struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type ProductService struct {
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
	brands     *repositories.BrandRepository
	attributes *repositories.AttributeRepository

	// NewSKU and Disk are replaceable in tests.
	NewSKU SKUGenerator
	Disk   func() storage.Disk
}

func NewProductService(db *orm.Query) *ProductService {
	return &ProductService{
		products:   repositories.NewProductRepository(db),
		categories: repositories.NewCategoryRepository(db),
		brands:     repositories.NewBrandRepository(db),
		attributes: repositories.NewAttributeRepository(db),
		NewSKU:     RandomSKU,
		Disk:       storage.Default,
	}
}

// Active lists active products, newest first.
func (s *ProductService) Active(ctx context.Context) ([]models.Product, error) {
	return s.products.ListByActive(ctx, true)
}

// Deactivated lists soft-deleted products, newest first.
func (s *ProductService) Deactivated(ctx context.Context) ([]models.Product, error) {
	return s.products.ListByActive(ctx, false)
}

func (s *ProductService) Find(ctx context.Context, id uint) (models.Product, error) {
	p, err := s.products.Find(ctx, id)
	return p, translate(err)
}

// Create stores a new product under a freshly generated SKU.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (models.Product, error) {
	if err := s.checkReferences(ctx, in); err != nil {
		return models.Product{}, err
	}

	for _, step := range skuPlan {
		for i := 0; i < step.attempts; i++ {
			sku, err := s.NewSKU(step.length)
			if err != nil {
				return models.Product{}, err
			}
			taken, err := s.products.SKUExists(ctx, sku)
			if err != nil {
				return models.Product{}, err
			}
			if taken {
				continue
			}

			p := models.Product{SKU: sku, IsActive: true}
			in.apply(&p)
			err = s.products.Create(ctx, &p)
			if errors.Is(err, orm.ErrDuplicate) {
				// another insert took the SKU between the check and now
				continue
			}
			if err != nil {
				return models.Product{}, err
			}
			s.changed(&p)
			return p, nil
		}
	}
	return models.Product{}, ErrSKUExhausted
}

// Update replaces every editable field. SKU, sold and the active flag are kept.
func (s *ProductService) Update(ctx context.Context, id uint, in ProductInput) (models.Product, error) {
	p, err := s.products.Find(ctx, id)
	if err != nil {
		return p, translate(err)
	}
	if err := s.checkReferences(ctx, in); err != nil {
		return p, err
	}
	in.apply(&p)
	if err := s.products.Save(ctx, &p); err != nil {
		return p, translate(err)
	}
	s.changed(&p)
	return p, nil
}

// SetActive activates or deactivates a product. Deactivation is also how a
// product is deleted.
func (s *ProductService) SetActive(ctx context.Context, id uint, active bool) (models.Product, error) {
	p, err := s.products.Find(ctx, id)
	if err != nil {
		return p, translate(err)
	}
	if err := s.products.SetActive(ctx, id, active); err != nil {
		return p, err
	}
	p.IsActive = active
	s.changed(&p)
	return p, nil
}

// checkReferences verifies the category, the brand and every selected
// attribute exist.
func (s *ProductService) checkReferences(ctx context.Context, in ProductInput) error {
	ok, err := s.categories.Exists(ctx, in.CategoryID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: category %d", ErrNotFound, in.CategoryID)
	}
	ok, err = s.brands.Exists(ctx, in.BrandID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: brand %d", ErrNotFound, in.BrandID)
	}

	ids := collection.Map(in.Attributes, func(a models.AttributeSelection) uint { return a.AttributeID })
	known, err := s.attributes.FindMany(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("%w: attribute %d", ErrNotFound, id)
		}
	}
	return nil
}

// changed runs the listeners before the write returns, so the storefront
// cache is already clear when the caller sees the result.
func (s *ProductService) changed(p *models.Product) {
	event.Fire(EventProductChanged, p)
}

// ── Images ───────────────────────────────────────────────────────────────────

// UploadImage sniffs the content type of r and stores it as
// products/<uuid><ext> on the default disk.
func (s *ProductService) UploadImage(ctx context.Context, r io.Reader) (UploadedImage, error) {
	disk := s.Disk()
	if disk == nil {
		return UploadedImage{}, ErrStorageUnavailable
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return UploadedImage{}, err
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return UploadedImage{}, fmt.Errorf("%w: %s", ErrUnsupportedImage, contentType)
	}

	key := imagePrefix + uuid.NewString() + ext
	if err := disk.Put(ctx, key, io.MultiReader(bytes.NewReader(head), r), contentType); err != nil {
		return UploadedImage{}, err
	}
	return UploadedImage{Key: key, URL: disk.URL(key)}, nil
}

// DeleteImage removes an uploaded image. Only keys under products/ are accepted.
func (s *ProductService) DeleteImage(ctx context.Context, key string) error {
	disk := s.Disk()
	if disk == nil {
		return ErrStorageUnavailable
	}
	clean, err := storage.CleanPath(key)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(clean, imagePrefix) {
		return storage.ErrInvalidPath
	}
	ok, err := disk.Exists(ctx, clean)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return disk.Delete(ctx, clean)
}
