package services

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/souq/app/models"
	"github.com/shashiranjanraj/souq/app/repositories"
	"github.com/shashiranjanraj/souq/pkg/collection"
	"github.com/shashiranjanraj/souq/pkg/event"
	"github.com/shashiranjanraj/souq/pkg/metrics"
	"github.com/shashiranjanraj/souq/pkg/orm"
	"github.com/shopspring/decimal"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	// EventStockChanged carries the ids of the products a checkout sold from.
	EventStockChanged = "stock.changed"
)

// OrderEvent is the payload of both order events.
type OrderEvent struct {
	Event string             `json:"event"`
	Order models.Order       `json:"order"`
	From  models.OrderStatus `json:"from,omitempty"`
}

// Contact holds the delivery details shared by both ways of ordering.
type Contact struct {
	FullName string `json:"full_name" validate:"required,max=255"`
	Phone    string `json:"phone"     validate:"required,max=50"`
	Email    string `json:"email"     validate:"nullable,email,max=255"`
	City     string `json:"city"      validate:"max=255"`
	Address  string `json:"address"   validate:"required"`
	Notes    string `json:"notes"`
}

// PlaceOrderInput is a single-product order from the storefront.
type PlaceOrderInput struct {
	Contact
	ProductID          uint     `json:"product_id"  validate:"required"`
	Quantity           int      `json:"quantity"    validate:"required,gte=1"`
	WebUserID          string   `json:"web_user_id" validate:"max=64"`
	SelectedAttributes []string `json:"selected_attributes"`
}

type CheckoutItem struct {
	ProductID          uint     `json:"product_id" validate:"required"`
	Quantity           int      `json:"quantity"   validate:"required,gte=1"`
	SelectedAttributes []string `json:"selected_attributes"`
}

// CheckoutInput is a storefront cart.
type CheckoutInput struct {
	Contact
	WebUserID string         `json:"web_user_id" validate:"required,max=64"`
	Items     []CheckoutItem `json:"items"       validate:"required,dive"`
}

type OrderService struct {
	db            *orm.Query
	orders        *repositories.OrderRepository
	deliveryTypes *repositories.DeliveryTypeRepository
}

func NewOrderService(db *orm.Query) *OrderService {
	return &OrderService{
		db:            db,
		orders:        repositories.NewOrderRepository(db),
		deliveryTypes: repositories.NewDeliveryTypeRepository(db),
	}
}

func newOrder(c Contact, webUserID string, userID *uint) models.Order {
	o := models.Order{
		UserID:           userID,
		FullName:         c.FullName,
		Phone:            c.Phone,
		Email:            c.Email,
		City:             c.City,
		Address:          c.Address,
		Notes:            c.Notes,
		DeliveryTypeName: models.PendingDeliveryType,
		OrderType:        models.StatusPending,
	}
	if webUserID != "" {
		o.WebUserID = &webUserID
	}
	return o
}

// Place creates a single-product order. Inventory is left untouched until
// the order is handled by staff.
func (s *OrderService) Place(ctx context.Context, in PlaceOrderInput, userID *uint) (models.Order, error) {
	order := newOrder(in.Contact, in.WebUserID, userID)
	order.ProductID = &in.ProductID
	order.Quantity = in.Quantity
	order.SelectedAttributes = models.StringList(in.SelectedAttributes)

	err := s.db.Transaction(ctx, func(tx *orm.Query) error {
		if err := repositories.NewDeliveryTypeRepository(tx).Ensure(ctx, models.PendingDeliveryType); err != nil {
			return err
		}
		p, err := activeProduct(ctx, repositories.NewProductRepository(tx), in.ProductID)
		if err != nil {
			return err
		}
		if in.Quantity > p.MaxQuantityPerUser {
			return fmt.Errorf("%w: product %d allows at most %d", ErrQuantityLimit, p.ID, p.MaxQuantityPerUser)
		}
		order.TotalPrice = p.Price.Mul(decimal.NewFromInt(int64(in.Quantity)))
		return repositories.NewOrderRepository(tx).Create(ctx, &order)
	})
	if err != nil {
		return models.Order{}, err
	}

	metrics.OrdersCreated.WithLabelValues("direct").Inc()
	event.FireAsync(EventOrderCreated, OrderEvent{Event: EventOrderCreated, Order: order})
	return order, nil
}

// Checkout creates an order with one item per cart line and moves the
// purchased units from quantity to sold. Every line must succeed or nothing
// is written.
func (s *OrderService) Checkout(ctx context.Context, in CheckoutInput, userID *uint) (models.Order, error) {
	order := newOrder(in.Contact, in.WebUserID, userID)
	order.SelectedAttributes = models.StringList{}
	units := 0

	err := s.db.Transaction(ctx, func(tx *orm.Query) error {
		if err := repositories.NewDeliveryTypeRepository(tx).Ensure(ctx, models.PendingDeliveryType); err != nil {
			return err
		}
		products := repositories.NewProductRepository(tx)
		orders := repositories.NewOrderRepository(tx)

		loaded := make(map[uint]models.Product, len(in.Items))
		perProduct := make(map[uint]int, len(in.Items))
		total := decimal.Zero
		for _, line := range in.Items {
			p, ok := loaded[line.ProductID]
			if !ok {
				var err error
				if p, err = activeProduct(ctx, products, line.ProductID); err != nil {
					return err
				}
				loaded[p.ID] = p
			}
			perProduct[p.ID] += line.Quantity
			if perProduct[p.ID] > p.MaxQuantityPerUser {
				return fmt.Errorf("%w: product %d allows at most %d", ErrQuantityLimit, p.ID, p.MaxQuantityPerUser)
			}
			total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		order.TotalPrice = total
		if err := orders.Create(ctx, &order); err != nil {
			return err
		}

		for _, line := range in.Items {
			item := models.OrderItem{
				OrderID:            order.ID,
				ProductID:          line.ProductID,
				Quantity:           line.Quantity,
				Price:              loaded[line.ProductID].Price,
				SelectedAttributes: models.StringList(line.SelectedAttributes),
			}
			if item.SelectedAttributes == nil {
				item.SelectedAttributes = models.StringList{}
			}
			if err := orders.CreateItem(ctx, &item); err != nil {
				return err
			}
			ok, err := products.Decrement(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: product %d", ErrInsufficientStock, line.ProductID)
			}
			units += line.Quantity
			order.Items = append(order.Items, item)
		}
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}

	event.Fire(EventStockChanged, collection.Map(order.Items, func(it models.OrderItem) uint { return it.ProductID }))

	metrics.OrdersCreated.WithLabelValues("web").Inc()
	metrics.UnitsSold.Add(float64(units))
	event.FireAsync(EventOrderCreated, OrderEvent{Event: EventOrderCreated, Order: order})
	return order, nil
}

func activeProduct(ctx context.Context, products *repositories.ProductRepository, id uint) (models.Product, error) {
	p, err := products.Find(ctx, id)
	if orm.IsNotFound(err) || (err == nil && !p.IsActive) {
		return p, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	return p, err
}

// List returns orders newest first; an empty status means all of them.
func (s *OrderService) List(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	return s.orders.Recent(ctx, status)
}

func (s *OrderService) Find(ctx context.Context, id uint) (models.Order, error) {
	o, err := s.orders.FindWithItems(ctx, id)
	return o, translate(err)
}

func (s *OrderService) Confirm(ctx context.Context, id uint) (models.Order, error) {
	return s.Transition(ctx, id, models.StatusConfirmed)
}

func (s *OrderService) Cancel(ctx context.Context, id uint) (models.Order, error) {
	return s.Transition(ctx, id, models.StatusCancelled)
}

func (s *OrderService) Deliver(ctx context.Context, id uint) (models.Order, error) {
	return s.Transition(ctx, id, models.StatusDelivered)
}

// Transition moves an order to `to` following the status table. Asking for
// the status the order already has is a no-op.
func (s *OrderService) Transition(ctx context.Context, id uint, to models.OrderStatus) (models.Order, error) {
	order, err := s.orders.Find(ctx, id)
	if err != nil {
		return order, translate(err)
	}
	if order.OrderType == to {
		return s.Find(ctx, id)
	}

	from := order.OrderType
	ok, err := s.orders.Transition(ctx, id, to, models.AllowedSources(to))
	if err != nil {
		return order, err
	}
	if !ok {
		return order, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, to)
	}

	order, err = s.Find(ctx, id)
	if err != nil {
		return order, err
	}
	metrics.OrderTransitions.WithLabelValues(string(to)).Inc()
	event.FireAsync(EventOrderStatusChanged, OrderEvent{Event: EventOrderStatusChanged, Order: order, From: from})
	return order, nil
}

// AssignDeliveryType sets the delivery type of an order to an existing one.
func (s *OrderService) AssignDeliveryType(ctx context.Context, id uint, name string) (models.Order, error) {
	ok, err := s.deliveryTypes.ExistsByName(ctx, name)
	if err != nil {
		return models.Order{}, err
	}
	if !ok {
		return models.Order{}, fmt.Errorf("%w: %q", ErrDeliveryTypeNotFound, name)
	}
	if _, err := s.orders.Find(ctx, id); err != nil {
		return models.Order{}, translate(err)
	}
	if err := s.orders.SetDeliveryType(ctx, id, name); err != nil {
		return models.Order{}, err
	}
	return s.Find(ctx, id)
}
