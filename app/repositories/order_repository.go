package repositories

import (
	"context"
	"time"

	"github.com/shashiranjanraj/souq/app/models"
	"github.com/shashiranjanraj/souq/pkg/orm"
	"github.com/shopspring/decimal"
)

type OrderRepository struct {
	Repository[models.Order]
}

func NewOrderRepository(q *orm.Query) *OrderRepository {
	return &OrderRepository{newRepository[models.Order](q)}
}

// Recent lists orders newest first, optionally only those in status.
func (r *OrderRepository) Recent(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	q := r.model(ctx)
	if status != "" {
		q = q.Where("order_type = ?", status)
	}
	orders := []models.Order{}
	err := q.Order("id DESC").Get(&orders)
	return orders, err
}

// FindWithItems loads an order and its checkout lines.
func (r *OrderRepository) FindWithItems(ctx context.Context, id uint) (models.Order, error) {
	var order models.Order
	err := r.model(ctx).Preload("Items").Where("id = ?", id).First(&order)
	return order, err
}

func (r *OrderRepository) CreateItem(ctx context.Context, item *models.OrderItem) error {
	return r.q.WithContext(ctx).Create(item)
}

// Transition sets order_type to `to` only if the order currently sits in one
// of from. It reports whether the row changed.
func (r *OrderRepository) Transition(ctx context.Context, id uint, to models.OrderStatus, from []models.OrderStatus) (bool, error) {
	if len(from) == 0 {
		return false, nil
	}
	n, err := r.model(ctx).
		Where("id = ? AND order_type IN ?", id, from).
		Updates(map[string]interface{}{"order_type": to})
	return n > 0, err
}

func (r *OrderRepository) SetDeliveryType(ctx context.Context, id uint, name string) error {
	_, err := r.model(ctx).Where("id = ?", id).Updates(map[string]interface{}{"delivery_type_name": name})
	return err
}

// CountByStatus returns the number of orders per status, with every status
// present.
func (r *OrderRepository) CountByStatus(ctx context.Context) (map[models.OrderStatus]int64, error) {
	var rows []struct {
		OrderType models.OrderStatus
		Total     int64
	}
	err := r.model(ctx).
		Select("order_type, COUNT(*) AS total").
		Group("order_type").
		Scan(&rows)
	if err != nil {
		return nil, err
	}

	out := make(map[models.OrderStatus]int64, len(models.Statuses))
	for _, s := range models.Statuses {
		out[s] = 0
	}
	for _, row := range rows {
		out[row.OrderType] = row.Total
	}
	return out, nil
}

// Revenue sums total_price over orders in status.
func (r *OrderRepository) Revenue(ctx context.Context, status models.OrderStatus) (decimal.Decimal, error) {
	var out struct{ Total decimal.NullDecimal }
	err := r.model(ctx).
		Select("SUM(total_price) AS total").
		Where("order_type = ?", status).
		Scan(&out)
	if err != nil || !out.Total.Valid {
		return decimal.Zero, err
	}
	return out.Total.Decimal, nil
}

// CountSince counts orders created at or after t.
func (r *OrderRepository) CountSince(ctx context.Context, t time.Time) (int64, error) {
	return r.model(ctx).Where("created_at >= ?", t).Count()
}
