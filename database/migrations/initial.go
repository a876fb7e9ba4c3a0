package migrations

import (
	"github.com/shashiranjanraj/souq/app/models"
	"github.com/shashiranjanraj/souq/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260101000000_create_users_table", table(&models.User{}, "users"))
	migration.Register("20260101000001_create_categories_table", table(&models.Category{}, "categories"))
	migration.Register("20260101000002_create_brands_table", table(&models.Brand{}, "brands"))
	migration.Register("20260101000003_create_attributes_table", table(&models.Attribute{}, "attributes"))
	migration.Register("20260101000004_create_products_table", table(&models.Product{}, "products"))
	migration.Register("20260101000005_create_delivery_types_table", table(&models.DeliveryType{}, "delivery_types"))
	migration.Register("20260101000006_create_orders_table", table(&models.Order{}, "orders"))
	migration.Register("20260101000007_create_order_items_table", table(&models.OrderItem{}, "order_items"))
}

// createTable migrates one model and drops its table on rollback.
type createTable struct {
	model interface{}
	name  string
}

func table(model interface{}, name string) *createTable {
	return &createTable{model: model, name: name}
}

func (m *createTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(m.model)
}

func (m *createTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(m.name)
}
