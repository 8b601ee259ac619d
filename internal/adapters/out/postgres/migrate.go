package postgres

import (
	"candydelivery/internal/adapters/out/postgres/courierrepo"
	"candydelivery/internal/adapters/out/postgres/orderrepo"
	"candydelivery/internal/adapters/out/postgres/outboxrepo"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Migrate creates or updates the couriers, orders and outbox_messages tables.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(&courierrepo.CourierDTO{}, &orderrepo.OrderDTO{}, &outboxrepo.OutboxMessageDTO{})
	return errors.Wrap(err, "auto migrate")
}
