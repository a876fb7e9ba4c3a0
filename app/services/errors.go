package services

import (
	"errors"

	"github.com/shashiranjanraj/souq/pkg/orm"
)

var (
	ErrNotFound             = errors.New("resource not found")
	ErrInvalidTransition    = errors.New("order status transition not allowed")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrQuantityLimit        = errors.New("quantity exceeds the per-user limit")
	ErrDeliveryTypeNotFound = errors.New("delivery type not found")
	ErrSKUExhausted         = errors.New("could not generate a unique SKU")
	ErrDuplicate            = errors.New("resource already exists")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidRole          = errors.New("unknown role")
	ErrUnsupportedImage     = errors.New("unsupported image type")
	ErrStorageUnavailable   = errors.New("file storage is not configured")
)

// translate maps orm sentinels onto the service ones; other errors pass
// through as storage faults.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case orm.IsNotFound(err):
		return ErrNotFound
	case errors.Is(err, orm.ErrDuplicate):
		return ErrDuplicate
	}
	return err
}
