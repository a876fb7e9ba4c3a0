package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrCorruptData is returned when a JSON column cannot be decoded.
var ErrCorruptData = errors.New("models: corrupt column data")

func init() {
	// prices render as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// AttributeSelection is one attribute attached to a product with the values
// a shopper can pick from.
type AttributeSelection struct {
	AttributeID uint     `json:"attribute_id"`
	Values      []string `json:"values"`
}

// AttributeList is stored as a JSON text column.
type AttributeList []AttributeSelection

func (l AttributeList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return encodeColumn(l)
}

func (l *AttributeList) Scan(src interface{}) error {
	out := AttributeList{}
	if err := decodeColumn("attributes", src, &out); err != nil {
		return err
	}
	*l = out
	return nil
}

// ImageList holds the ordered secondary image keys of a product.
type ImageList []string

func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return encodeColumn(l)
}

func (l *ImageList) Scan(src interface{}) error {
	out := ImageList{}
	if err := decodeColumn("images", src, &out); err != nil {
		return err
	}
	*l = out
	return nil
}

// StringList is the selected-attribute snapshot kept on an order.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return encodeColumn(l)
}

func (l *StringList) Scan(src interface{}) error {
	out := StringList{}
	if err := decodeColumn("selected_attributes", src, &out); err != nil {
		return err
	}
	*l = out
	return nil
}

func encodeColumn(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// decodeColumn treats NULL and "" as an empty list. Anything else must be
// valid JSON of the expected shape.
func decodeColumn(column string, src interface{}, dest interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("%w: %s has unsupported type %T", ErrCorruptData, column, src)
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptData, column, err)
	}
	return nil
}
