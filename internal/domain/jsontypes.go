package domain

import (
	"database/sql/driver"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StringList is a []string stored as a JSON text column
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.MarshalToString([]string(l))
}

func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.UnmarshalFromString(v, l)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", src)
	}
}

// OrderItems is a []OrderItem stored as a JSON text column
type OrderItems []OrderItem

func (items OrderItems) Value() (driver.Value, error) {
	if items == nil {
		return "[]", nil
	}
	return json.MarshalToString([]OrderItem(items))
}

func (items *OrderItems) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*items = nil
		return nil
	case []byte:
		return json.Unmarshal(v, items)
	case string:
		return json.UnmarshalFromString(v, items)
	default:
		return fmt.Errorf("unsupported type for OrderItems: %T", src)
	}
}
