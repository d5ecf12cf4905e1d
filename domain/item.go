package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Item struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Shipping    decimal.Decimal `json:"shipping"`
	Quantity    int64           `json:"quantity"`
	Created     time.Time       `json:"created"`
	IsSold      bool            `json:"isSold"`
	Image       *string         `json:"image"`
}

// NewItem holds the fields required to list a new item. Pointers distinguish
// "missing" from zero values.
type NewItem struct {
	Name        string
	Description string
	Price       *decimal.Decimal
	Shipping    *decimal.Decimal
	Quantity    *int64
}

// ItemUpdate is a sparse set of item fields; nil fields are left untouched.
type ItemUpdate struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Shipping    *decimal.Decimal
	Quantity    *int64
	IsSold      *bool
}

// Fields returns the non-nil fields keyed by their application name.
func (u ItemUpdate) Fields() map[string]any {
	fields := map[string]any{}
	if u.Name != nil {
		fields["name"] = *u.Name
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	if u.Price != nil {
		fields["price"] = *u.Price
	}
	if u.Shipping != nil {
		fields["shipping"] = *u.Shipping
	}
	if u.Quantity != nil {
		fields["quantity"] = *u.Quantity
	}
	if u.IsSold != nil {
		fields["isSold"] = *u.IsSold
	}
	return fields
}
