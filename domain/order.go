package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusCompleted OrderStatus = "Completed"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusCompleted:
		return true
	}
	return false
}

// Customer is the personally identifying part of an order. It is only ever
// persisted encrypted.
type Customer struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	Street        string `json:"street"`
	Unit          string `json:"unit"`
	City          string `json:"city"`
	StateCode     string `json:"stateCode"`
	Zipcode       string `json:"zipcode"`
	Phone         string `json:"phone"`
	TransactionID string `json:"transactionId"`
}

type Order struct {
	ID int64 `json:"id"`
	Customer
	Status    OrderStatus     `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	Created   time.Time       `json:"created"`
	ListItems []Item          `json:"listItems,omitempty"`
}

type NewOrder struct {
	Customer
	Amount decimal.Decimal
}

// OrderUpdate is a sparse set of order fields; nil fields are left untouched.
type OrderUpdate struct {
	Email         *string
	Name          *string
	Street        *string
	Unit          *string
	City          *string
	StateCode     *string
	Zipcode       *string
	Phone         *string
	TransactionID *string
	Status        *OrderStatus
	Amount        *decimal.Decimal
}

// PIIFields returns the non-nil customer fields keyed by application name.
func (u OrderUpdate) PIIFields() map[string]string {
	fields := map[string]string{}
	set := func(name string, v *string) {
		if v != nil {
			fields[name] = *v
		}
	}
	set("email", u.Email)
	set("name", u.Name)
	set("street", u.Street)
	set("unit", u.Unit)
	set("city", u.City)
	set("stateCode", u.StateCode)
	set("zipcode", u.Zipcode)
	set("phone", u.Phone)
	set("transactionId", u.TransactionID)
	return fields
}
