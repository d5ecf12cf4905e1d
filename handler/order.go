package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/mural-studio/backend/domain"
	"github.com/mural-studio/backend/notify"
)

type customerRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Name          string `json:"name" validate:"required"`
	Street        string `json:"street" validate:"required"`
	Unit          string `json:"unit"`
	City          string `json:"city" validate:"required"`
	StateCode     string `json:"stateCode" validate:"required,len=2"`
	Zipcode       string `json:"zipcode" validate:"required,min=5,max=10"`
	Phone         string `json:"phone"`
	TransactionID string `json:"transactionId"`
}

func (r customerRequest) customer() domain.Customer {
	return domain.Customer{
		Email:         r.Email,
		Name:          r.Name,
		Street:        r.Street,
		Unit:          r.Unit,
		City:          r.City,
		StateCode:     r.StateCode,
		Zipcode:       r.Zipcode,
		Phone:         r.Phone,
		TransactionID: r.TransactionID,
	}
}

type addOrderRequest struct {
	customerRequest
	Amount  *decimal.Decimal `json:"amount" validate:"required"`
	ItemIDs []int64          `json:"itemIds" validate:"omitempty,dive,gt=0"`
}

type checkoutRequest struct {
	customerRequest
	TransactionID string           `json:"transactionId" validate:"required"`
	Amount        *decimal.Decimal `json:"amount" validate:"required"`
	ItemIDs       []int64          `json:"itemIds" validate:"required,min=1,dive,gt=0"`
}

type updateOrderRequest struct {
	Email         *string             `json:"email" validate:"omitempty,email"`
	Name          *string             `json:"name" validate:"omitempty,min=1"`
	Street        *string             `json:"street" validate:"omitempty,min=1"`
	Unit          *string             `json:"unit"`
	City          *string             `json:"city" validate:"omitempty,min=1"`
	StateCode     *string             `json:"stateCode" validate:"omitempty,len=2"`
	Zipcode       *string             `json:"zipcode" validate:"omitempty,min=5,max=10"`
	Phone         *string             `json:"phone"`
	TransactionID *string             `json:"transactionId"`
	Status        *domain.OrderStatus `json:"status" validate:"omitempty,oneof=Pending Confirmed Shipped Completed"`
	Amount        *decimal.Decimal    `json:"amount"`
}

// Checkout places an order for the given items, takes each of them out of
// stock and confirms the order. The paid amount must equal the price plus
// shipping of every item. When an item cannot be sold the order is left
// pending for an admin to resolve.
func (h *Handler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(checkoutRequest)
	if err := bind(c, req); err != nil {
		return httpError(c, err)
	}
	total, err := h.itemsTotal(ctx, req.ItemIDs)
	if err != nil {
		return httpError(c, err)
	}
	if !req.Amount.Equal(total) {
		return httpError(c, errors.Wrapf(domain.ErrBadRequest,
			"amount %s does not match item total %s", req.Amount.StringFixed(2), total.StringFixed(2)))
	}
	customer := req.customer()
	customer.TransactionID = req.TransactionID

	order, err := h.OrderRepo.Create(ctx, domain.NewOrder{Customer: customer, Amount: *req.Amount}, req.ItemIDs)
	if err != nil {
		if order.ID != 0 {
			c.Logger().Warnf("order %d left pending: %s", order.ID, err.Error())
		}
		return httpError(c, err)
	}

	for _, item := range order.ListItems {
		if _, err := h.ItemRepo.Sell(ctx, item.ID); err != nil {
			c.Logger().Warnf("order %d left pending: %s", order.ID, err.Error())
			return httpError(c, errors.WithMessagef(err, "order %d", order.ID))
		}
	}

	order, err = h.OrderRepo.MarkConfirmed(ctx, order.ID)
	if err != nil {
		return httpError(c, err)
	}

	subject, body := notify.OrderConfirmation(order.ID, order.Name, order.Amount.StringFixed(2))
	notify.BestEffort(ctx, h.Mailer, order.Email, subject, body)

	return c.JSON(http.StatusCreated, order)
}

func (h *Handler) itemsTotal(ctx context.Context, ids []int64) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, id := range ids {
		item, err := h.ItemRepo.Get(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			return decimal.Zero, errors.Wrapf(domain.ErrBadRequest, "unknown item %d", id)
		}
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(item.Price).Add(item.Shipping)
	}
	return total, nil
}

// AddOrder lets an admin record an order by hand. Unknown item ids are
// reported but the order is kept with the items that do exist.
func (h *Handler) AddOrder(c echo.Context) error {
	req := new(addOrderRequest)
	if err := bind(c, req); err != nil {
		return httpError(c, err)
	}

	order, err := h.OrderRepo.Create(c.Request().Context(),
		domain.NewOrder{Customer: req.customer(), Amount: *req.Amount}, req.ItemIDs)
	var unknown *domain.UnknownItemsError
	switch {
	case errors.As(err, &unknown):
		return c.JSON(http.StatusCreated, map[string]any{
			"order":          order,
			"unknownItemIds": unknown.ItemIDs,
		})
	case err != nil:
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *Handler) GetOrders(c echo.Context) error {
	orders, err := h.OrderRepo.GetAll(c.Request().Context())
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrder(c echo.Context) error {
	return handleID(c, http.StatusOK, func(id int64) (domain.Order, error) {
		return h.OrderRepo.Get(c.Request().Context(), id)
	})
}

func (h *Handler) UpdateOrder(c echo.Context) error {
	req := new(updateOrderRequest)
	if err := bind(c, req); err != nil {
		return httpError(c, err)
	}
	return handleID(c, http.StatusOK, func(id int64) (domain.Order, error) {
		return h.OrderRepo.Update(c.Request().Context(), id, domain.OrderUpdate{
			Email:         req.Email,
			Name:          req.Name,
			Street:        req.Street,
			Unit:          req.Unit,
			City:          req.City,
			StateCode:     req.StateCode,
			Zipcode:       req.Zipcode,
			Phone:         req.Phone,
			TransactionID: req.TransactionID,
			Status:        req.Status,
			Amount:        req.Amount,
		})
	})
}

func (h *Handler) AddOrderItem(c echo.Context) error {
	return h.orderItem(c, h.OrderRepo.AddItem)
}

func (h *Handler) RemoveOrderItem(c echo.Context) error {
	return h.orderItem(c, h.OrderRepo.RemoveItem)
}

func (h *Handler) orderItem(c echo.Context, fn func(ctx context.Context, orderID, itemID int64) (domain.Order, error)) error {
	itemID, err := paramID(c, "itemID")
	if err != nil {
		return httpError(c, err)
	}
	return handleID(c, http.StatusOK, func(id int64) (domain.Order, error) {
		return fn(c.Request().Context(), id, itemID)
	})
}

func (h *Handler) ConfirmOrder(c echo.Context) error {
	return handleID(c, http.StatusOK, func(id int64) (domain.Order, error) {
		return h.OrderRepo.MarkConfirmed(c.Request().Context(), id)
	})
}

// ShipOrder marks the order shipped and lets the customer know.
func (h *Handler) ShipOrder(c echo.Context) error {
	ctx := c.Request().Context()
	return handleID(c, http.StatusOK, func(id int64) (domain.Order, error) {
		order, err := h.OrderRepo.MarkShipped(ctx, id)
		if err != nil {
			return domain.Order{}, err
		}
		subject, body := notify.OrderShipped(order.ID, order.Name)
		notify.BestEffort(ctx, h.Mailer, order.Email, subject, body)
		return order, nil
	})
}

func (h *Handler) CompleteOrder(c echo.Context) error {
	return handleID(c, http.StatusOK, func(id int64) (domain.Order, error) {
		return h.OrderRepo.MarkCompleted(c.Request().Context(), id)
	})
}

// RemoveOrder hides the order. AbortOrder erases it with its associations.
func (h *Handler) RemoveOrder(c echo.Context) error {
	return noContent(c, func(id int64) error {
		return h.OrderRepo.Remove(c.Request().Context(), id)
	})
}

func (h *Handler) AbortOrder(c echo.Context) error {
	return noContent(c, func(id int64) error {
		return h.OrderRepo.Delete(c.Request().Context(), id)
	})
}
