package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/mural-studio/backend/domain"
)

type addItemRequest struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Shipping    *decimal.Decimal `json:"shipping" validate:"required"`
	Quantity    *int64           `json:"quantity" validate:"required,gte=0"`
}

type updateItemRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1"`
	Description *string          `json:"description" validate:"omitempty,min=1"`
	Price       *decimal.Decimal `json:"price"`
	Shipping    *decimal.Decimal `json:"shipping"`
	Quantity    *int64           `json:"quantity" validate:"omitempty,gte=0"`
	IsSold      *bool            `json:"isSold"`
}

// GetItems lists the shop inventory, optionally filtered by ?status=available|sold.
func (h *Handler) GetItems(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		items []domain.Item
		err   error
	)
	switch c.QueryParam("status") {
	case "":
		items, err = h.ItemRepo.GetAll(ctx)
	case "available":
		items, err = h.ItemRepo.GetAllAvailable(ctx)
	case "sold":
		items, err = h.ItemRepo.GetAllSold(ctx)
	default:
		err = errors.Wrapf(domain.ErrBadRequest, "unknown status filter %q", c.QueryParam("status"))
	}
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetItem(c echo.Context) error {
	return handleID(c, http.StatusOK, func(id int64) (domain.Item, error) {
		return h.ItemRepo.Get(c.Request().Context(), id)
	})
}

func (h *Handler) AddItem(c echo.Context) error {
	req := new(addItemRequest)
	if err := bind(c, req); err != nil {
		return httpError(c, err)
	}

	item, err := h.ItemRepo.Create(c.Request().Context(), domain.NewItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Shipping:    req.Shipping,
		Quantity:    req.Quantity,
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *Handler) UpdateItem(c echo.Context) error {
	req := new(updateItemRequest)
	if err := bind(c, req); err != nil {
		return httpError(c, err)
	}
	return handleID(c, http.StatusOK, func(id int64) (domain.Item, error) {
		return h.ItemRepo.Update(c.Request().Context(), id, domain.ItemUpdate{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Shipping:    req.Shipping,
			Quantity:    req.Quantity,
			IsSold:      req.IsSold,
		})
	})
}

func (h *Handler) SellItem(c echo.Context) error {
	return handleID(c, http.StatusOK, func(id int64) (domain.Item, error) {
		return h.ItemRepo.Sell(c.Request().Context(), id)
	})
}

func (h *Handler) MarkItemSold(c echo.Context) error {
	return handleID(c, http.StatusOK, func(id int64) (domain.Item, error) {
		return h.ItemRepo.MarkSold(c.Request().Context(), id)
	})
}

func (h *Handler) UploadItemImage(c echo.Context) error {
	ctx := c.Request().Context()
	return handleID(c, http.StatusOK, func(id int64) (domain.Item, error) {
		before, err := h.ItemRepo.Get(ctx, id)
		if err != nil {
			return domain.Item{}, err
		}
		url, err := h.saveUpload(c)
		if err != nil {
			return domain.Item{}, err
		}
		item, err := h.ItemRepo.UploadImage(ctx, id, url)
		if err != nil {
			h.Images.Remove(url)
			return domain.Item{}, err
		}
		if before.Image != nil {
			h.Images.Remove(*before.Image)
		}
		return item, nil
	})
}

func (h *Handler) DeleteItemImage(c echo.Context) error {
	ctx := c.Request().Context()
	return handleID(c, http.StatusOK, func(id int64) (domain.Item, error) {
		before, err := h.ItemRepo.Get(ctx, id)
		if err != nil {
			return domain.Item{}, err
		}
		item, err := h.ItemRepo.DeleteImage(ctx, id)
		if err != nil {
			return domain.Item{}, err
		}
		if before.Image != nil {
			h.Images.Remove(*before.Image)
		}
		return item, nil
	})
}

// DeleteItem removes the item together with its uploaded image.
func (h *Handler) DeleteItem(c echo.Context) error {
	ctx := c.Request().Context()
	return noContent(c, func(id int64) error {
		before, err := h.ItemRepo.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := h.ItemRepo.Delete(ctx, id); err != nil {
			return err
		}
		if before.Image != nil {
			h.Images.Remove(*before.Image)
		}
		return nil
	})
}

// saveUpload stores the multipart "image" field of the request.
func (h *Handler) saveUpload(c echo.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", errors.Wrap(domain.ErrBadRequest, "image file is required")
	}
	return h.Images.Save(file)
}
