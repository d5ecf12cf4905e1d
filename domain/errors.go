package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Error kinds shared by every repository. Callers wrap them with context and
// compare with errors.Is.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// UnknownItemsError is returned when an order was stored but some of the
// requested items could not be attached to it.
type UnknownItemsError struct {
	OrderID int64
	ItemIDs []int64
}

func (e *UnknownItemsError) Error() string {
	ids := make([]string, len(e.ItemIDs))
	for i, id := range e.ItemIDs {
		ids[i] = strconv.FormatInt(id, 10)
	}
	return fmt.Sprintf("order %d: unknown item ids: %s", e.OrderID, strings.Join(ids, ", "))
}

func (e *UnknownItemsError) Unwrap() error { return ErrBadRequest }
