package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/mural-studio/backend/db"
	"github.com/mural-studio/backend/domain"
	"github.com/mural-studio/backend/handler"
)

type sentMail struct {
	to, subject string
}

type recordingMailer struct {
	sent []sentMail
}

func (m *recordingMailer) Send(_ context.Context, to, subject, _ string) error {
	m.sent = append(m.sent, sentMail{to: to, subject: subject})
	return nil
}

// newContext builds an echo context the way the router would hand it to a
// handler, with the request validator installed.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	// ref: https://echo.labstack.com/guide/testing/
	e := echo.New()
	e.Validator = handler.NewRequestValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// statusOf reports the status a handler produced, whether it wrote a response
// or returned an *echo.HTTPError.
func statusOf(t *testing.T, err error, rec *httptest.ResponseRecorder) int {
	t.Helper()
	if err == nil {
		return rec.Code
	}
	echoErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	return echoErr.Code
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestGetItems(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		query          string
		injector       func(*db.MockItemRepository)
		wantStatusCode int
		wantCount      int
	}{
		"200: all items": {
			injector: func(m *db.MockItemRepository) {
				m.EXPECT().GetAll(gomock.Any()).Return([]domain.Item{{ID: 1}, {ID: 2}}, nil).Times(1)
			},
			wantStatusCode: http.StatusOK,
			wantCount:      2,
		},
		"200: available items": {
			query: "?status=available",
			injector: func(m *db.MockItemRepository) {
				m.EXPECT().GetAllAvailable(gomock.Any()).Return([]domain.Item{{ID: 1}}, nil).Times(1)
			},
			wantStatusCode: http.StatusOK,
			wantCount:      1,
		},
		"200: sold items": {
			query: "?status=sold",
			injector: func(m *db.MockItemRepository) {
				m.EXPECT().GetAllSold(gomock.Any()).Return([]domain.Item{}, nil).Times(1)
			},
			wantStatusCode: http.StatusOK,
		},
		"400: unknown filter": {
			query:          "?status=lost",
			injector:       func(_ *db.MockItemRepository) {},
			wantStatusCode: http.StatusBadRequest,
		},
		"500: internal server error": {
			injector: func(m *db.MockItemRepository) {
				m.EXPECT().GetAll(gomock.Any()).Return(nil, errors.New("strange error")).Times(1)
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for name, tt := range cases {
		tt := tt

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c, rec := newContext(http.MethodGet, "/items"+tt.query, "")

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			itemRepo := db.NewMockItemRepository(ctrl)
			tt.injector(itemRepo)

			h := handler.Handler{ItemRepo: itemRepo}
			err := h.GetItems(c)
			if got := statusOf(t, err, rec); got != tt.wantStatusCode {
				t.Fatalf("unexpected status code: want: %d, got: %d", tt.wantStatusCode, got)
			}
			if err != nil {
				return
			}
			var items []domain.Item
			if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
				t.Fatalf("unexpected error for json.Unmarshal: %s", err.Error())
			}
			if len(items) != tt.wantCount {
				t.Fatalf("unexpected item count: want: %d, got: %d", tt.wantCount, len(items))
			}
		})
	}
}

func TestGetItem(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		id             string
		injector       func(*db.MockItemRepository)
		wantStatusCode int
	}{
		"200: found": {
			id: "1",
			injector: func(m *db.MockItemRepository) {
				m.EXPECT().Get(gomock.Any(), int64(1)).Return(domain.Item{ID: 1}, nil).Times(1)
			},
			wantStatusCode: http.StatusOK,
		},
		"400: invalid id": {
			id:             "abc",
			injector:       func(_ *db.MockItemRepository) {},
			wantStatusCode: http.StatusBadRequest,
		},
		"404: not found": {
			id: "2",
			injector: func(m *db.MockItemRepository) {
				m.EXPECT().Get(gomock.Any(), int64(2)).Return(domain.Item{}, errors.Wrap(domain.ErrNotFound, "item 2")).Times(1)
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for name, tt := range cases {
		tt := tt

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c, rec := newContext(http.MethodGet, "/items/:id", "")
			c.SetParamNames("id")
			c.SetParamValues(tt.id)

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			itemRepo := db.NewMockItemRepository(ctrl)
			tt.injector(itemRepo)

			h := handler.Handler{ItemRepo: itemRepo}
			if got := statusOf(t, h.GetItem(c), rec); got != tt.wantStatusCode {
				t.Fatalf("unexpected status code: want: %d, got: %d", tt.wantStatusCode, got)
			}
		})
	}
}

func TestAddItem(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		body           string
		injector       func(*db.MockItemRepository)
		wantStatusCode int
	}{
		"201: created": {
			body: `{"name":"Rose","description":"Red rose print","price":"10.50","shipping":"2","quantity":3}`,
			injector: func(m *db.MockItemRepository) {
				m.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, item domain.NewItem) (domain.Item, error) {
						if item.Name != "Rose" || !item.Price.Equal(*price("10.5")) || *item.Quantity != 3 {
							return domain.Item{}, errors.Errorf("unexpected new item: %+v", item)
						}
						return domain.Item{ID: 1, Name: item.Name}, nil
					}).Times(1)
			},
			wantStatusCode: http.StatusCreated,
		},
		"400: missing price": {
			body:           `{"name":"Rose","description":"Red rose print","shipping":"2","quantity":3}`,
			injector:       func(_ *db.MockItemRepository) {},
			wantStatusCode: http.StatusBadRequest,
		},
		"400: negative quantity": {
			body:           `{"name":"Rose","description":"Red rose print","price":"10","shipping":"2","quantity":-1}`,
			injector:       func(_ *db.MockItemRepository) {},
			wantStatusCode: http.StatusBadRequest,
		},
		"400: rejected by repository": {
			body: `{"name":"Rose","description":"Red rose print","price":"-10","shipping":"2","quantity":3}`,
			injector: func(m *db.MockItemRepository) {
				m.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(domain.Item{}, errors.Wrap(domain.ErrBadRequest, "negative price")).Times(1)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		"400: malformed body": {
			body:           `{"name":`,
			injector:       func(_ *db.MockItemRepository) {},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for name, tt := range cases {
		tt := tt

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c, rec := newContext(http.MethodPost, "/items", tt.body)

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			itemRepo := db.NewMockItemRepository(ctrl)
			tt.injector(itemRepo)

			h := handler.Handler{ItemRepo: itemRepo}
			if got := statusOf(t, h.AddItem(c), rec); got != tt.wantStatusCode {
				t.Fatalf("unexpected status code: want: %d, got: %d", tt.wantStatusCode, got)
			}
		})
	}
}

const checkoutBody = `{
	"email": "ada@example.com",
	"name": "Ada Lovelace",
	"street": "12 Analytical Way",
	"city": "Portland",
	"stateCode": "OR",
	"zipcode": "97201",
	"transactionId": "txn_123",
	"amount": "135.50",
	"itemIds": [1, 2]
}`

func TestCheckout(t *testing.T) {
	t.Parallel()

	pending := domain.Order{
		ID:        7,
		Customer:  domain.Customer{Email: "ada@example.com", Name: "Ada Lovelace"},
		Status:    domain.OrderStatusPending,
		Amount:    decimal.RequireFromString("135.50"),
		ListItems: []domain.Item{{ID: 1}, {ID: 2}},
	}
	confirmed := pending
	confirmed.Status = domain.OrderStatusConfirmed

	priced := func(m *db.MockItemRepository) {
		m.EXPECT().Get(gomock.Any(), int64(1)).
			Return(domain.Item{ID: 1, Price: *price("100"), Shipping: *price("10")}, nil).Times(1)
		m.EXPECT().Get(gomock.Any(), int64(2)).
			Return(domain.Item{ID: 2, Price: *price("20.5"), Shipping: *price("5")}, nil).Times(1)
	}

	cases := map[string]struct {
		body                 string
		injectorForOrderRepo func(*db.MockOrderRepository)
		injectorForItemRepo  func(*db.MockItemRepository)
		wantStatusCode       int
		wantMails            int
	}{
		"201: order confirmed": {
			body: checkoutBody,
			injectorForOrderRepo: func(m *db.MockOrderRepository) {
				gomock.InOrder(
					m.EXPECT().Create(gomock.Any(), gomock.Any(), []int64{1, 2}).DoAndReturn(
						func(_ context.Context, order domain.NewOrder, _ []int64) (domain.Order, error) {
							if order.TransactionID != "txn_123" || order.StateCode != "OR" {
								return domain.Order{}, errors.Errorf("unexpected new order: %+v", order)
							}
							return pending, nil
						}).Times(1),
					m.EXPECT().MarkConfirmed(gomock.Any(), int64(7)).Return(confirmed, nil).Times(1),
				)
			},
			injectorForItemRepo: func(m *db.MockItemRepository) {
				priced(m)
				m.EXPECT().Sell(gomock.Any(), int64(1)).Return(domain.Item{ID: 1}, nil).Times(1)
				m.EXPECT().Sell(gomock.Any(), int64(2)).Return(domain.Item{ID: 2}, nil).Times(1)
			},
			wantStatusCode: http.StatusCreated,
			wantMails:      1,
		},
		"400: amount does not match items": {
			body:                 strings.Replace(checkoutBody, "135.50", "1.00", 1),
			injectorForOrderRepo: func(_ *db.MockOrderRepository) {},
			injectorForItemRepo:  priced,
			wantStatusCode:       http.StatusBadRequest,
		},
		"400: unknown item": {
			body:                 checkoutBody,
			injectorForOrderRepo: func(_ *db.MockOrderRepository) {},
			injectorForItemRepo: func(m *db.MockItemRepository) {
				m.EXPECT().Get(gomock.Any(), int64(1)).
					Return(domain.Item{ID: 1, Price: *price("100"), Shipping: *price("10")}, nil).Times(1)
				m.EXPECT().Get(gomock.Any(), int64(2)).
					Return(domain.Item{}, errors.Wrap(domain.ErrNotFound, "item 2")).Times(1)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		"400: item deleted while ordering": {
			body: checkoutBody,
			injectorForOrderRepo: func(m *db.MockOrderRepository) {
				m.EXPECT().Create(gomock.Any(), gomock.Any(), []int64{1, 2}).
					Return(pending, &domain.UnknownItemsError{OrderID: 7, ItemIDs: []int64{2}}).Times(1)
			},
			injectorForItemRepo: priced,
			wantStatusCode:      http.StatusBadRequest,
		},
		"400: item sold out leaves order pending": {
			body: checkoutBody,
			injectorForOrderRepo: func(m *db.MockOrderRepository) {
				m.EXPECT().Create(gomock.Any(), gomock.Any(), []int64{1, 2}).Return(pending, nil).Times(1)
			},
			injectorForItemRepo: func(m *db.MockItemRepository) {
				priced(m)
				m.EXPECT().Sell(gomock.Any(), int64(1)).Return(domain.Item{ID: 1}, nil).Times(1)
				m.EXPECT().Sell(gomock.Any(), int64(2)).
					Return(domain.Item{}, errors.Wrap(domain.ErrBadRequest, "item 2 is sold out")).Times(1)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		"400: no items": {
			body:                 strings.Replace(checkoutBody, "[1, 2]", "[]", 1),
			injectorForOrderRepo: func(_ *db.MockOrderRepository) {},
			injectorForItemRepo:  func(_ *db.MockItemRepository) {},
			wantStatusCode:       http.StatusBadRequest,
		},
		"400: invalid email": {
			body:                 strings.Replace(checkoutBody, "ada@example.com", "ada", 1),
			injectorForOrderRepo: func(_ *db.MockOrderRepository) {},
			injectorForItemRepo:  func(_ *db.MockItemRepository) {},
			wantStatusCode:       http.StatusBadRequest,
		},
		"500: internal server error": {
			body: checkoutBody,
			injectorForOrderRepo: func(m *db.MockOrderRepository) {
				m.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(domain.Order{}, errors.New("strange error")).Times(1)
			},
			injectorForItemRepo: priced,
			wantStatusCode:      http.StatusInternalServerError,
		},
	}

	for name, tt := range cases {
		tt := tt

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c, rec := newContext(http.MethodPost, "/checkout", tt.body)

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			orderRepo := db.NewMockOrderRepository(ctrl)
			tt.injectorForOrderRepo(orderRepo)
			itemRepo := db.NewMockItemRepository(ctrl)
			tt.injectorForItemRepo(itemRepo)
			mailer := &recordingMailer{}

			h := handler.Handler{OrderRepo: orderRepo, ItemRepo: itemRepo, Mailer: mailer}
			if got := statusOf(t, h.Checkout(c), rec); got != tt.wantStatusCode {
				t.Fatalf("unexpected status code: want: %d, got: %d", tt.wantStatusCode, got)
			}
			if len(mailer.sent) != tt.wantMails {
				t.Fatalf("unexpected mails: want: %d, got: %d", tt.wantMails, len(mailer.sent))
			}
			if tt.wantMails > 0 && mailer.sent[0].to != "ada@example.com" {
				t.Fatalf("unexpected recipient: %s", mailer.sent[0].to)
			}
		})
	}
}

func TestAddOrderReportsUnknownItems(t *testing.T) {
	t.Parallel()

	c, rec := newContext(http.MethodPost, "/orders", checkoutBody)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	orderRepo := db.NewMockOrderRepository(ctrl)
	orderRepo.EXPECT().Create(gomock.Any(), gomock.Any(), []int64{1, 2}).
		Return(domain.Order{ID: 3}, &domain.UnknownItemsError{OrderID: 3, ItemIDs: []int64{2}}).Times(1)

	h := handler.Handler{OrderRepo: orderRepo}
	if got := statusOf(t, h.AddOrder(c), rec); got != http.StatusCreated {
		t.Fatalf("unexpected status code: want: %d, got: %d", http.StatusCreated, got)
	}
	var resp struct {
		Order          domain.Order `json:"order"`
		UnknownItemIDs []int64      `json:"unknownItemIds"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected error for json.Unmarshal: %s", err.Error())
	}
	if resp.Order.ID != 3 || len(resp.UnknownItemIDs) != 1 || resp.UnknownItemIDs[0] != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestOrderItemRoutes(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		remove         bool
		itemID         string
		injector       func(*db.MockOrderRepository)
		wantStatusCode int
	}{
		"200: item added": {
			itemID: "4",
			injector: func(m *db.MockOrderRepository) {
				m.EXPECT().AddItem(gomock.Any(), int64(9), int64(4)).Return(domain.Order{ID: 9}, nil).Times(1)
			},
			wantStatusCode: http.StatusOK,
		},
		"404: item not in order": {
			remove: true,
			itemID: "4",
			injector: func(m *db.MockOrderRepository) {
				m.EXPECT().RemoveItem(gomock.Any(), int64(9), int64(4)).
					Return(domain.Order{}, errors.Wrap(domain.ErrNotFound, "item 4 is not part of order 9")).Times(1)
			},
			wantStatusCode: http.StatusNotFound,
		},
		"400: invalid item id": {
			itemID:         "zero",
			injector:       func(_ *db.MockOrderRepository) {},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for name, tt := range cases {
		tt := tt

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c, rec := newContext(http.MethodPost, "/orders/:id/items/:itemID", "")
			c.SetParamNames("id", "itemID")
			c.SetParamValues("9", tt.itemID)

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			orderRepo := db.NewMockOrderRepository(ctrl)
			tt.injector(orderRepo)

			h := handler.Handler{OrderRepo: orderRepo}
			fn := h.AddOrderItem
			if tt.remove {
				fn = h.RemoveOrderItem
			}
			if got := statusOf(t, fn(c), rec); got != tt.wantStatusCode {
				t.Fatalf("unexpected status code: want: %d, got: %d", tt.wantStatusCode, got)
			}
		})
	}
}

func TestShipOrderNotifiesCustomer(t *testing.T) {
	t.Parallel()

	c, rec := newContext(http.MethodPost, "/orders/:id/ship", "")
	c.SetParamNames("id")
	c.SetParamValues("7")

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	orderRepo := db.NewMockOrderRepository(ctrl)
	orderRepo.EXPECT().MarkShipped(gomock.Any(), int64(7)).Return(domain.Order{
		ID:       7,
		Customer: domain.Customer{Email: "ada@example.com", Name: "Ada"},
		Status:   domain.OrderStatusShipped,
	}, nil).Times(1)
	mailer := &recordingMailer{}

	h := handler.Handler{OrderRepo: orderRepo, Mailer: mailer}
	if got := statusOf(t, h.ShipOrder(c), rec); got != http.StatusOK {
		t.Fatalf("unexpected status code: want: %d, got: %d", http.StatusOK, got)
	}
	if len(mailer.sent) != 1 || mailer.sent[0].subject != "Order #7 shipped" {
		t.Fatalf("unexpected mails: %+v", mailer.sent)
	}
}

func TestAddMessageNotifiesStudio(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		body           string
		injector       func(*db.MockMessageRepository)
		wantStatusCode int
		wantMails      int
	}{
		"201: stored and forwarded": {
			body: `{"email":"grace@example.com","name":"Grace","message":"Paint our cafe?"}`,
			injector: func(m *db.MockMessageRepository) {
				m.EXPECT().Create(gomock.Any(), "grace@example.com", "Grace", "Paint our cafe?").
					Return(domain.Message{ID: 1, Email: "grace@example.com", Name: "Grace", Message: "Paint our cafe?"}, nil).Times(1)
			},
			wantStatusCode: http.StatusCreated,
			wantMails:      1,
		},
		"400: missing message": {
			body:           `{"email":"grace@example.com","name":"Grace"}`,
			injector:       func(_ *db.MockMessageRepository) {},
			wantStatusCode: http.StatusBadRequest,
		},
		"400: line break in name": {
			body:           `{"email":"eve@example.com","name":"Eve\r\nBcc: victim@example.com","message":"hi"}`,
			injector:       func(_ *db.MockMessageRepository) {},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for name, tt := range cases {
		tt := tt

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c, rec := newContext(http.MethodPost, "/messages", tt.body)

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			messageRepo := db.NewMockMessageRepository(ctrl)
			tt.injector(messageRepo)
			mailer := &recordingMailer{}

			h := handler.Handler{MessageRepo: messageRepo, Mailer: mailer, AdminEmail: "studio@example.com"}
			if got := statusOf(t, h.AddMessage(c), rec); got != tt.wantStatusCode {
				t.Fatalf("unexpected status code: want: %d, got: %d", tt.wantStatusCode, got)
			}
			if len(mailer.sent) != tt.wantMails {
				t.Fatalf("unexpected mails: want: %d, got: %d", tt.wantMails, len(mailer.sent))
			}
			if tt.wantMails > 0 && mailer.sent[0].to != "studio@example.com" {
				t.Fatalf("unexpected recipient: %s", mailer.sent[0].to)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		body           string
		injector       func(*db.MockAdminRepository)
		wantStatusCode int
	}{
		"200: logged in": {
			body: `{"username":"studio","password":"paint-it-all"}`,
			injector: func(m *db.MockAdminRepository) {
				m.EXPECT().Authenticate(gomock.Any(), "studio", "paint-it-all").
					Return(domain.Admin{ID: 1, Username: "studio"}, nil).Times(1)
			},
			wantStatusCode: http.StatusOK,
		},
		"401: wrong password": {
			body: `{"username":"studio","password":"nope"}`,
			injector: func(m *db.MockAdminRepository) {
				m.EXPECT().Authenticate(gomock.Any(), "studio", "nope").
					Return(domain.Admin{}, errors.Wrap(domain.ErrUnauthorized, "invalid username or password")).Times(1)
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		"400: missing password": {
			body:           `{"username":"studio"}`,
			injector:       func(_ *db.MockAdminRepository) {},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for name, tt := range cases {
		tt := tt

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c, rec := newContext(http.MethodPost, "/login", tt.body)

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			adminRepo := db.NewMockAdminRepository(ctrl)
			tt.injector(adminRepo)
			tokens := handler.NewTokenIssuer("test-secret")

			h := handler.Handler{AdminRepo: adminRepo, Tokens: tokens}
			err := h.Login(c)
			if got := statusOf(t, err, rec); got != tt.wantStatusCode {
				t.Fatalf("unexpected status code: want: %d, got: %d", tt.wantStatusCode, got)
			}
			if err != nil {
				return
			}
			var resp struct {
				Token string `json:"token"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unexpected error for json.Unmarshal: %s", err.Error())
			}
			claims := tokens.Claims(resp.Token)
			if claims == nil || !claims.Admin || claims.Subject != "studio" {
				t.Fatalf("unexpected claims: %+v", claims)
			}
		})
	}
}

func TestGetSecretQuestionHidesUnknownAdmins(t *testing.T) {
	t.Parallel()

	c, rec := newContext(http.MethodGet, "/login/secret-question/:username", "")
	c.SetParamNames("username")
	c.SetParamValues("nobody")

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	adminRepo := db.NewMockAdminRepository(ctrl)
	adminRepo.EXPECT().GetSecretQuestion(gomock.Any(), "nobody").
		Return("", errors.Wrap(domain.ErrNotFound, `admin "nobody"`)).Times(1)

	h := handler.Handler{AdminRepo: adminRepo}
	if got := statusOf(t, h.GetSecretQuestion(c), rec); got != http.StatusUnauthorized {
		t.Fatalf("unexpected status code: want: %d, got: %d", http.StatusUnauthorized, got)
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		token          *jwt.Token
		wantStatusCode int
	}{
		"200: admin": {
			token:          &jwt.Token{Claims: &handler.JwtCustomClaims{Admin: true}},
			wantStatusCode: http.StatusOK,
		},
		"401: no token": {
			wantStatusCode: http.StatusUnauthorized,
		},
		"401: not an admin": {
			token:          &jwt.Token{Claims: &handler.JwtCustomClaims{Admin: false}},
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for name, tt := range cases {
		tt := tt

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c, rec := newContext(http.MethodGet, "/orders", "")
			if tt.token != nil {
				c.Set("user", tt.token)
			}
			next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
			if got := statusOf(t, handler.RequireAdmin(next)(c), rec); got != tt.wantStatusCode {
				t.Fatalf("unexpected status code: want: %d, got: %d", tt.wantStatusCode, got)
			}
		})
	}
}

func TestTokenIssuer(t *testing.T) {
	t.Parallel()

	tokens := handler.NewTokenIssuer("test-secret")
	signed, err := tokens.Issue("studio", true)
	if err != nil {
		t.Fatalf("unexpected error for Issue: %s", err.Error())
	}
	if claims := tokens.Claims(signed); claims == nil || !claims.Admin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims := handler.NewTokenIssuer("other-secret").Claims(signed); claims != nil {
		t.Fatalf("token accepted with the wrong secret: %+v", claims)
	}
	if claims := tokens.Claims("not-a-token"); claims != nil {
		t.Fatalf("garbage accepted: %+v", claims)
	}
}

// TestServerAuth drives the full router so the bearer token middleware and
// RequireAdmin are exercised together.
func TestServerAuth(t *testing.T) {
	t.Parallel()

	tokens := handler.NewTokenIssuer("test-secret")
	adminToken, err := tokens.Issue("studio", true)
	if err != nil {
		t.Fatalf("unexpected error for Issue: %s", err.Error())
	}
	forged, err := handler.NewTokenIssuer("other-secret").Issue("studio", true)
	if err != nil {
		t.Fatalf("unexpected error for Issue: %s", err.Error())
	}

	cases := map[string]struct {
		method, path   string
		token          string
		injector       func(*db.MockOrderRepository, *db.MockItemRepository)
		wantStatusCode int
	}{
		"200: admin lists orders": {
			method: http.MethodGet,
			path:   "/orders",
			token:  adminToken,
			injector: func(m *db.MockOrderRepository, _ *db.MockItemRepository) {
				m.EXPECT().GetAll(gomock.Any()).Return([]domain.Order{}, nil).Times(1)
			},
			wantStatusCode: http.StatusOK,
		},
		"401: orders without token": {
			method:         http.MethodGet,
			path:           "/orders",
			injector:       func(_ *db.MockOrderRepository, _ *db.MockItemRepository) {},
			wantStatusCode: http.StatusUnauthorized,
		},
		"401: orders with forged token": {
			method:         http.MethodGet,
			path:           "/orders",
			token:          forged,
			injector:       func(_ *db.MockOrderRepository, _ *db.MockItemRepository) {},
			wantStatusCode: http.StatusUnauthorized,
		},
		"200: public items with garbage token": {
			method: http.MethodGet,
			path:   "/items",
			token:  "garbage",
			injector: func(_ *db.MockOrderRepository, m *db.MockItemRepository) {
				m.EXPECT().GetAll(gomock.Any()).Return([]domain.Item{}, nil).Times(1)
			},
			wantStatusCode: http.StatusOK,
		},
		"401: delete item without token": {
			method:         http.MethodDelete,
			path:           "/items/1",
			injector:       func(_ *db.MockOrderRepository, _ *db.MockItemRepository) {},
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for name, tt := range cases {
		tt := tt

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			orderRepo := db.NewMockOrderRepository(ctrl)
			itemRepo := db.NewMockItemRepository(ctrl)
			tt.injector(orderRepo, itemRepo)

			h := &handler.Handler{
				OrderRepo: orderRepo,
				ItemRepo:  itemRepo,
				Tokens:    tokens,
				Images:    &handler.ImageStore{Dir: t.TempDir()},
			}
			e := handler.NewServer(h, "http://localhost:3000")

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set(echo.HeaderAuthorization, "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Fatalf("unexpected status code: want: %d, got: %d", tt.wantStatusCode, rec.Code)
			}
		})
	}
}
