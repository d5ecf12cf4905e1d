package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"golang.org/x/time/rate"
)

// NewServer builds the echo instance with every route of the API registered.
func NewServer(h *Handler, frontendURL string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewRequestValidator()
	e.Logger.SetLevel(log.INFO)

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{frontendURL},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(h.Tokens.Middleware())

	// public forms are throttled per client IP
	throttle := middleware.RateLimiter(middleware.NewRateLimiterMemoryStoreWithConfig(
		middleware.RateLimiterMemoryStoreConfig{Rate: rate.Every(10 * time.Second), Burst: 5, ExpiresIn: 3 * time.Minute},
	))

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "ok"})
	})
	e.Static("/images", h.Images.Dir)

	// auth
	e.POST("/login", h.Login, throttle)
	e.GET("/login/secret-question/:username", h.GetSecretQuestion, throttle)
	e.POST("/login/reset", h.ResetPassword, throttle)
	e.POST("/admins", h.RegisterAdmin, RequireAdmin)
	e.PUT("/admins/password", h.ChangePassword, RequireAdmin)

	// items
	e.GET("/items", h.GetItems)
	e.GET("/items/:id", h.GetItem)
	e.POST("/items", h.AddItem, RequireAdmin)
	e.PATCH("/items/:id", h.UpdateItem, RequireAdmin)
	e.POST("/items/:id/sell", h.SellItem, RequireAdmin)
	e.POST("/items/:id/sold", h.MarkItemSold, RequireAdmin)
	e.POST("/items/:id/image", h.UploadItemImage, RequireAdmin)
	e.DELETE("/items/:id/image", h.DeleteItemImage, RequireAdmin)
	e.DELETE("/items/:id", h.DeleteItem, RequireAdmin)

	// orders
	e.POST("/checkout", h.Checkout, throttle)
	e.GET("/orders", h.GetOrders, RequireAdmin)
	e.GET("/orders/:id", h.GetOrder, RequireAdmin)
	e.POST("/orders", h.AddOrder, RequireAdmin)
	e.PATCH("/orders/:id", h.UpdateOrder, RequireAdmin)
	e.POST("/orders/:id/items/:itemID", h.AddOrderItem, RequireAdmin)
	e.DELETE("/orders/:id/items/:itemID", h.RemoveOrderItem, RequireAdmin)
	e.POST("/orders/:id/confirm", h.ConfirmOrder, RequireAdmin)
	e.POST("/orders/:id/ship", h.ShipOrder, RequireAdmin)
	e.POST("/orders/:id/complete", h.CompleteOrder, RequireAdmin)
	e.DELETE("/orders/:id", h.RemoveOrder, RequireAdmin)
	e.DELETE("/orders/:id/abort", h.AbortOrder, RequireAdmin)

	// murals
	e.GET("/murals", h.GetMurals)
	e.GET("/murals/archived", h.GetArchivedMurals, RequireAdmin)
	e.GET("/murals/:id", h.GetMural)
	e.POST("/murals", h.AddMural, RequireAdmin)
	e.PATCH("/murals/:id", h.UpdateMural, RequireAdmin)
	e.POST("/murals/:id/archive", h.ArchiveMural, RequireAdmin)
	e.POST("/murals/:id/unarchive", h.UnarchiveMural, RequireAdmin)
	e.POST("/murals/:id/image", h.UploadMuralImage, RequireAdmin)
	e.DELETE("/murals/:id", h.DeleteMural, RequireAdmin)

	// messages
	e.POST("/messages", h.AddMessage, throttle)
	e.GET("/messages", h.GetMessages, RequireAdmin)
	e.GET("/messages/:id", h.GetMessage, RequireAdmin)
	e.POST("/messages/:id/archive", h.ArchiveMessage, RequireAdmin)
	e.POST("/messages/:id/activate", h.ActivateMessage, RequireAdmin)
	e.DELETE("/messages/:id", h.DeleteMessage, RequireAdmin)

	// homepage
	e.GET("/homepage", h.GetHomepage)
	e.GET("/homepages", h.GetHomepages, RequireAdmin)
	e.POST("/homepages", h.AddHomepage, RequireAdmin)
	e.PATCH("/homepages/:id", h.UpdateHomepage, RequireAdmin)
	e.DELETE("/homepages/:id", h.DeleteHomepage, RequireAdmin)

	// instagram
	e.GET("/igposts", h.GetIGPosts)
	e.GET("/igposts/:id", h.GetIGPost)
	e.POST("/igposts", h.AddIGPost, RequireAdmin)
	e.PUT("/igposts", h.ReplaceIGPosts, RequireAdmin)
	e.DELETE("/igposts/:id", h.DeleteIGPost, RequireAdmin)
	e.DELETE("/igposts", h.DeleteIGPosts, RequireAdmin)

	return e
}
