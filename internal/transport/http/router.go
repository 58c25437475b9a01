package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/stitchkart/tailor_shop/internal/handlers"
	"github.com/stitchkart/tailor_shop/internal/middleware/auth"
	"github.com/stitchkart/tailor_shop/internal/models"
)

type Deps struct {
	JWTSecret          []byte
	UploadDir          string
	AuthHandler        *handlers.AuthHandler
	BusinessHandler    *handlers.BusinessHandler
	ProductHandler     *handlers.ProductHandler
	OrderHandler       *handlers.OrderHandler
	AddressHandler     *handlers.AddressHandler
	MeasurementHandler *handlers.MeasurementHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })
	e.Static("/uploads", d.UploadDir)

	v1 := e.Group("/api/v1")

	v1.POST("/auth/register", d.AuthHandler.Register)
	v1.POST("/auth/login", d.AuthHandler.Login)

	authed := v1.Group("", auth.RequireAuth(d.JWTSecret))

	authed.POST("/business", d.BusinessHandler.Create)
	authed.GET("/business/:id", d.BusinessHandler.Get)
	authed.GET("/users/:id/business", d.BusinessHandler.GetByUser)
	authed.PATCH("/business/:id", d.BusinessHandler.Patch)
	authed.DELETE("/business/:id", d.BusinessHandler.Delete)
	authed.POST("/business/:id/logo", d.BusinessHandler.UploadLogo)
	authed.PUT("/business/:id/availability", d.BusinessHandler.UpsertAvailability)
	authed.GET("/business/:id/availability", d.BusinessHandler.ListAvailability)
	authed.PUT("/business/:id/item-prices", d.BusinessHandler.SyncItemPrices)
	authed.GET("/business/:id/item-prices", d.BusinessHandler.ListItemPrices)

	authed.POST("/products", d.ProductHandler.Create)
	authed.GET("/products", d.ProductHandler.List)
	authed.GET("/products/search", d.ProductHandler.Search)
	authed.GET("/products/:id", d.ProductHandler.Get)
	authed.PATCH("/products/:id", d.ProductHandler.Update)
	authed.DELETE("/products/:id", d.ProductHandler.Delete)
	authed.POST("/products/:id/images", d.ProductHandler.UploadImages)

	authed.POST("/orders", d.OrderHandler.Create)
	authed.GET("/orders/my", d.OrderHandler.MyOrders)
	authed.GET("/orders/assigned", d.OrderHandler.AssignedOrders,
		auth.RequireRole(models.RoleMeasurementBoy))
	authed.GET("/orders/:id", d.OrderHandler.Get)
	authed.PATCH("/orders/:id/status", d.OrderHandler.UpdateStatus)
	authed.GET("/orders/:id/items", d.OrderHandler.ListItems)
	authed.POST("/orders/:id/addresses", d.AddressHandler.AttachToOrder)

	authed.POST("/addresses", d.AddressHandler.Create)
	authed.GET("/addresses/:id", d.AddressHandler.Get)
	authed.PATCH("/addresses/:id", d.AddressHandler.Patch)
	authed.DELETE("/addresses/:id", d.AddressHandler.Delete)

	authed.POST("/measurements", d.MeasurementHandler.Submit,
		auth.RequireRole(models.RoleMeasurementBoy))
	authed.GET("/order-items/:id/measurements", d.MeasurementHandler.ListForOrderItem)
}
