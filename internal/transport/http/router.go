package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fotoprint/fotoprint/internal/handlers"
	"github.com/fotoprint/fotoprint/internal/service/token"
)

type Deps struct {
	AuthHandler         *handlers.AuthHandler
	ProductHandler      *handlers.ProductHandler
	PhotographerHandler *handlers.PhotographerHandler
	OrderHandler        *handlers.OrderHandler
	UploadHandler       *handlers.UploadHandler
	TokenService        *token.TokenService
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")

	api.POST("/register", d.AuthHandler.Register)
	api.POST("/login", d.AuthHandler.Login)
	api.POST("/logout", d.AuthHandler.LogOut, d.TokenService.RequireLogin)
	api.GET("/user", d.AuthHandler.CurrentUser, d.TokenService.RequireLogin)

	session := api.Group("", d.TokenService.RequireLogin)

	session.GET("/products", d.ProductHandler.ListProducts)

	session.GET("/photographers", d.PhotographerHandler.ListPhotographers)
	session.GET("/photographers/:id", d.PhotographerHandler.GetPhotographer)

	session.POST("/upload/signed-url", d.UploadHandler.SignedUploadURL)

	session.GET("/orders", d.OrderHandler.ListOrders)
	session.POST("/orders", d.OrderHandler.CreateOrder)
	session.GET("/orders/:id", d.OrderHandler.GetOrder)

	admin := api.Group("/admin", d.TokenService.RequireAdmin)
	admin.GET("/orders", d.OrderHandler.AdminListOrders)
	admin.PATCH("/orders/:id/status", d.OrderHandler.AdminUpdateOrderStatus)
	admin.GET("/orders/:orderId/photos", d.OrderHandler.AdminListOrderPhotos)
	admin.GET("/stats", d.OrderHandler.AdminStats)

	api.PATCH("/products/:id", d.ProductHandler.PatchProduct, d.TokenService.RequireAdmin)
}
