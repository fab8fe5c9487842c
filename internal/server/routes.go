package server

import (
	"net/http"

	"bookstore/internal/config"
	"bookstore/internal/handler"
	"bookstore/internal/metrics"

	"github.com/labstack/echo/v4"
)

// ルート登録に必要なハンドラ一式
type Handlers struct {
	Auth     *handler.AuthHandler
	Author   *handler.AuthorHandler
	Category *handler.CategoryHandler
	Book     *handler.BookHandler
	Cart     *handler.CartHandler
	Purchase *handler.PurchaseHandler
	Email    *handler.EmailHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	h.Auth.RegisterRoutes(e)
	h.Author.RegisterRoutes(e, cfg)
	h.Category.RegisterRoutes(e, cfg)
	h.Book.RegisterRoutes(e, cfg)
	h.Cart.RegisterRoutes(e, cfg)
	h.Purchase.RegisterRoutes(e, cfg)
	h.Email.RegisterRoutes(e, cfg)
}
