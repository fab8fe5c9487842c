package handler

import (
	"net/http"

	"bookstore/internal/config"
	"bookstore/internal/middleware"
	"bookstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /send-email のHTTP。購入レシートの再送用。
type EmailHandler struct {
	uc *usecase.NotificationUsecase
}

// DI
func NewEmailHandler(uc *usecase.NotificationUsecase) *EmailHandler {
	return &EmailHandler{uc: uc}
}

type SendEmailRequest struct {
	PurchaseID int64 `json:"purchase_id" validate:"required"`
}

type SendEmailResponse struct {
	Detail string `json:"detail"`
}

func (h *EmailHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/send-email")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("", h.send)
}

func (h *EmailHandler) send(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req SendEmailRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.SendReceipt(c.Request().Context(), userID, req.PurchaseID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SendEmailResponse{Detail: "Email sent successfully"})
}
