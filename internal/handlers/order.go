package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stitchkart/tailor_shop/internal/events"
	"github.com/stitchkart/tailor_shop/internal/middleware/auth"
	"github.com/stitchkart/tailor_shop/internal/repo"
	"github.com/stitchkart/tailor_shop/internal/service"
)

type OrderHandler struct {
	Responder
	Orders   *service.OrderService
	Repo     *repo.OrderRepository
	Producer *events.Producer
}

func (h *OrderHandler) statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *OrderHandler) Create(c echo.Context) error {
	var input service.CreateOrderInput
	if err := c.Bind(&input); err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid request body", err)
	}

	userID, err := auth.UserID(c)
	if err != nil {
		return h.fail(c, http.StatusUnauthorized, "missing authenticated user", err)
	}

	order, err := h.Orders.CreateOrder(c.Request().Context(), userID, &input)
	if err != nil {
		return h.fail(c, h.statusFor(err), err.Error(), err)
	}

	publish(c, h.Producer, events.TopicOrderEvents, itoa(order.ID), map[string]interface{}{
		"type":    "order_created",
		"orderID": order.ID,
		"total":   order.TotalAmount,
		"items":   len(order.Items),
	})

	return h.ok(c, http.StatusCreated, "order created", order)
}

func (h *OrderHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid order id", err)
	}

	order, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to fetch order", err)
	}
	if order == nil {
		return h.fail(c, http.StatusNotFound, "order not found", nil)
	}

	mappings, err := h.Repo.ListAddressMappings(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to fetch order addresses", err)
	}

	return h.ok(c, http.StatusOK, "order fetched", echo.Map{
		"order":     order,
		"addresses": mappings,
	})
}

// MyOrders resolves the role-merged order view for the caller.
func (h *OrderHandler) MyOrders(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return h.fail(c, http.StatusUnauthorized, "missing authenticated user", err)
	}

	visible, err := h.Orders.OrdersForUser(c.Request().Context(), userID, c.QueryParam("date"))
	if err != nil {
		return h.fail(c, h.statusFor(err), err.Error(), err)
	}
	return h.okCount(c, http.StatusOK, "orders fetched", visible, int64(len(visible.Orders)))
}

func (h *OrderHandler) AssignedOrders(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return h.fail(c, http.StatusUnauthorized, "missing authenticated user", err)
	}

	assignments, err := h.Repo.ListAssignedToMeasurementBoy(c.Request().Context(), userID)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to fetch assignments", err)
	}
	return h.okCount(c, http.StatusOK, "assignments fetched", assignments, int64(len(assignments)))
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid order id", err)
	}

	var req struct {
		PaymentStatus string `json:"payment_status"`
	}
	if err := c.Bind(&req); err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid request body", err)
	}
	if req.PaymentStatus == "" {
		return h.fail(c, http.StatusBadRequest, "payment_status is required", nil)
	}

	affected, err := h.Repo.UpdateStatus(c.Request().Context(), id, req.PaymentStatus)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to update order", err)
	}
	if affected == 0 {
		return h.fail(c, http.StatusNotFound, "order not found", nil)
	}

	publish(c, h.Producer, events.TopicOrderEvents, itoa(id), map[string]interface{}{
		"type":          "order_status_updated",
		"orderID":       id,
		"paymentStatus": req.PaymentStatus,
	})

	return h.ok(c, http.StatusOK, "order updated", nil)
}

func (h *OrderHandler) ListItems(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid order id", err)
	}

	items, err := h.Repo.ListItems(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to fetch order items", err)
	}
	return h.okCount(c, http.StatusOK, "order items fetched", items, int64(len(items)))
}
