package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stitchkart/tailor_shop/internal/events"
	"github.com/stitchkart/tailor_shop/internal/repo"
	"github.com/stitchkart/tailor_shop/internal/service"
)

type MeasurementHandler struct {
	Responder
	Measurements *service.MeasurementService
	Repo         *repo.MeasurementRepository
	Producer     *events.Producer
}

// Submit runs the measurement capture workflow. Route registration gates
// this on the MeasurementBoy role.
func (h *MeasurementHandler) Submit(c echo.Context) error {
	var payload map[string]interface{}
	if err := c.Bind(&payload); err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid request body", err)
	}

	result, err := h.Measurements.Submit(c.Request().Context(), payload)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return h.fail(c, http.StatusBadRequest, err.Error(), err)
		}
		return h.fail(c, http.StatusInternalServerError, "failed to save measurements", err)
	}

	if result.AllMeasurementsDone {
		orderID, _ := payload["orderId"].(float64)
		publish(c, h.Producer, events.TopicMeasurementEvents, itoa(uint(orderID)), map[string]interface{}{
			"type":    "order_measurements_completed",
			"orderID": uint(orderID),
		})
	}

	return h.okWarn(c, http.StatusOK, "measurements processed", result, result.Warnings)
}

func (h *MeasurementHandler) ListForOrderItem(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid order item id", err)
	}

	rows, err := h.Repo.ListByOrderItem(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to fetch measurements", err)
	}
	return h.okCount(c, http.StatusOK, "measurements fetched", rows, int64(len(rows)))
}
