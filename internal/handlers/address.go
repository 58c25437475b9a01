package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stitchkart/tailor_shop/internal/models"
	"github.com/stitchkart/tailor_shop/internal/repo"
)

type AddressHandler struct {
	Responder
	Addresses *repo.AddressRepository
	Orders    *repo.OrderRepository
}

func (h *AddressHandler) Create(c echo.Context) error {
	var address models.DeliveryAddress
	if err := c.Bind(&address); err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid request body", err)
	}
	if address.FullName == "" || address.Phone == "" || address.AddressLine1 == "" {
		return h.fail(c, http.StatusBadRequest, "full_name, phone and address_line1 are required", nil)
	}
	address.ID = 0

	created, err := h.Addresses.Create(c.Request().Context(), &address)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to create address", err)
	}
	return h.ok(c, http.StatusCreated, "address created", created)
}

func (h *AddressHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid address id", err)
	}

	address, err := h.Addresses.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to fetch address", err)
	}
	if address == nil {
		return h.fail(c, http.StatusNotFound, "address not found", nil)
	}
	return h.ok(c, http.StatusOK, "address fetched", address)
}

func (h *AddressHandler) Patch(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid address id", err)
	}

	var patch repo.AddressPatch
	if err := c.Bind(&patch); err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid request body", err)
	}

	affected, err := h.Addresses.Patch(c.Request().Context(), id, &patch)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to update address", err)
	}
	if affected == 0 {
		return h.fail(c, http.StatusNotFound, "address not found", nil)
	}

	address, err := h.Addresses.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to fetch address", err)
	}
	return h.ok(c, http.StatusOK, "address updated", address)
}

func (h *AddressHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid address id", err)
	}

	affected, err := h.Addresses.Delete(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to delete address", err)
	}
	if affected == 0 {
		return h.fail(c, http.StatusNotFound, "address not found", nil)
	}
	return h.ok(c, http.StatusOK, "address deleted", nil)
}

// AttachToOrder links an existing address to an order with a typed mapping.
func (h *AddressHandler) AttachToOrder(c echo.Context) error {
	orderID, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid order id", err)
	}

	var req struct {
		AddressID uint   `json:"address_id"`
		Type      string `json:"type"`
	}
	if err := c.Bind(&req); err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid request body", err)
	}
	if req.AddressID == 0 || req.Type == "" {
		return h.fail(c, http.StatusBadRequest, "address_id and type are required", nil)
	}

	order, err := h.Orders.GetByID(c.Request().Context(), orderID)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to fetch order", err)
	}
	if order == nil {
		return h.fail(c, http.StatusNotFound, "order not found", nil)
	}

	address, err := h.Addresses.GetByID(c.Request().Context(), req.AddressID)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to fetch address", err)
	}
	if address == nil {
		return h.fail(c, http.StatusNotFound, "address not found", nil)
	}

	mapping, err := h.Addresses.AttachToOrder(c.Request().Context(), orderID, req.AddressID, req.Type)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to attach address", err)
	}
	return h.ok(c, http.StatusCreated, "address attached", mapping)
}
