package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stitchkart/tailor_shop/internal/middleware/auth"
	"github.com/stitchkart/tailor_shop/internal/models"
	"github.com/stitchkart/tailor_shop/internal/repo"
	"github.com/stitchkart/tailor_shop/internal/upload"
)

type BusinessHandler struct {
	Responder
	Businesses   *repo.BusinessRepository
	Availability *repo.AvailabilityRepository
	Uploads      *upload.Store
}

func (h *BusinessHandler) Create(c echo.Context) error {
	var req struct {
		ShopName    string  `json:"shop_name"`
		Address     string  `json:"address"`
		Latitude    float64 `json:"latitude"`
		Longitude   float64 `json:"longitude"`
		OpeningTime string  `json:"opening_time"`
		ClosingTime string  `json:"closing_time"`
		Categories  string  `json:"categories"`
	}
	if err := c.Bind(&req); err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid request body", err)
	}
	if req.ShopName == "" {
		return h.fail(c, http.StatusBadRequest, "shop_name is required", nil)
	}

	userID, err := auth.UserID(c)
	if err != nil {
		return h.fail(c, http.StatusUnauthorized, "missing authenticated user", err)
	}

	business, err := h.Businesses.Create(c.Request().Context(), &models.BusinessInformation{
		UserID:      userID,
		ShopName:    req.ShopName,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		OpeningTime: req.OpeningTime,
		ClosingTime: req.ClosingTime,
		Categories:  req.Categories,
	})
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to create business", err)
	}
	return h.ok(c, http.StatusCreated, "business created", business)
}

func (h *BusinessHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid business id", err)
	}

	business, err := h.Businesses.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to fetch business", err)
	}
	if business == nil {
		return h.fail(c, http.StatusNotFound, "business not found", nil)
	}
	return h.ok(c, http.StatusOK, "business fetched", business)
}

func (h *BusinessHandler) GetByUser(c echo.Context) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid user id", err)
	}

	business, err := h.Businesses.GetByUserID(c.Request().Context(), userID)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to fetch business", err)
	}
	if business == nil {
		return h.fail(c, http.StatusNotFound, "business not found", nil)
	}
	return h.ok(c, http.StatusOK, "business fetched", business)
}

func (h *BusinessHandler) Patch(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid business id", err)
	}

	var patch repo.BusinessPatch
	if err := c.Bind(&patch); err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid request body", err)
	}

	affected, err := h.Businesses.Patch(c.Request().Context(), id, &patch)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to update business", err)
	}
	if affected == 0 {
		return h.fail(c, http.StatusNotFound, "business not found", nil)
	}

	business, err := h.Businesses.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to fetch business", err)
	}
	return h.ok(c, http.StatusOK, "business updated", business)
}

func (h *BusinessHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid business id", err)
	}

	affected, err := h.Businesses.Delete(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to delete business", err)
	}
	if affected == 0 {
		return h.fail(c, http.StatusNotFound, "business not found", nil)
	}
	return h.ok(c, http.StatusOK, "business deleted", nil)
}

func (h *BusinessHandler) UploadLogo(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid business id", err)
	}

	file, err := c.FormFile("logo")
	if err != nil {
		return h.fail(c, http.StatusBadRequest, "logo file is required", err)
	}

	url, err := h.Uploads.Save(file)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to store logo", err)
	}

	affected, err := h.Businesses.Patch(c.Request().Context(), id, &repo.BusinessPatch{LogoURL: &url})
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to save logo url", err)
	}
	if affected == 0 {
		return h.fail(c, http.StatusNotFound, "business not found", nil)
	}
	return h.ok(c, http.StatusOK, "logo uploaded", echo.Map{"logo_url": url})
}

func (h *BusinessHandler) UpsertAvailability(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid business id", err)
	}

	var req struct {
		Date     string `json:"date"`
		IsClosed bool   `json:"is_closed"`
	}
	if err := c.Bind(&req); err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid request body", err)
	}
	if req.Date == "" {
		return h.fail(c, http.StatusBadRequest, "date is required", nil)
	}

	row, created, err := h.Availability.UpsertDateAvailability(c.Request().Context(), id, req.Date, req.IsClosed)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to save availability", err)
	}

	action := "updated"
	code := http.StatusOK
	if created {
		action = "inserted"
		code = http.StatusCreated
	}
	return h.ok(c, code, "availability "+action, row)
}

func (h *BusinessHandler) ListAvailability(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid business id", err)
	}

	rows, err := h.Availability.ListDateAvailability(c.Request().Context(), id, c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to fetch availability", err)
	}
	return h.okCount(c, http.StatusOK, "availability fetched", rows, int64(len(rows)))
}

// SyncItemPrices upserts the submitted price list for the business. Rows are
// keyed by (business, item); a second submission of the same item updates in
// place.
func (h *BusinessHandler) SyncItemPrices(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid business id", err)
	}

	var req struct {
		Items []struct {
			ItemID        uint    `json:"item_id"`
			Price         float64 `json:"price"`
			IsAvailable   bool    `json:"is_available"`
			EstimatedDays int     `json:"estimated_days"`
		} `json:"items"`
	}
	if err := c.Bind(&req); err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid request body", err)
	}
	if len(req.Items) == 0 {
		return h.fail(c, http.StatusBadRequest, "items are required", nil)
	}

	warnings := []string{}
	saved := []models.TailorItemPrice{}
	for _, item := range req.Items {
		if item.ItemID == 0 {
			warnings = append(warnings, "skipped item with missing item_id")
			continue
		}
		row, _, err := h.Availability.UpsertItemPrice(c.Request().Context(), &models.TailorItemPrice{
			BusinessID:    id,
			ItemID:        item.ItemID,
			Price:         item.Price,
			IsAvailable:   item.IsAvailable,
			EstimatedDays: item.EstimatedDays,
		})
		if err != nil {
			warnings = append(warnings, "failed to save item "+itoa(item.ItemID)+": "+err.Error())
			continue
		}
		saved = append(saved, *row)
	}

	return h.okWarn(c, http.StatusOK, "item prices synced", saved, warnings)
}

func (h *BusinessHandler) ListItemPrices(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid business id", err)
	}

	rows, err := h.Availability.ListItemPrices(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to fetch item prices", err)
	}
	return h.okCount(c, http.StatusOK, "item prices fetched", rows, int64(len(rows)))
}
