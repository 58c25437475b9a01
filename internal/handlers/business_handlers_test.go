package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stitchkart/tailor_shop/internal/models"
)

func TestCreateAndGetBusiness(t *testing.T) {
	env := newTestEnv(t)
	userID := env.createUser("owner@example.com", models.RoleTailor)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/business", map[string]interface{}{
		"shop_name":    "Stitch Studio",
		"address":      "12 Market Road",
		"opening_time": "09:00",
		"closing_time": "20:00",
	})
	env.asUser(c, userID, models.RoleTailor)
	require.NoError(t, env.Business.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	data := dataMap(t, decodeEnvelope(t, rec))
	require.Equal(t, "Stitch Studio", data["shop_name"])

	recGet, cGet := env.doJSONRequest(http.MethodGet, "/api/v1/users/1/business", nil)
	cGet.SetParamNames("id")
	cGet.SetParamValues(itoa(userID))
	require.NoError(t, env.Business.GetByUser(cGet))
	require.Equal(t, http.StatusOK, recGet.Code)
}

func TestPatchBusinessIgnoresUnknownFields(t *testing.T) {
	env := newTestEnv(t)
	userID := env.createUser("owner@example.com", models.RoleTailor)
	businessID := env.createBusiness(userID, "Old Name")

	rec, c := env.doJSONRequest(http.MethodPatch, "/api/v1/business/1", map[string]interface{}{
		"shop_name": "New Name",
		"user_id":   999,
		"id":        999,
	})
	c.SetParamNames("id")
	c.SetParamValues(itoa(businessID))
	require.NoError(t, env.Business.Patch(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var business models.BusinessInformation
	require.NoError(t, env.DB.First(&business, businessID).Error)
	require.Equal(t, "New Name", business.ShopName)
	require.Equal(t, userID, business.UserID)
}

func TestPatchBusinessNotFound(t *testing.T) {
	env := newTestEnv(t)

	name := "Ghost Shop"
	rec, c := env.doJSONRequest(http.MethodPatch, "/api/v1/business/42", map[string]interface{}{
		"shop_name": name,
	})
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, env.Business.Patch(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteBusinessIsSoft(t *testing.T) {
	env := newTestEnv(t)
	userID := env.createUser("owner@example.com", models.RoleTailor)
	businessID := env.createBusiness(userID, "Doomed Shop")

	rec, c := env.doJSONRequest(http.MethodDelete, "/api/v1/business/1", nil)
	c.SetParamNames("id")
	c.SetParamValues(itoa(businessID))
	require.NoError(t, env.Business.Delete(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var visible int64
	env.DB.Model(&models.BusinessInformation{}).Count(&visible)
	require.Equal(t, int64(0), visible)

	var total int64
	env.DB.Unscoped().Model(&models.BusinessInformation{}).Count(&total)
	require.Equal(t, int64(1), total)
}

func TestAvailabilityUpsertIdempotent(t *testing.T) {
	env := newTestEnv(t)
	userID := env.createUser("owner@example.com", models.RoleTailor)
	businessID := env.createBusiness(userID, "Stitch Studio")

	payload := map[string]interface{}{"date": "2026-09-01", "is_closed": true}

	rec1, c1 := env.doJSONRequest(http.MethodPut, "/api/v1/business/1/availability", payload)
	c1.SetParamNames("id")
	c1.SetParamValues(itoa(businessID))
	require.NoError(t, env.Business.UpsertAvailability(c1))
	require.Equal(t, http.StatusCreated, rec1.Code)

	payload["is_closed"] = false
	rec2, c2 := env.doJSONRequest(http.MethodPut, "/api/v1/business/1/availability", payload)
	c2.SetParamNames("id")
	c2.SetParamValues(itoa(businessID))
	require.NoError(t, env.Business.UpsertAvailability(c2))
	require.Equal(t, http.StatusOK, rec2.Code)

	var rows []models.TailorDateAvailability
	require.NoError(t, env.DB.Where("business_id = ?", businessID).Find(&rows).Error)
	require.Len(t, rows, 1)
	require.False(t, rows[0].IsClosed)
}

func TestSyncItemPrices(t *testing.T) {
	env := newTestEnv(t)
	userID := env.createUser("owner@example.com", models.RoleTailor)
	businessID := env.createBusiness(userID, "Stitch Studio")

	payload := map[string]interface{}{
		"items": []map[string]interface{}{
			{"item_id": 1, "price": 250.0, "is_available": true, "estimated_days": 3},
			{"item_id": 2, "price": 400.0, "is_available": true, "estimated_days": 5},
		},
	}

	rec, c := env.doJSONRequest(http.MethodPut, "/api/v1/business/1/item-prices", payload)
	c.SetParamNames("id")
	c.SetParamValues(itoa(businessID))
	require.NoError(t, env.Business.SyncItemPrices(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// resubmitting one item updates in place instead of duplicating
	payload["items"] = []map[string]interface{}{
		{"item_id": 1, "price": 300.0, "is_available": false, "estimated_days": 4},
	}
	rec2, c2 := env.doJSONRequest(http.MethodPut, "/api/v1/business/1/item-prices", payload)
	c2.SetParamNames("id")
	c2.SetParamValues(itoa(businessID))
	require.NoError(t, env.Business.SyncItemPrices(c2))
	require.Equal(t, http.StatusOK, rec2.Code)

	var rows []models.TailorItemPrice
	require.NoError(t, env.DB.Where("business_id = ?", businessID).Order("item_id ASC").Find(&rows).Error)
	require.Len(t, rows, 2)
	require.Equal(t, 300.0, rows[0].Price)
	require.False(t, rows[0].IsAvailable)
}
