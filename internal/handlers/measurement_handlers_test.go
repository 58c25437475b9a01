package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stitchkart/tailor_shop/internal/models"
)

func (env *testEnv) createShirtOrder() (orderID, itemID uint) {
	env.T.Helper()
	customerID := env.createUser("mcustomer@example.com", models.RoleCustomer)
	order := models.Order{
		CustomerID: customerID,
		OrderDate:  time.Now(),
		Items: []models.OrderItem{
			{ItemType: "Shirt", Quantity: 1, UnitPrice: 450},
		},
	}
	require.NoError(env.T, env.DB.Create(&order).Error)
	return order.ID, order.Items[0].ID
}

func (env *testEnv) submitMeasurements(payload map[string]interface{}) (*http.Response, map[string]interface{}) {
	env.T.Helper()
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/measurements", payload)
	require.NoError(env.T, env.Measurement.Submit(c))
	return rec.Result(), dataMap(env.T, decodeEnvelope(env.T, rec))
}

func TestSubmitMeasurementsSkipsReservedAndEmptyFields(t *testing.T) {
	env := newTestEnv(t)
	_, itemID := env.createShirtOrder()

	resp, data := env.submitMeasurements(map[string]interface{}{
		"orderItemId": itemID,
		"itemType":    "Shirt",
		"notes":       "slim fit",
		"chest":       "40",
		"waist":       "",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	results := data["results"].([]interface{})
	require.Len(t, results, 1)
	first := results[0].(map[string]interface{})
	require.Equal(t, "CHEST", first["key"])
	require.Equal(t, "inserted", first["action"])

	var rows []models.Measurement
	require.NoError(t, env.DB.Find(&rows).Error)
	require.Len(t, rows, 1)
	require.Equal(t, "40", rows[0].MeasurementValue)
	require.Equal(t, "slim fit", rows[0].Notes)
}

func TestSubmitMeasurementsUpdatesExistingKey(t *testing.T) {
	env := newTestEnv(t)
	_, itemID := env.createShirtOrder()

	_, _ = env.submitMeasurements(map[string]interface{}{
		"orderItemId": itemID,
		"chest":       "40",
	})
	_, data := env.submitMeasurements(map[string]interface{}{
		"orderItemId": itemID,
		"chest":       "41",
	})

	results := data["results"].([]interface{})
	require.Len(t, results, 1)
	require.Equal(t, "updated", results[0].(map[string]interface{})["action"])

	var rows []models.Measurement
	require.NoError(t, env.DB.Where("order_item_id = ?", itemID).Find(&rows).Error)
	require.Len(t, rows, 1)
	require.Equal(t, "41", rows[0].MeasurementValue)
}

func TestSubmitMeasurementsRequiresOrderItemID(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/measurements", map[string]interface{}{
		"chest": "40",
	})
	require.NoError(t, env.Measurement.Submit(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitMeasurementsIncompleteOrderNotFlagged(t *testing.T) {
	env := newTestEnv(t)
	orderID, itemID := env.createShirtOrder()

	_, data := env.submitMeasurements(map[string]interface{}{
		"orderId":     orderID,
		"orderItemId": itemID,
		"chest":       "40",
	})
	require.Equal(t, false, data["allMeasurementsDone"])

	var item models.OrderItem
	require.NoError(t, env.DB.First(&item, itemID).Error)
	require.False(t, item.IsMeasurementDone)
}

func TestSubmitMeasurementsCompletionFlagsAllItems(t *testing.T) {
	env := newTestEnv(t)
	orderID, itemID := env.createShirtOrder()

	_, data := env.submitMeasurements(map[string]interface{}{
		"orderId":     orderID,
		"orderItemId": itemID,
		"chest":       "40",
		"waist":       "34",
		"shoulder":    "18",
		"sleeve":      "25",
	})
	require.Equal(t, true, data["allMeasurementsDone"])

	var item models.OrderItem
	require.NoError(t, env.DB.First(&item, itemID).Error)
	require.True(t, item.IsMeasurementDone)
}

func TestSubmitMeasurementsCompletionSpansItems(t *testing.T) {
	env := newTestEnv(t)
	customerID := env.createUser("two@example.com", models.RoleCustomer)
	order := models.Order{
		CustomerID: customerID,
		OrderDate:  time.Now(),
		Items: []models.OrderItem{
			{ItemType: "Shirt", Quantity: 1, UnitPrice: 450},
			{ItemType: "Pant", Quantity: 1, UnitPrice: 700},
		},
	}
	require.NoError(t, env.DB.Create(&order).Error)
	shirt, pant := order.Items[0].ID, order.Items[1].ID

	// Full shirt, but the pant has nothing yet.
	_, data := env.submitMeasurements(map[string]interface{}{
		"orderId":     order.ID,
		"orderItemId": shirt,
		"chest":       "40",
		"waist":       "34",
		"shoulder":    "18",
		"sleeve":      "25",
	})
	require.Equal(t, false, data["allMeasurementsDone"])

	_, data = env.submitMeasurements(map[string]interface{}{
		"orderId":     order.ID,
		"orderItemId": pant,
		"waist":       "34",
		"hip":         "40",
		"inseam":      "30",
		"length":      "40",
	})
	require.Equal(t, true, data["allMeasurementsDone"])

	var items []models.OrderItem
	require.NoError(t, env.DB.Where("order_id = ?", order.ID).Find(&items).Error)
	for _, item := range items {
		require.True(t, item.IsMeasurementDone, "item %d not flagged", item.ID)
	}
}

func TestListMeasurementsForOrderItem(t *testing.T) {
	env := newTestEnv(t)
	_, itemID := env.createShirtOrder()

	_, _ = env.submitMeasurements(map[string]interface{}{
		"orderItemId": itemID,
		"chest":       "40",
		"waist":       "34",
	})

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/order-items/1/measurements", nil)
	c.SetParamNames("id")
	c.SetParamValues(itoa(itemID))

	require.NoError(t, env.Measurement.ListForOrderItem(c))
	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Count)
	require.Equal(t, int64(2), *envelope.Count)
}
