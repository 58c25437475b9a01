package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/stitchkart/tailor_shop/internal/models"
	"github.com/stitchkart/tailor_shop/internal/repo"
)

type MeasurementService struct {
	DB           *gorm.DB
	Orders       *repo.OrderRepository
	Measurements *repo.MeasurementRepository
}

// requiredKeys lists the measurement keys an item must carry before it
// counts as fully measured. Item types not listed here need at least one
// measurement.
var requiredKeys = map[string][]string{
	"SHIRT":  {"CHEST", "WAIST", "SHOULDER", "SLEEVE"},
	"KURTA":  {"CHEST", "WAIST", "SHOULDER", "SLEEVE", "LENGTH"},
	"PANT":   {"WAIST", "HIP", "INSEAM", "LENGTH"},
	"BLOUSE": {"CHEST", "WAIST", "SHOULDER", "SLEEVE"},
	"SUIT":   {"CHEST", "WAIST", "SHOULDER", "SLEEVE", "LENGTH"},
}

// reserved field names of the submission payload that are never treated as
// measurement keys.
var reservedFields = map[string]bool{
	"orderId":     true,
	"orderItemId": true,
	"itemType":    true,
	"notes":       true,
}

type FieldResult struct {
	Key    string `json:"key"`
	Action string `json:"action"` // inserted | updated
}

type SubmitResult struct {
	Results             []FieldResult `json:"results"`
	AllMeasurementsDone bool          `json:"allMeasurementsDone"`
	Errors              []string      `json:"errors,omitempty"`
	Warnings            []string      `json:"warnings,omitempty"`
}

// Submit runs the field-staff measurement capture workflow. Each non-empty
// extra field of the payload is upserted as one measurement keyed by
// (orderItemId, UPPER(field)). Per-field failures are collected and do not
// stop the remaining fields. When an orderId is supplied and every item of
// that order is fully measured afterwards, all its items are flagged done;
// a failure in that cascade is reported as a warning, never rolled back.
func (s *MeasurementService) Submit(ctx context.Context, payload map[string]interface{}) (*SubmitResult, error) {
	orderItemID, ok := asUint(payload["orderItemId"])
	if !ok || orderItemID == 0 {
		return nil, fmt.Errorf("%w: orderItemId required", ErrValidation)
	}
	orderID, _ := asUint(payload["orderId"])
	notes, _ := payload["notes"].(string)

	result := &SubmitResult{Results: []FieldResult{}}

	for field, raw := range payload {
		if reservedFields[field] {
			continue
		}
		value := stringValue(raw)
		if value == "" {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(field))
		action, err := s.upsertField(ctx, orderItemID, key, value, notes)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", key, err))
			continue
		}
		result.Results = append(result.Results, FieldResult{Key: key, Action: action})
	}

	if orderID != 0 {
		done, err := s.orderFullyMeasured(ctx, orderID)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("completion check failed: %v", err))
			return result, nil
		}
		if done {
			if _, err := s.Orders.MarkItemsMeasurementDone(ctx, orderID); err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("failed to flag order %d items as measured: %v", orderID, err))
				return result, nil
			}
			result.AllMeasurementsDone = true
		}
	}

	return result, nil
}

func (s *MeasurementService) upsertField(ctx context.Context, orderItemID uint, key, value, notes string) (string, error) {
	existing, err := s.Measurements.GetByItemAndKey(ctx, orderItemID, key)
	if err != nil {
		return "", err
	}
	if existing != nil {
		existing.MeasurementValue = value
		existing.Notes = notes
		if err := s.Measurements.Update(ctx, existing); err != nil {
			return "", err
		}
		return "updated", nil
	}

	_, err = s.Measurements.Create(ctx, &models.Measurement{
		OrderItemID:      orderItemID,
		MeasurementKey:   key,
		MeasurementValue: value,
		Notes:            notes,
	})
	if err != nil {
		return "", err
	}
	return "inserted", nil
}

// orderFullyMeasured checks every item of the order against the required
// keys for its item type.
func (s *MeasurementService) orderFullyMeasured(ctx context.Context, orderID uint) (bool, error) {
	items, err := s.Orders.ListItems(ctx, orderID)
	if err != nil {
		return false, err
	}
	if len(items) == 0 {
		return false, nil
	}

	keysByItem, err := s.Measurements.KeysByOrderItem(ctx, orderID)
	if err != nil {
		return false, err
	}

	for _, item := range items {
		present := map[string]bool{}
		for _, key := range keysByItem[item.ID] {
			present[key] = true
		}

		required := requiredKeys[strings.ToUpper(item.ItemType)]
		if len(required) == 0 {
			if len(present) == 0 {
				return false, nil
			}
			continue
		}
		for _, key := range required {
			if !present[key] {
				return false, nil
			}
		}
	}
	return true, nil
}

func asUint(v interface{}) (uint, bool) {
	switch n := v.(type) {
	case float64:
		if n < 0 {
			return 0, false
		}
		return uint(n), true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint(n), true
	case uint:
		return n, true
	default:
		return 0, false
	}
}

func stringValue(v interface{}) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", s), "0"), ".")
	case bool:
		if s {
			return "1"
		}
		return "0"
	case nil:
		return ""
	default:
		return ""
	}
}
