package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/tettoewai/restaurant-pos-sub001/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promoWith(t *testing.T, conds ...model.PromotionCondition) *model.Promotion {
	t.Helper()
	p := &model.Promotion{Name: "test", Active: true}
	if len(conds) > 0 {
		raw, err := json.Marshal(conds)
		require.NoError(t, err)
		p.Conditions = raw
	}
	return p
}

// at builds a timestamp on a fixed Monday.
func at(hour, min int) time.Time {
	return time.Date(2026, time.August, 31, hour, min, 0, 0, time.UTC)
}

func TestPromotionWithoutConditionsIsAlwaysOn(t *testing.T) {
	p := promoWith(t)
	assert.True(t, p.ActiveAt(at(3, 0)))

	p.Active = false
	assert.False(t, p.ActiveAt(at(3, 0)))
}

func TestPromotionTimeWindow(t *testing.T) {
	p := promoWith(t, model.PromotionCondition{
		Kind: model.ConditionTimeWindow, Start: "10:00", End: "12:00",
	})

	assert.False(t, p.ActiveAt(at(9, 59)))
	assert.True(t, p.ActiveAt(at(10, 0)))
	assert.True(t, p.ActiveAt(at(11, 30)))
	assert.False(t, p.ActiveAt(at(12, 0)), "end is exclusive")
}

func TestPromotionTimeWindowWrapsMidnight(t *testing.T) {
	p := promoWith(t, model.PromotionCondition{
		Kind: model.ConditionTimeWindow, Start: "22:00", End: "02:00",
	})

	assert.True(t, p.ActiveAt(at(23, 0)))
	assert.True(t, p.ActiveAt(at(1, 0)))
	assert.False(t, p.ActiveAt(at(2, 0)))
	assert.False(t, p.ActiveAt(at(12, 0)))
}

func TestPromotionDayOfWeekIsCaseInsensitive(t *testing.T) {
	p := promoWith(t, model.PromotionCondition{
		Kind: model.ConditionDayOfWeek, Days: []string{"monday", "Friday"},
	})

	assert.True(t, p.ActiveAt(at(12, 0)))                    // Monday
	assert.True(t, p.ActiveAt(at(12, 0).AddDate(0, 0, 4)))   // Friday
	assert.False(t, p.ActiveAt(at(12, 0).AddDate(0, 0, 1)))  // Tuesday
}

func TestPromotionAllConditionsMustHold(t *testing.T) {
	p := promoWith(t,
		model.PromotionCondition{Kind: model.ConditionTimeWindow, Start: "10:00", End: "12:00"},
		model.PromotionCondition{Kind: model.ConditionDayOfWeek, Days: []string{"monday"}},
	)

	assert.True(t, p.ActiveAt(at(11, 0)))
	assert.False(t, p.ActiveAt(at(13, 0)), "outside window")
	assert.False(t, p.ActiveAt(at(11, 0).AddDate(0, 0, 1)), "wrong day")
}

func TestPromotionMalformedConditionsNeverFire(t *testing.T) {
	p := &model.Promotion{Name: "broken", Active: true, Conditions: json.RawMessage(`{not json`)}
	assert.False(t, p.ActiveAt(at(12, 0)))

	unknown := promoWith(t, model.PromotionCondition{Kind: "moon_phase"})
	assert.False(t, unknown.ActiveAt(at(12, 0)))
}
