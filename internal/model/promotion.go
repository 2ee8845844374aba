package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Promotion grants a discount or a free-of-charge menu when its conditions
// hold. Conditions are a tagged union (see PromotionCondition) stored as a
// JSON array and validated at the API boundary — never shape-checked at
// evaluation time.
type Promotion struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null"`
	// DiscountAmount applies to the receipt subtotal; FocMenuID instead adds
	// a zero-priced line. Exactly one of the two is used per promotion.
	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	FocMenuID      *uuid.UUID      `gorm:"type:uuid"`
	Conditions     json.RawMessage `gorm:"type:jsonb"`
	Active         bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Condition kinds.
const (
	ConditionTimeWindow = "time_window"
	ConditionDayOfWeek  = "day_of_week"
)

// PromotionCondition is one variant of the condition union. Kind selects
// which of the remaining fields are meaningful:
//
//	time_window: Start, End ("15:04" wall-clock, End exclusive)
//	day_of_week: Days (lowercase English day names)
type PromotionCondition struct {
	Kind  string   `json:"kind"`
	Start string   `json:"start,omitempty"`
	End   string   `json:"end,omitempty"`
	Days  []string `json:"days,omitempty"`
}

// ParseConditions decodes the stored JSON array.
func (p *Promotion) ParseConditions() ([]PromotionCondition, error) {
	if len(p.Conditions) == 0 {
		return nil, nil
	}
	var conds []PromotionCondition
	if err := json.Unmarshal(p.Conditions, &conds); err != nil {
		return nil, err
	}
	return conds, nil
}

// ActiveAt reports whether every condition holds at t. A promotion with no
// conditions is always on while Active.
func (p *Promotion) ActiveAt(t time.Time) bool {
	if !p.Active {
		return false
	}
	conds, err := p.ParseConditions()
	if err != nil {
		return false
	}
	for _, c := range conds {
		if !c.holds(t) {
			return false
		}
	}
	return true
}

func (c PromotionCondition) holds(t time.Time) bool {
	switch c.Kind {
	case ConditionTimeWindow:
		start, err1 := time.Parse("15:04", c.Start)
		end, err2 := time.Parse("15:04", c.End)
		if err1 != nil || err2 != nil {
			return false
		}
		now := t.Hour()*60 + t.Minute()
		s := start.Hour()*60 + start.Minute()
		e := end.Hour()*60 + end.Minute()
		if s <= e {
			return now >= s && now < e
		}
		// window wraps midnight
		return now >= s || now < e
	case ConditionDayOfWeek:
		day := t.Weekday().String()
		for _, d := range c.Days {
			if strings.EqualFold(d, day) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
