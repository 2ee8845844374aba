package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// WMSCheckResult is a persisted snapshot of one availability checker run.
// The four arrays are stored as JSON exactly as returned to callers; rows are
// append-only and never updated. A run that finds zero issues is not stored.
type WMSCheckResult struct {
	ID                      uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID               uuid.UUID       `gorm:"type:uuid;not null;index"`
	MenusWithoutIngredients json.RawMessage `gorm:"type:jsonb"`
	AddonsWithoutIngredients json.RawMessage `gorm:"type:jsonb"`
	NotEnoughIngredients    json.RawMessage `gorm:"type:jsonb"`
	HitThresholdStocks      json.RawMessage `gorm:"type:jsonb"`
	IssuesCount             int             `gorm:"not null"`
	CreatedAt               time.Time
}

func (WMSCheckResult) TableName() string { return "wms_check_results" }
