// Package models defines the persistent data model.
package models

import (
	"time"

	"gorm.io/datatypes"
)

// TranslationLog corresponds to the translation_logs table. One row is
// written per translated text, including each item of a batch request.
type TranslationLog struct {
	ID             uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	RequestID      string         `gorm:"type:varchar(64);index" json:"request_id"`
	FromLang       string         `gorm:"type:varchar(8);not null;index" json:"from_lang"`
	ToLang         string         `gorm:"type:varchar(8);not null;index" json:"to_lang"`
	SourceText     string         `gorm:"type:text;not null" json:"source_text"`
	TranslatedText string         `gorm:"type:text;not null" json:"translated_text"`
	Path           datatypes.JSON `gorm:"type:json" json:"path,omitempty"`
	DurationMs     int64          `json:"duration_ms"`
	Cached         bool           `gorm:"not null;default:false" json:"cached"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
}

// TableName sets the table name for TranslationLog.
func (TranslationLog) TableName() string {
	return "translation_logs"
}
