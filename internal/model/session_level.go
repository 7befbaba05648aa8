package model

import (
	"time"

	"gorm.io/datatypes"
)

// SessionLevel is one locked level set for a symbol and session day. The row
// is written once when the calibration window closes and read back for the
// rest of the session.
type SessionLevel struct {
	ID        uint           `gorm:"primarykey"`
	Symbol    string         `gorm:"not null;index:idx_session_levels_lookup,unique"`
	Exchange  string         `gorm:"not null"`
	SessionID string         `gorm:"not null;index:idx_session_levels_lookup,unique"`
	DateKey   string         `gorm:"not null;index:idx_session_levels_lookup,unique"`
	Price     float64        `gorm:"not null"`
	Levels    datatypes.JSON `gorm:"type:jsonb;not null"`
	Shelves   datatypes.JSON `gorm:"type:jsonb"`
	LockedAt  time.Time      `gorm:"not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SessionLevel) TableName() string {
	return "session_levels"
}

type GetSessionLevelParam struct {
	Symbol    string
	SessionID string
	DateKey   string
}
