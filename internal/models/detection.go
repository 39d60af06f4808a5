package models

import (
	"time"

	"gorm.io/datatypes"
)

// Detection is the persisted record of a fired V-shape reversal event.
// Detector working state stays in memory; only fired events are kept.
type Detection struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Symbol    string         `gorm:"type:text;not null;index;comment:股票代號" json:"symbol"`
	Bucket1   string         `gorm:"type:text;not null;comment:第一個5分K(HH:MM)" json:"bucket1"`
	Bucket2   string         `gorm:"type:text;not null;comment:第二個5分K(HH:MM)" json:"bucket2"`
	Bucket3   string         `gorm:"type:text;not null;comment:第三個5分K(HH:MM)" json:"bucket3"`
	Low1      float64        `gorm:"type:numeric;not null;comment:第一個K棒低點" json:"low1"`
	Low2      float64        `gorm:"type:numeric;not null;comment:第二個K棒低點" json:"low2"`
	Low3      float64        `gorm:"type:numeric;not null;comment:第三個K棒低點" json:"low3"`
	Payload   datatypes.JSON `gorm:"comment:觸發當下完整行情" json:"payload"`
	Delivered bool           `gorm:"not null;comment:webhook是否送達" json:"delivered"`
	CreatedAt time.Time      `gorm:"type:timestamptz;not null;comment:建立時間" json:"created_at"`
}

func (Detection) TableName() string {
	return "detections"
}
