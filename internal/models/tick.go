package models

type Tick struct {
	Symbol  string   `gorm:"primaryKey;type:text;comment:股票代號" json:"symbol"`
	TSSec   int64    `gorm:"column:ts_sec;primaryKey;comment:成交時間(unix秒)" json:"ts_sec"`
	Price   float64  `gorm:"type:numeric;not null;comment:成交價" json:"price"`
	Vol     int64    `gorm:"not null;comment:成交量" json:"vol"`
	BestBid *float64 `gorm:"type:numeric;comment:最佳買價" json:"best_bid,omitempty"`
	BestAsk *float64 `gorm:"type:numeric;comment:最佳賣價" json:"best_ask,omitempty"`
}

func (Tick) TableName() string {
	return "ticks"
}
