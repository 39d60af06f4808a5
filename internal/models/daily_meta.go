package models

type DailyMeta struct {
	Symbol    string   `gorm:"primaryKey;type:text;comment:股票代號" json:"symbol"`
	TradeDate string   `gorm:"primaryKey;type:text;comment:交易日(YYYY-MM-DD)" json:"trade_date"`
	DayOpen   *float64 `gorm:"type:numeric;comment:當日開盤價" json:"day_open,omitempty"`
	DayHigh   *float64 `gorm:"type:numeric;comment:當日最高價" json:"day_high,omitempty"`
	DayLow    *float64 `gorm:"type:numeric;comment:當日最低價" json:"day_low,omitempty"`
	PrevClose *float64 `gorm:"type:numeric;comment:昨日收盤價" json:"prev_close,omitempty"`
	LimitUp   *float64 `gorm:"type:numeric;comment:漲停價" json:"limit_up,omitempty"`
	LimitDown *float64 `gorm:"type:numeric;comment:跌停價" json:"limit_down,omitempty"`
	ShortName string   `gorm:"type:text;comment:公司簡稱" json:"short_name"`
	FullName  string   `gorm:"type:text;comment:公司全名" json:"full_name"`
	Exchange  string   `gorm:"type:text;comment:市場別" json:"exchange"`
}

func (DailyMeta) TableName() string {
	return "daily_meta"
}
