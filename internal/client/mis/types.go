package mis

// QuoteMsg is one entry of the MIS msgArray. Every field arrives as a
// string; dashes and empty strings stand in for "no value" and are resolved
// by ParseFloat at the ingestion boundary.
type QuoteMsg struct {
	Code       string `json:"c"`  // 股票代號
	ShortName  string `json:"n"`  // 公司簡稱
	FullName   string `json:"nf"` // 公司全名
	Exchange   string `json:"ex"` // tse / otc
	Open       string `json:"o"`
	High       string `json:"h"`
	Low        string `json:"l"`
	PrevClose  string `json:"y"`
	LimitUp    string `json:"u"`
	LimitDown  string `json:"w"`
	Price      string `json:"z"`  // 最新成交價
	TradeVol   string `json:"tv"` // 當筆成交量
	TimeMillis string `json:"tlong"`
	BestBids   string `json:"b"` // 五檔買價, 底線分隔
	BestAsks   string `json:"a"` // 五檔賣價, 底線分隔
}
