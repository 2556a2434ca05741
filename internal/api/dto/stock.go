package dto

// Quote is a real-time quote. Absent upstream fields stay nil.
type Quote struct {
	C  *float64 `json:"c"`  // current price
	D  *float64 `json:"d"`  // change
	DP *float64 `json:"dp"` // percent change
	H  *float64 `json:"h"`
	L  *float64 `json:"l"`
	O  *float64 `json:"o"`
	PC *float64 `json:"pc"` // previous close
	T  *int64   `json:"t"`  // unix seconds
}

// HasPrice reports whether the quote carries a non-zero current price.
func (q *Quote) HasPrice() bool {
	return q != nil && q.C != nil && *q.C != 0
}

// Profile is a company profile.
type Profile struct {
	Ticker    *string  `json:"ticker"`
	Name      *string  `json:"name"`
	Exchange  *string  `json:"exchange"`
	Currency  *string  `json:"currency"`
	Country   *string  `json:"country"`
	MarketCap *float64 `json:"market_cap"`
	Logo      *string  `json:"logo"`
	IPO       *string  `json:"ipo"`
}

// HasName reports whether the profile carries a company name.
func (p *Profile) HasName() bool {
	return p != nil && p.Name != nil && *p.Name != ""
}

// IsEmpty reports whether no profile field is set.
func (p *Profile) IsEmpty() bool {
	return p == nil || (p.Ticker == nil && p.Name == nil && p.Exchange == nil && p.Currency == nil &&
		p.Country == nil && p.MarketCap == nil && p.Logo == nil && p.IPO == nil)
}

// StockCombined merges profile and quote for one symbol.
type StockCombined struct {
	Symbol  string  `json:"symbol"`
	Profile Profile `json:"profile"`
	Quote   Quote   `json:"quote"`
}

// EmptyStock is the placeholder a batch returns for a symbol it could not fetch.
func EmptyStock(symbol string) StockCombined {
	return StockCombined{Symbol: symbol}
}

// CandleResponse is an OHLCV series. Status is "ok" or "no_data".
type CandleResponse struct {
	Status    string    `json:"s"`
	Timestamp []int64   `json:"t"`
	Close     []float64 `json:"c"`
	Open      []float64 `json:"o"`
	High      []float64 `json:"h"`
	Low       []float64 `json:"l"`
	Volume    []float64 `json:"v"`
}

// Normalize replaces nil series with empty ones so they encode as [].
func (c *CandleResponse) Normalize() {
	if c.Timestamp == nil {
		c.Timestamp = []int64{}
	}
	for _, s := range []*[]float64{&c.Close, &c.Open, &c.High, &c.Low, &c.Volume} {
		if *s == nil {
			*s = []float64{}
		}
	}
}

// CandleQuery holds the candle endpoint query string.
type CandleQuery struct {
	Resolution string
	From       int64
	To         int64
}
