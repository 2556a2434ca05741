package dto

import "time"

// TradeRequest is the body of both buy and sell.
type TradeRequest struct {
	UserID   uint    `json:"user_id" validate:"required"`
	Symbol   string  `json:"symbol" validate:"required"`
	Shares   int64   `json:"shares" validate:"required,gt=0"`
	AvgPrice float64 `json:"avg_price" validate:"required,gt=0"`
}

// PositionResponse is one ledger row.
type PositionResponse struct {
	ID             uint       `json:"id"`
	UserID         uint       `json:"user_id"`
	Symbol         string     `json:"symbol"`
	Shares         int64      `json:"shares"`
	AvgPrice       float64    `json:"avg_price"`
	LastPrice      *float64   `json:"last_price"`
	PriceUpdatedAt *time.Time `json:"price_updated_at"`
}

// TradeResponse summarises a buy or sell. Position is nil once a position is closed.
type TradeResponse struct {
	Message  string            `json:"message"`
	Position *PositionResponse `json:"position,omitempty"`
}

// UpdatedPrice is one symbol written by a price refresh.
type UpdatedPrice struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

// RefreshPricesResponse lists the symbols a refresh managed to update.
type RefreshPricesResponse struct {
	Updated []UpdatedPrice `json:"updated"`
	Count   int            `json:"count"`
}
