package entity

import "time"

// Position is one user's holding of one symbol.
type Position struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"not null;uniqueIndex:uq_portfolio_user_symbol" json:"user_id"`
	Symbol         string     `gorm:"not null;uniqueIndex:uq_portfolio_user_symbol" json:"symbol"`
	Shares         int64      `gorm:"not null" json:"shares"`
	AvgPrice       float64    `gorm:"not null" json:"avg_price"`
	LastPrice      *float64   `json:"last_price"`
	PriceUpdatedAt *time.Time `json:"price_updated_at"`
}

func (Position) TableName() string {
	return "portfolio"
}
