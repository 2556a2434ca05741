package repository

import (
	"context"
	"errors"
	"time"

	"stock-portfolio-service/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PortfolioRepository defines the interface for ledger data operations.
type PortfolioRepository interface {
	// Transaction runs fn against a repository bound to one database transaction.
	Transaction(ctx context.Context, fn func(repo PortfolioRepository) error) error
	FindByUserID(ctx context.Context, userID uint) ([]entity.Position, error)
	// FindForUpdate row-locks the (user, symbol) position. It returns nil, nil when there is none.
	FindForUpdate(ctx context.Context, userID uint, symbol string) (*entity.Position, error)
	// CreateIfAbsent inserts position unless the (user, symbol) row exists and reports whether it inserted.
	CreateIfAbsent(ctx context.Context, position *entity.Position) (bool, error)
	UpdateHolding(ctx context.Context, id uint, shares int64, avgPrice float64) error
	Delete(ctx context.Context, id uint) error
	DistinctSymbols(ctx context.Context) ([]string, error)
	// UpdatePriceBySymbol stamps price on every row holding symbol, across all users.
	UpdatePriceBySymbol(ctx context.Context, symbol string, price float64, at time.Time, overwriteCostBasis bool) (int64, error)
}

// NewPortfolioRepository creates a new GORM-based portfolio repository.
func NewPortfolioRepository(db *gorm.DB) PortfolioRepository {
	return &portfolioRepository{db: db}
}

type portfolioRepository struct {
	db *gorm.DB
}

func (r *portfolioRepository) Transaction(ctx context.Context, fn func(repo PortfolioRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&portfolioRepository{db: tx})
	})
}

// FindByUserID lists a user's positions in id order.
func (r *portfolioRepository) FindByUserID(ctx context.Context, userID uint) ([]entity.Position, error) {
	positions := make([]entity.Position, 0)
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

func (r *portfolioRepository) FindForUpdate(ctx context.Context, userID uint, symbol string) (*entity.Position, error) {
	var position entity.Position
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		First(&position).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &position, nil
}

func (r *portfolioRepository) CreateIfAbsent(ctx context.Context, position *entity.Position) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "symbol"}},
			DoNothing: true,
		}).
		Create(position)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *portfolioRepository) UpdateHolding(ctx context.Context, id uint, shares int64, avgPrice float64) error {
	return r.db.WithContext(ctx).
		Model(&entity.Position{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"shares": shares, "avg_price": avgPrice}).Error
}

func (r *portfolioRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Position{}, id).Error
}

// DistinctSymbols returns every symbol held by anyone, sorted.
func (r *portfolioRepository) DistinctSymbols(ctx context.Context) ([]string, error) {
	symbols := make([]string, 0)
	if err := r.db.WithContext(ctx).
		Model(&entity.Position{}).
		Distinct("symbol").
		Order("symbol ASC").
		Pluck("symbol", &symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

func (r *portfolioRepository) UpdatePriceBySymbol(ctx context.Context, symbol string, price float64, at time.Time, overwriteCostBasis bool) (int64, error) {
	values := map[string]interface{}{
		"last_price":       price,
		"price_updated_at": at,
	}
	if overwriteCostBasis {
		values["avg_price"] = price
	}
	res := r.db.WithContext(ctx).
		Model(&entity.Position{}).
		Where("symbol = ?", symbol).
		Updates(values)
	return res.RowsAffected, res.Error
}
