package service

import (
	"context"
	"fmt"
	"math"

	"stock-portfolio-service/internal/api/config"
	"stock-portfolio-service/internal/api/dto"
	"stock-portfolio-service/internal/api/repository"
	"stock-portfolio-service/internal/entity"
	"stock-portfolio-service/pkg/common"
	"stock-portfolio-service/pkg/logger"
	"stock-portfolio-service/pkg/utils"

	"github.com/shopspring/decimal"
)

// Locker serialises work on one key. The returned func releases it.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// QuoteProvider supplies current prices to the ledger.
type QuoteProvider interface {
	GetQuote(ctx context.Context, symbol string) (*dto.Quote, error)
}

// PortfolioService defines the interface for the position ledger.
type PortfolioService interface {
	List(ctx context.Context, userID uint) ([]dto.PositionResponse, error)
	Buy(ctx context.Context, req *dto.TradeRequest) (*dto.TradeResponse, error)
	Sell(ctx context.Context, req *dto.TradeRequest) (*dto.TradeResponse, error)
	RefreshPrices(ctx context.Context) (*dto.RefreshPricesResponse, error)
}

// NewPortfolioService creates a new portfolio service.
func NewPortfolioService(portfolioRepo repository.PortfolioRepository, quotes QuoteProvider, locker Locker, cfg *config.Config, logger *logger.Logger) PortfolioService {
	return &portfolioService{
		portfolioRepo: portfolioRepo,
		quotes:        quotes,
		locker:        locker,
		cfg:           cfg,
		logger:        logger,
	}
}

type portfolioService struct {
	portfolioRepo repository.PortfolioRepository
	quotes        QuoteProvider
	locker        Locker
	cfg           *config.Config
	logger        *logger.Logger
}

func (s *portfolioService) List(ctx context.Context, userID uint) ([]dto.PositionResponse, error) {
	positions, err := s.portfolioRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.PositionResponse, 0, len(positions))
	for i := range positions {
		responses = append(responses, *mapToPositionResponse(&positions[i]))
	}
	return responses, nil
}

// Buy opens a position or adds to it, reweighting the average cost.
func (s *portfolioService) Buy(ctx context.Context, req *dto.TradeRequest) (*dto.TradeResponse, error) {
	symbol := NormalizeSymbol(req.Symbol)
	if symbol == "" {
		return nil, ErrSymbolRequired
	}
	if req.Shares <= 0 || req.AvgPrice <= 0 {
		return nil, ErrInvalidTrade
	}

	unlock, err := s.lock(ctx, req.UserID, symbol)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var resp *dto.TradeResponse
	err = s.portfolioRepo.Transaction(ctx, func(tx repository.PortfolioRepository) error {
		position, err := tx.FindForUpdate(ctx, req.UserID, symbol)
		if err != nil {
			return err
		}

		if position == nil {
			position = &entity.Position{
				UserID:   req.UserID,
				Symbol:   symbol,
				Shares:   req.Shares,
				AvgPrice: req.AvgPrice,
			}
			inserted, err := tx.CreateIfAbsent(ctx, position)
			if err != nil {
				return err
			}
			if inserted {
				resp = &dto.TradeResponse{
					Message:  fmt.Sprintf("Bought %d shares of %s.", req.Shares, symbol),
					Position: mapToPositionResponse(position),
				}
				return nil
			}
			// Lost the first-buy race; the winner's row is committed now.
			position, err = tx.FindForUpdate(ctx, req.UserID, symbol)
			if err != nil {
				return err
			}
			if position == nil {
				return fmt.Errorf("position %d/%s vanished after insert conflict", req.UserID, symbol)
			}
		}

		if position.Shares > math.MaxInt64-req.Shares {
			return ErrShareCountTooLarge
		}
		shares := position.Shares + req.Shares
		avgPrice := weightedAverage(position.Shares, position.AvgPrice, req.Shares, req.AvgPrice)
		if err := tx.UpdateHolding(ctx, position.ID, shares, avgPrice); err != nil {
			return err
		}
		position.Shares = shares
		position.AvgPrice = avgPrice
		resp = &dto.TradeResponse{
			Message:  fmt.Sprintf("Added %d shares to %s. Total: %d shares.", req.Shares, symbol, shares),
			Position: mapToPositionResponse(position),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Buy recorded", logger.Field("user_id", req.UserID), logger.StringField("symbol", symbol), logger.Field("shares", req.Shares))
	return resp, nil
}

// Sell reduces a position; selling everything closes it. The average cost is unchanged.
func (s *portfolioService) Sell(ctx context.Context, req *dto.TradeRequest) (*dto.TradeResponse, error) {
	symbol := NormalizeSymbol(req.Symbol)
	if symbol == "" {
		return nil, ErrSymbolRequired
	}
	if req.Shares <= 0 {
		return nil, ErrInvalidTrade
	}

	unlock, err := s.lock(ctx, req.UserID, symbol)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var resp *dto.TradeResponse
	err = s.portfolioRepo.Transaction(ctx, func(tx repository.PortfolioRepository) error {
		position, err := tx.FindForUpdate(ctx, req.UserID, symbol)
		if err != nil {
			return err
		}
		if position == nil {
			return ErrNoPosition
		}
		if req.Shares > position.Shares {
			return ErrInsufficientShares
		}

		remaining := position.Shares - req.Shares
		if remaining == 0 {
			if err := tx.Delete(ctx, position.ID); err != nil {
				return err
			}
			resp = &dto.TradeResponse{Message: fmt.Sprintf("Sold all shares of %s. Position closed.", symbol)}
			return nil
		}

		if err := tx.UpdateHolding(ctx, position.ID, remaining, position.AvgPrice); err != nil {
			return err
		}
		position.Shares = remaining
		resp = &dto.TradeResponse{
			Message:  fmt.Sprintf("Sold %d shares of %s. Remaining: %d shares.", req.Shares, symbol, remaining),
			Position: mapToPositionResponse(position),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Sell recorded", logger.Field("user_id", req.UserID), logger.StringField("symbol", symbol), logger.Field("shares", req.Shares))
	return resp, nil
}

// RefreshPrices quotes every held symbol once and stamps the price on all rows holding it.
// Symbols that fail are logged and left out of the result.
func (s *portfolioService) RefreshPrices(ctx context.Context) (*dto.RefreshPricesResponse, error) {
	symbols, err := s.portfolioRepo.DistinctSymbols(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.RefreshPricesResponse{Updated: []dto.UpdatedPrice{}}
	for _, symbol := range symbols {
		if ctx.Err() != nil {
			break
		}

		quote, err := s.quotes.GetQuote(ctx, symbol)
		if err != nil {
			s.logger.WarnContext(ctx, "Failed to fetch quote", logger.StringField("symbol", symbol), logger.ErrorField(err))
			continue
		}
		if !quote.HasPrice() {
			s.logger.WarnContext(ctx, "Quote has no current price", logger.StringField("symbol", symbol))
			continue
		}

		price := utils.ValueOrZero(quote.C)
		rows, err := s.portfolioRepo.UpdatePriceBySymbol(ctx, symbol, price, utils.TimeNowUTC(), s.cfg.Portfolio.RefreshOverwritesCostBasis)
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to store refreshed price", logger.StringField("symbol", symbol), logger.ErrorField(err))
			continue
		}
		s.logger.DebugContext(ctx, "Price refreshed", logger.StringField("symbol", symbol), logger.Field("price", price), logger.Field("rows", rows))
		resp.Updated = append(resp.Updated, dto.UpdatedPrice{Symbol: symbol, Price: price})
	}
	resp.Count = len(resp.Updated)

	s.logger.InfoContext(ctx, "Price refresh finished", logger.IntField("symbols", len(symbols)), logger.IntField("updated", resp.Count))
	return resp, nil
}

func (s *portfolioService) lock(ctx context.Context, userID uint, symbol string) (func(), error) {
	key := fmt.Sprintf(common.PortfolioLockKey, userID, symbol)
	unlock, err := s.locker.Lock(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", key, err)
	}
	return unlock, nil
}

// weightedAverage returns (oldShares*oldAvg + shares*price) / (oldShares + shares).
func weightedAverage(oldShares int64, oldAvg float64, shares int64, price float64) float64 {
	total := decimal.NewFromInt(oldShares + shares)
	cost := decimal.NewFromInt(oldShares).Mul(decimal.NewFromFloat(oldAvg)).
		Add(decimal.NewFromInt(shares).Mul(decimal.NewFromFloat(price)))
	avg, _ := cost.Div(total).Float64()
	return avg
}

func mapToPositionResponse(position *entity.Position) *dto.PositionResponse {
	return &dto.PositionResponse{
		ID:             position.ID,
		UserID:         position.UserID,
		Symbol:         position.Symbol,
		Shares:         position.Shares,
		AvgPrice:       position.AvgPrice,
		LastPrice:      position.LastPrice,
		PriceUpdatedAt: position.PriceUpdatedAt,
	}
}
