package service

import (
	"context"
	"encoding/json"
	"strings"

	"stock-portfolio-service/internal/api/apperror"
	"stock-portfolio-service/internal/api/dto"
	"stock-portfolio-service/internal/api/repository"
	"stock-portfolio-service/pkg/common"
	"stock-portfolio-service/pkg/logger"
)

// StockResult is the outcome of fetching one symbol in a batch.
type StockResult struct {
	Symbol string
	Stock  *dto.StockCombined
	Err    error
}

// OrPlaceholder returns the fetched record, or an empty record carrying only the symbol.
func (r StockResult) OrPlaceholder() dto.StockCombined {
	if r.Err != nil || r.Stock == nil {
		return dto.EmptyStock(r.Symbol)
	}
	return *r.Stock
}

// StockService defines the market-data gateway used by the HTTP layer and the ledger.
type StockService interface {
	GetStock(ctx context.Context, symbol string) (*dto.StockCombined, error)
	GetStocks(ctx context.Context, symbols []string) []StockResult
	GetCandles(ctx context.Context, symbol string, query dto.CandleQuery) (*dto.CandleResponse, error)
	Search(ctx context.Context, query string) (json.RawMessage, error)
	GetQuote(ctx context.Context, symbol string) (*dto.Quote, error)
}

// NewStockService creates a new stock service.
func NewStockService(marketRepo repository.MarketDataRepository, logger *logger.Logger) StockService {
	return &stockService{
		marketRepo: marketRepo,
		logger:     logger,
	}
}

type stockService struct {
	marketRepo repository.MarketDataRepository
	logger     *logger.Logger
}

// GetStock fetches profile and quote and merges them. It fails with not found only
// when neither a company name nor a current price came back.
func (s *stockService) GetStock(ctx context.Context, symbol string) (*dto.StockCombined, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, ErrSymbolRequired
	}

	profile, err := s.marketRepo.Profile(ctx, symbol)
	if err != nil {
		return nil, err
	}
	quote, err := s.marketRepo.Quote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if profile.IsEmpty() || !quote.HasPrice() {
		s.logger.WarnContext(ctx, "Empty response from market data provider",
			logger.StringField("symbol", symbol),
			logger.Field("profile_empty", profile.IsEmpty()),
			logger.Field("quote_has_price", quote.HasPrice()))
	}

	if !profile.HasName() && !quote.HasPrice() {
		return nil, apperror.Newf(apperror.ErrNotFound, "Symbol '%s' not found.", symbol)
	}

	stock := &dto.StockCombined{Symbol: symbol}
	if profile != nil {
		stock.Profile = *profile
	}
	if quote != nil {
		stock.Quote = *quote
	}
	return stock, nil
}

// GetStocks fetches each symbol in order. A failing symbol yields a result with Err set;
// the batch itself never fails.
func (s *stockService) GetStocks(ctx context.Context, symbols []string) []StockResult {
	results := make([]StockResult, 0, len(symbols))
	for _, symbol := range symbols {
		symbol = NormalizeSymbol(symbol)
		stock, err := s.GetStock(ctx, symbol)
		if err != nil {
			s.logger.ErrorContext(ctx, "Could not fetch stock", logger.StringField("symbol", symbol), logger.ErrorField(err))
		}
		results = append(results, StockResult{Symbol: symbol, Stock: stock, Err: err})
	}
	return results
}

func (s *stockService) GetCandles(ctx context.Context, symbol string, query dto.CandleQuery) (*dto.CandleResponse, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, ErrSymbolRequired
	}
	if query.Resolution == "" {
		query.Resolution = common.DefaultCandleResolution
	}
	return s.marketRepo.Candles(ctx, symbol, query)
}

func (s *stockService) Search(ctx context.Context, query string) (json.RawMessage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrSearchQueryRequired
	}
	return s.marketRepo.Search(ctx, query)
}

func (s *stockService) GetQuote(ctx context.Context, symbol string) (*dto.Quote, error) {
	return s.marketRepo.Quote(ctx, NormalizeSymbol(symbol))
}

// NormalizeSymbol trims and uppercases a ticker.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// ParseSymbols splits a comma separated list, dropping blanks.
func ParseSymbols(raw string) ([]string, error) {
	var symbols []string
	for _, part := range strings.Split(raw, ",") {
		if symbol := NormalizeSymbol(part); symbol != "" {
			symbols = append(symbols, symbol)
		}
	}
	if len(symbols) == 0 {
		return nil, ErrNoSymbolsProvided
	}
	return symbols, nil
}
