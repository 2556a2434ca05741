package http

import (
	"encoding/json"
	"net/http"

	"stock-portfolio-service/internal/api/dto"
	"stock-portfolio-service/internal/api/service"
	"stock-portfolio-service/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StockHandler handles HTTP requests for market data.
type StockHandler struct {
	stockService service.StockService
	logger       *logger.Logger
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(stockService service.StockService, logger *logger.Logger) *StockHandler {
	return &StockHandler{stockService: stockService, logger: logger}
}

// RegisterRoutes registers the stock routes to the Echo group.
func (h *StockHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetStocks)
	g.GET("/search", h.Search)
	g.GET("/:symbol", h.GetStock)
	g.GET("/:symbol/candles", h.GetCandles)
}

// GetStock godoc
// @Summary Get profile and quote for a symbol
// @Tags stocks
// @Produce json
// @Param symbol path string true "Ticker symbol"
// @Success 200 {object} dto.StockCombined
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /stocks/{symbol} [get]
func (h *StockHandler) GetStock(c echo.Context) error {
	stock, err := h.stockService.GetStock(c.Request().Context(), c.Param("symbol"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, stock)
}

// GetStocks godoc
// @Summary Get profile and quote for several symbols
// @Description Symbols that cannot be fetched come back with empty profile and quote.
// @Tags stocks
// @Produce json
// @Param symbols query string true "Comma separated symbols"
// @Success 200 {array} dto.StockCombined
// @Failure 400 {object} dto.ErrorResponse
// @Router /stocks [get]
func (h *StockHandler) GetStocks(c echo.Context) error {
	symbols, err := service.ParseSymbols(c.QueryParam("symbols"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	results := h.stockService.GetStocks(c.Request().Context(), symbols)
	stocks := make([]dto.StockCombined, 0, len(results))
	for _, r := range results {
		stocks = append(stocks, r.OrPlaceholder())
	}
	return c.JSON(http.StatusOK, stocks)
}

// GetCandles godoc
// @Summary Get OHLCV candles
// @Tags stocks
// @Produce json
// @Param symbol path string true "Ticker symbol"
// @Param resolution query string false "1, 5, 15, 30, 60, D, W or M" default(D)
// @Param from query int true "Start, unix seconds"
// @Param to query int true "End, unix seconds"
// @Success 200 {object} dto.CandleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /stocks/{symbol}/candles [get]
func (h *StockHandler) GetCandles(c echo.Context) error {
	var query dto.CandleQuery
	err := echo.QueryParamsBinder(c).
		String("resolution", &query.Resolution).
		MustInt64("from", &query.From).
		MustInt64("to", &query.To).
		BindError()
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: "Query parameters 'from' and 'to' must be unix timestamps."})
	}

	candles, err := h.stockService.GetCandles(c.Request().Context(), c.Param("symbol"), query)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, candles)
}

// Search godoc
// @Summary Search symbols
// @Description Returns the provider's lookup result unchanged.
// @Tags stocks
// @Produce json
// @Param q query string true "Free text query"
// @Success 200 {object} object
// @Failure 400 {object} dto.ErrorResponse
// @Router /stocks/search [get]
func (h *StockHandler) Search(c echo.Context) error {
	result, err := h.stockService.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if len(result) == 0 {
		result = json.RawMessage("null")
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, result)
}
