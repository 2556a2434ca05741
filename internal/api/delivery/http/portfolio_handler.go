package http

import (
	"net/http"
	"strconv"

	"stock-portfolio-service/internal/api/dto"
	"stock-portfolio-service/internal/api/service"
	"stock-portfolio-service/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PortfolioHandler handles HTTP requests for the position ledger.
type PortfolioHandler struct {
	portfolioService service.PortfolioService
	logger           *logger.Logger
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService service.PortfolioService, logger *logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService, logger: logger}
}

// RegisterRoutes registers the portfolio routes to the Echo group.
func (h *PortfolioHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/buy", h.Buy)
	g.POST("/sell", h.Sell)
	g.PUT("/update_prices", h.UpdatePrices)
	g.GET("/:user_id", h.List)
}

// List godoc
// @Summary List a user's positions
// @Tags portfolio
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {array} dto.PositionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /portfolio/{user_id} [get]
func (h *PortfolioHandler) List(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: "Invalid user ID"})
	}

	positions, err := h.portfolioService.List(c.Request().Context(), uint(userID))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, positions)
}

// Buy godoc
// @Summary Buy shares
// @Description Opens a position or adds to it at a reweighted average cost.
// @Tags portfolio
// @Accept json
// @Produce json
// @Param trade body dto.TradeRequest true "Trade"
// @Success 200 {object} dto.TradeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /portfolio/buy [post]
func (h *PortfolioHandler) Buy(c echo.Context) error {
	req, err := bindTrade(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	resp, err := h.portfolioService.Buy(c.Request().Context(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Sell godoc
// @Summary Sell shares
// @Description Reduces a position; selling every share closes it.
// @Tags portfolio
// @Accept json
// @Produce json
// @Param trade body dto.TradeRequest true "Trade"
// @Success 200 {object} dto.TradeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /portfolio/sell [post]
func (h *PortfolioHandler) Sell(c echo.Context) error {
	req, err := bindTrade(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	resp, err := h.portfolioService.Sell(c.Request().Context(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// UpdatePrices godoc
// @Summary Refresh prices of every held symbol
// @Tags portfolio
// @Produce json
// @Success 200 {object} dto.RefreshPricesResponse
// @Router /portfolio/update_prices [put]
func (h *PortfolioHandler) UpdatePrices(c echo.Context) error {
	resp, err := h.portfolioService.RefreshPrices(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func bindTrade(c echo.Context) (*dto.TradeRequest, error) {
	var req dto.TradeRequest
	if err := c.Bind(&req); err != nil {
		return nil, errInvalidPayload
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}
	return &req, nil
}
