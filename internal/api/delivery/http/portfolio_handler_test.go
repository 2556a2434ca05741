package http

import (
	"net/http"
	"testing"

	"stock-portfolio-service/internal/api/dto"
	"stock-portfolio-service/internal/api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPortfolioHandler_List(t *testing.T) {
	ts := newTestServer()
	ts.portfolio.On("List", mock.Anything, uint(1)).Return([]dto.PositionResponse{
		{ID: 1, UserID: 1, Symbol: "AAPL", Shares: 20, AvgPrice: 150},
	}, nil)

	rec := ts.do(http.MethodGet, "/api/portfolio/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1,"user_id":1,"symbol":"AAPL","shares":20,"avg_price":150,"last_price":null,"price_updated_at":null}]`, rec.Body.String())

	rec = ts.do(http.MethodGet, "/api/portfolio/x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPortfolioHandler_Buy(t *testing.T) {
	ts := newTestServer()
	ts.portfolio.On("Buy", mock.Anything, &dto.TradeRequest{UserID: 1, Symbol: "aapl", Shares: 10, AvgPrice: 100}).
		Return(&dto.TradeResponse{Message: "Bought 10 shares of AAPL."}, nil)

	rec := ts.do(http.MethodPost, "/api/portfolio/buy", `{"user_id":1,"symbol":"aapl","shares":10,"avg_price":100}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Bought 10 shares of AAPL."}`, rec.Body.String())
}

func TestPortfolioHandler_BuyValidation(t *testing.T) {
	ts := newTestServer()

	tests := []struct {
		name string
		body string
	}{
		{name: "negative shares", body: `{"user_id":1,"symbol":"A","shares":-1,"avg_price":1}`},
		{name: "zero price", body: `{"user_id":1,"symbol":"A","shares":1,"avg_price":0}`},
		{name: "missing symbol", body: `{"user_id":1,"shares":1,"avg_price":1}`},
		{name: "wrong type", body: `{"user_id":1,"symbol":"A","shares":"ten","avg_price":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(http.MethodPost, "/api/portfolio/buy", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"detail"`)
		})
	}
	ts.portfolio.AssertNotCalled(t, "Buy", mock.Anything, mock.Anything)
}

func TestPortfolioHandler_SellConflicts(t *testing.T) {
	ts := newTestServer()
	ts.portfolio.On("Sell", mock.Anything, mock.MatchedBy(func(r *dto.TradeRequest) bool { return r.Symbol == "NONE" })).
		Return(nil, service.ErrNoPosition)
	ts.portfolio.On("Sell", mock.Anything, mock.MatchedBy(func(r *dto.TradeRequest) bool { return r.Symbol == "FEW" })).
		Return(nil, service.ErrInsufficientShares)

	rec := ts.do(http.MethodPost, "/api/portfolio/sell", `{"user_id":1,"symbol":"NONE","shares":1,"avg_price":1}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"detail":"You don't own this stock."}`, rec.Body.String())

	rec = ts.do(http.MethodPost, "/api/portfolio/sell", `{"user_id":1,"symbol":"FEW","shares":5,"avg_price":1}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"detail":"Not enough shares to sell."}`, rec.Body.String())
}

func TestPortfolioHandler_UpdatePrices(t *testing.T) {
	ts := newTestServer()
	ts.portfolio.On("RefreshPrices", mock.Anything).Return(&dto.RefreshPricesResponse{Updated: []dto.UpdatedPrice{}, Count: 0}, nil)

	rec := ts.do(http.MethodPut, "/api/portfolio/update_prices", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"updated":[],"count":0}`, rec.Body.String())
}

func TestServer_HealthAndUnknownRoute(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = ts.do(http.MethodGet, "/api/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Not Found"}`, rec.Body.String())
}
