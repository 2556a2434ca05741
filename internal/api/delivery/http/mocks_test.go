package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"stock-portfolio-service/internal/api/dto"
	"stock-portfolio-service/internal/api/service"
	"stock-portfolio-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.UserResponse)
	return resp, args.Error(1)
}

func (m *mockUserService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.LoginResponse)
	return resp, args.Error(1)
}

func (m *mockUserService) GetUser(ctx context.Context, id uint) (*dto.UserResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*dto.UserResponse)
	return resp, args.Error(1)
}

func (m *mockUserService) UpdateUser(ctx context.Context, id uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*dto.UserResponse)
	return resp, args.Error(1)
}

func (m *mockUserService) DeleteUser(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockStockService struct {
	mock.Mock
}

func (m *mockStockService) GetStock(ctx context.Context, symbol string) (*dto.StockCombined, error) {
	args := m.Called(ctx, symbol)
	resp, _ := args.Get(0).(*dto.StockCombined)
	return resp, args.Error(1)
}

func (m *mockStockService) GetStocks(ctx context.Context, symbols []string) []service.StockResult {
	args := m.Called(ctx, symbols)
	results, _ := args.Get(0).([]service.StockResult)
	return results
}

func (m *mockStockService) GetCandles(ctx context.Context, symbol string, query dto.CandleQuery) (*dto.CandleResponse, error) {
	args := m.Called(ctx, symbol, query)
	resp, _ := args.Get(0).(*dto.CandleResponse)
	return resp, args.Error(1)
}

func (m *mockStockService) Search(ctx context.Context, query string) (json.RawMessage, error) {
	args := m.Called(ctx, query)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

func (m *mockStockService) GetQuote(ctx context.Context, symbol string) (*dto.Quote, error) {
	args := m.Called(ctx, symbol)
	resp, _ := args.Get(0).(*dto.Quote)
	return resp, args.Error(1)
}

type mockPortfolioService struct {
	mock.Mock
}

func (m *mockPortfolioService) List(ctx context.Context, userID uint) ([]dto.PositionResponse, error) {
	args := m.Called(ctx, userID)
	resp, _ := args.Get(0).([]dto.PositionResponse)
	return resp, args.Error(1)
}

func (m *mockPortfolioService) Buy(ctx context.Context, req *dto.TradeRequest) (*dto.TradeResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.TradeResponse)
	return resp, args.Error(1)
}

func (m *mockPortfolioService) Sell(ctx context.Context, req *dto.TradeRequest) (*dto.TradeResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.TradeResponse)
	return resp, args.Error(1)
}

func (m *mockPortfolioService) RefreshPrices(ctx context.Context) (*dto.RefreshPricesResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(*dto.RefreshPricesResponse)
	return resp, args.Error(1)
}

type testServer struct {
	echo      *echo.Echo
	users     *mockUserService
	stocks    *mockStockService
	portfolio *mockPortfolioService
}

func newTestServer() *testServer {
	log := logger.NewNop()
	ts := &testServer{
		echo:      NewEcho(log),
		users:     new(mockUserService),
		stocks:    new(mockStockService),
		portfolio: new(mockPortfolioService),
	}
	api := ts.echo.Group("/api")
	(&HealthHandler{}).RegisterRoutes(api)
	NewUserHandler(ts.users, log).RegisterRoutes(api)
	NewStockHandler(ts.stocks, log).RegisterRoutes(api.Group("/stocks"))
	NewPortfolioHandler(ts.portfolio, log).RegisterRoutes(api.Group("/portfolio"))
	return ts
}

func (ts *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	ts.echo.ServeHTTP(rec, req)
	return rec
}
