package service

import (
	"context"
	"encoding/json"

	"stock-portfolio-service/internal/api/dto"
	"stock-portfolio-service/internal/entity"

	"github.com/stretchr/testify/mock"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, id uint, username, passwordHash, email *string) (*entity.User, error) {
	args := m.Called(ctx, id, username, passwordHash, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockMarketDataRepository struct {
	mock.Mock
}

func (m *mockMarketDataRepository) Quote(ctx context.Context, symbol string) (*dto.Quote, error) {
	args := m.Called(ctx, symbol)
	quote, _ := args.Get(0).(*dto.Quote)
	return quote, args.Error(1)
}

func (m *mockMarketDataRepository) Profile(ctx context.Context, symbol string) (*dto.Profile, error) {
	args := m.Called(ctx, symbol)
	profile, _ := args.Get(0).(*dto.Profile)
	return profile, args.Error(1)
}

func (m *mockMarketDataRepository) Candles(ctx context.Context, symbol string, query dto.CandleQuery) (*dto.CandleResponse, error) {
	args := m.Called(ctx, symbol, query)
	candles, _ := args.Get(0).(*dto.CandleResponse)
	return candles, args.Error(1)
}

func (m *mockMarketDataRepository) Search(ctx context.Context, query string) (json.RawMessage, error) {
	args := m.Called(ctx, query)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}
