package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"stock-portfolio-service/internal/api/apperror"
	"stock-portfolio-service/internal/api/config"
	"stock-portfolio-service/internal/api/dto"
	"stock-portfolio-service/pkg/common"
	"stock-portfolio-service/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// defaultMaxResponseBytes bounds one upstream body; a minute-resolution year of candles is well under it.
const defaultMaxResponseBytes int64 = 64 << 20

// MarketDataRepository fetches market data from the upstream provider.
type MarketDataRepository interface {
	Quote(ctx context.Context, symbol string) (*dto.Quote, error)
	Profile(ctx context.Context, symbol string) (*dto.Profile, error)
	Candles(ctx context.Context, symbol string, query dto.CandleQuery) (*dto.CandleResponse, error)
	Search(ctx context.Context, query string) (json.RawMessage, error)
}

type finnhubRepository struct {
	cfg            config.Finnhub
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// finnhubProfile mirrors /stock/profile2; the provider names market cap differently.
type finnhubProfile struct {
	Ticker               *string  `json:"ticker"`
	Name                 *string  `json:"name"`
	Exchange             *string  `json:"exchange"`
	Currency             *string  `json:"currency"`
	Country              *string  `json:"country"`
	MarketCapitalization *float64 `json:"marketCapitalization"`
	Logo                 *string  `json:"logo"`
	IPO                  *string  `json:"ipo"`
}

// NewFinnhubRepository creates a Finnhub client. The token is checked on every call, not here.
func NewFinnhubRepository(cfg *config.Config, log *logger.Logger) MarketDataRepository {
	finnhubCfg := cfg.Finnhub
	if finnhubCfg.Timeout <= 0 {
		finnhubCfg.Timeout = 15 * time.Second
	}
	if finnhubCfg.BaseURL == "" {
		finnhubCfg.BaseURL = common.FinnhubDefaultURL
	}
	if finnhubCfg.MaxResponseBytes <= 0 {
		finnhubCfg.MaxResponseBytes = defaultMaxResponseBytes
	}

	var requestLimiter *rate.Limiter
	if finnhubCfg.MaxRequestPerMinute > 0 {
		secondsPerRequest := time.Minute / time.Duration(finnhubCfg.MaxRequestPerMinute)
		requestLimiter = rate.NewLimiter(rate.Every(secondsPerRequest), 1)
	}

	return &finnhubRepository{
		cfg: finnhubCfg,
		log: log,
		httpClient: &http.Client{
			Timeout: finnhubCfg.Timeout,
		},
		requestLimiter: requestLimiter,
	}
}

func (r *finnhubRepository) Quote(ctx context.Context, symbol string) (*dto.Quote, error) {
	var quote dto.Quote
	if err := r.get(ctx, common.FinnhubQuotePath, url.Values{"symbol": {symbol}}, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *finnhubRepository) Profile(ctx context.Context, symbol string) (*dto.Profile, error) {
	var raw finnhubProfile
	if err := r.get(ctx, common.FinnhubProfilePath, url.Values{"symbol": {symbol}}, &raw); err != nil {
		return nil, err
	}
	return &dto.Profile{
		Ticker:    raw.Ticker,
		Name:      raw.Name,
		Exchange:  raw.Exchange,
		Currency:  raw.Currency,
		Country:   raw.Country,
		MarketCap: raw.MarketCapitalization,
		Logo:      raw.Logo,
		IPO:       raw.IPO,
	}, nil
}

func (r *finnhubRepository) Candles(ctx context.Context, symbol string, query dto.CandleQuery) (*dto.CandleResponse, error) {
	params := url.Values{
		"symbol":     {symbol},
		"resolution": {query.Resolution},
		"from":       {strconv.FormatInt(query.From, 10)},
		"to":         {strconv.FormatInt(query.To, 10)},
	}
	var candles dto.CandleResponse
	if err := r.get(ctx, common.FinnhubCandlePath, params, &candles); err != nil {
		return nil, err
	}
	candles.Normalize()
	return &candles, nil
}

func (r *finnhubRepository) Search(ctx context.Context, query string) (json.RawMessage, error) {
	var payload json.RawMessage
	if err := r.get(ctx, common.FinnhubSearchPath, url.Values{"q": {query}}, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// get performs one authenticated GET and decodes the JSON body into out.
func (r *finnhubRepository) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if r.cfg.Token == "" {
		return apperror.New(apperror.ErrMisconfigured, common.FinnhubTokenEnv+" is not set on the server.")
	}

	fields := []zap.Field{
		zap.String("path", path),
		zap.String("params", params.Encode()),
	}

	if r.requestLimiter != nil {
		if err := r.requestLimiter.Wait(ctx); err != nil {
			fields = append(fields, zap.Error(err))
			r.log.ErrorContext(ctx, "Failed to wait for request limit", fields...)
			return &apperror.UpstreamError{StatusCode: http.StatusBadGateway, Detail: fmt.Sprintf("Upstream request failed: %v", err)}
		}
	}

	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("token", r.cfg.Token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(r.cfg.BaseURL, "/")+path+"?"+query.Encode(), nil)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to create new http request", fields...)
		return fmt.Errorf("build finnhub request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		// *url.Error embeds the request URL, which carries the token
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to send request to Finnhub API", fields...)
		return &apperror.UpstreamError{StatusCode: http.StatusBadGateway, Detail: fmt.Sprintf("Upstream request failed: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, r.cfg.MaxResponseBytes+1))
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to read response body from Finnhub API", fields...)
		return &apperror.UpstreamError{StatusCode: http.StatusBadGateway, Detail: fmt.Sprintf("Upstream request failed: %v", err)}
	}
	if int64(len(body)) > r.cfg.MaxResponseBytes {
		fields = append(fields, zap.Int64("max_response_bytes", r.cfg.MaxResponseBytes))
		r.log.ErrorContext(ctx, "Finnhub response exceeds size limit", fields...)
		return &apperror.UpstreamError{StatusCode: http.StatusBadGateway, Detail: "Upstream response too large."}
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		r.log.WarnContext(ctx, "Finnhub rate limit reached", fields...)
		return apperror.New(apperror.ErrUpstreamRateLimited, "Finnhub rate limit reached. Try again shortly.")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fields = append(fields, zap.Int("status_code", resp.StatusCode))
		r.log.ErrorContext(ctx, "Received non-OK response from Finnhub API", fields...)
		return &apperror.UpstreamError{StatusCode: resp.StatusCode, Detail: upstreamDetail(body)}
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to decode Finnhub response", fields...)
		return &apperror.UpstreamError{StatusCode: http.StatusBadGateway, Detail: "Upstream returned an invalid response."}
	}
	return nil
}

// upstreamDetail keeps JSON bodies structured and falls back to the text.
func upstreamDetail(body []byte) interface{} {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && json.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}
	return string(trimmed)
}
