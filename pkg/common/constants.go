package common

const (
	// FinnhubTokenEnv is the environment variable carrying the market-data access token.
	FinnhubTokenEnv         = "FINNHUB_TOKEN"
	FinnhubDefaultURL       = "https://finnhub.io/api/v1"
	FinnhubProfilePath      = "/stock/profile2"
	FinnhubQuotePath        = "/quote"
	FinnhubCandlePath       = "/stock/candle"
	FinnhubSearchPath       = "/search"
	DefaultCandleResolution = "D"

	// PortfolioLockKey is formatted with the user id and the symbol.
	PortfolioLockKey = "portfolio:lock:%d:%s"
)
