package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"sentinel-service/internal/redisclient"
	"sentinel-service/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RateService fetches the USD reference exchange rate from an external
// endpoint and caches it in Redis with a TTL.
type RateService struct {
	redis      *redisclient.Client
	httpClient *http.Client
	endpoint   string
	ttl        time.Duration
	logger     *zap.Logger
}

// NewRateService creates a new exchange rate service
func NewRateService(redis *redisclient.Client, endpoint string, ttl time.Duration) *RateService {
	return &RateService{
		redis:      redis,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		endpoint:   endpoint,
		ttl:        ttl,
		logger:     util.GetLogger(),
	}
}

type rateResponse struct {
	Price float64 `json:"price"`
}

// GetRate returns the cached exchange rate, fetching from the external
// endpoint on a cache miss. Returns zero when no rate is available; callers
// treat a zero rate as "no conversion shown".
func (rs *RateService) GetRate(ctx context.Context) (decimal.Decimal, error) {
	cached, err := rs.redis.GetExchangeRate(ctx)
	if err != nil {
		rs.logger.Warn("Exchange rate cache read failed", zap.Error(err))
	} else if cached != "" {
		rate, err := decimal.NewFromString(cached)
		if err == nil {
			return rate, nil
		}
		rs.logger.Warn("Corrupt exchange rate cache entry", zap.String("value", cached))
	}

	rate, err := rs.fetchRate(ctx)
	if err != nil {
		util.ExchangeRateFetchesTotal.WithLabelValues("error").Inc()
		rs.logger.Warn("Exchange rate fetch failed", zap.Error(err))
		return decimal.Zero, err
	}

	util.ExchangeRateFetchesTotal.WithLabelValues("success").Inc()
	if err := rs.redis.SetExchangeRate(ctx, rate.String(), rs.ttl); err != nil {
		rs.logger.Warn("Failed to cache exchange rate", zap.Error(err))
	}

	return rate, nil
}

func (rs *RateService) fetchRate(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rs.endpoint, nil)
	if err != nil {
		return decimal.Zero, err
	}

	resp, err := rs.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("exchange rate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("exchange rate endpoint returned %d", resp.StatusCode)
	}

	var body rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode exchange rate response: %w", err)
	}
	if body.Price <= 0 {
		return decimal.Zero, fmt.Errorf("exchange rate endpoint returned non-positive price")
	}

	return decimal.NewFromFloat(body.Price), nil
}
