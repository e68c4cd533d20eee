package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title": "BCV", "price": 36.42}`))
	}))
	defer srv.Close()

	rs := &RateService{
		httpClient: &http.Client{Timeout: time.Second},
		endpoint:   srv.URL,
	}

	rate, err := rs.fetchRate(context.Background())
	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(36.42).Equal(rate), "got %s", rate)
}

func TestFetchRateBadResponses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload string
	}{
		{"server error", http.StatusInternalServerError, ""},
		{"zero price", http.StatusOK, `{"price": 0}`},
		{"negative price", http.StatusOK, `{"price": -1}`},
		{"not json", http.StatusOK, `<html></html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.payload))
			}))
			defer srv.Close()

			rs := &RateService{
				httpClient: &http.Client{Timeout: time.Second},
				endpoint:   srv.URL,
			}

			_, err := rs.fetchRate(context.Background())
			assert.Error(t, err)
		})
	}
}
