package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/divlens/backend/internal/api/handlers"
	"github.com/wonny/divlens/backend/pkg/config"
)

func TestWriteTimeout(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		timeout time.Duration
		want    time.Duration
	}{
		{"sequential", 1, time.Second, time.Duration(handlers.MaxBulkTickers*3)*time.Second + 15*time.Second},
		{"four workers", 4, 15 * time.Second, 25 * 3 * 15 * time.Second + 15*time.Second},
		{"uneven split", 3, time.Second, 34*3*time.Second + 15*time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Dividends: config.DividendsConfig{Workers: tt.workers, GatewayTimeout: tt.timeout}}
			assert.Equal(t, tt.want, writeTimeout(cfg))
		})
	}
}

func TestWriteTimeout_CoversLargestBulk(t *testing.T) {
	cfg := &config.Config{Dividends: config.DividendsConfig{Workers: 2, GatewayTimeout: 5 * time.Second}}
	worstCase := time.Duration((handlers.MaxBulkTickers+1)/2*3) * cfg.Dividends.GatewayTimeout
	assert.Greater(t, writeTimeout(cfg), worstCase)
}
