package client

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOptions(t *testing.T) {
	custom := &http.Client{Timeout: time.Minute}
	logger := &testLogger{}
	c, err := NewClient("https://rxnmap.example.org",
		WithHTTPClient(custom),
		WithLogger(logger),
		WithRetryMax(5),
		WithAPIKey("k"),
		WithUserAgent("ua"),
	)
	assert.NoError(t, err)
	assert.Same(t, custom, c.httpClient)
	assert.Same(t, logger, c.logger)
	assert.Equal(t, 5, c.retryMax)
	assert.Equal(t, "k", c.apiKey)
	assert.Equal(t, "ua", c.userAgent)
}

func TestOptions_IgnoreInvalidValues(t *testing.T) {
	c, err := NewClient("http://localhost",
		WithHTTPClient(nil),
		WithLogger(nil),
		WithRetryMax(-1),
		WithUserAgent(""),
	)
	assert.NoError(t, err)
	assert.NotNil(t, c.httpClient)
	assert.NotNil(t, c.logger)
	assert.Equal(t, 3, c.retryMax)
	assert.Contains(t, c.userAgent, "rxnmap-go-sdk/")
}

func TestWithRetryWait(t *testing.T) {
	tests := []struct {
		name             string
		min, max         time.Duration
		wantMin, wantMax time.Duration
	}{
		{"both valid", time.Second, 2 * time.Second, time.Second, 2 * time.Second},
		{"max below min keeps default max", time.Second, time.Millisecond, time.Second, 5 * time.Second},
		{"non-positive min ignored", 0, time.Second, 500 * time.Millisecond, 5 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient("http://localhost", WithRetryWait(tt.min, tt.max))
			assert.NoError(t, err)
			assert.Equal(t, tt.wantMin, c.retryWaitMin)
			assert.Equal(t, tt.wantMax, c.retryWaitMax)
		})
	}
}
