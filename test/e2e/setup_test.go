// End-to-end tests drive the HTTP API through the Go SDK.  By default the
// full stack (engine, metrics, router) runs in-process; set
// RXNMAP_E2E_BASE_URL to run the same scenarios against a deployed server.
package e2e_test

import (
	"fmt"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/ReactionMapper/internal/application/matching"
	"github.com/turtacn/ReactionMapper/internal/domain/mapping"
	"github.com/turtacn/ReactionMapper/internal/intelligence/cycles"
	"github.com/turtacn/ReactionMapper/internal/intelligence/mcs"
	"github.com/turtacn/ReactionMapper/internal/infrastructure/monitoring/prometheus"
	httpapi "github.com/turtacn/ReactionMapper/internal/interfaces/http"
	"github.com/turtacn/ReactionMapper/internal/interfaces/http/handlers"
	"github.com/turtacn/ReactionMapper/pkg/client"
)

// EnvBaseURL points the suite at an external server.
const EnvBaseURL = "RXNMAP_E2E_BASE_URL"

type testEnv struct {
	baseURL   string
	sdk       *client.Client
	inProcess bool
	cleanup   func()
}

var env *testEnv

func TestMain(m *testing.M) {
	var err error
	env, err = setupTestEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "E2E test setup failed: %v\n", err)
		os.Exit(1)
	}
	code := m.Run()
	env.cleanup()
	os.Exit(code)
}

func setupTestEnv() (*testEnv, error) {
	if base := os.Getenv(EnvBaseURL); base != "" {
		sdk, err := client.NewClient(base)
		if err != nil {
			return nil, err
		}
		return &testEnv{baseURL: base, sdk: sdk, cleanup: func() {}}, nil
	}

	collector, err := prometheus.NewCollector(prometheus.CollectorConfig{Namespace: "rxnmap", Subsystem: "matching"}, nil)
	if err != nil {
		return nil, err
	}
	finder, err := cycles.New(string(cycles.StrategyAllOrSSSR), cycles.DefaultLimit)
	if err != nil {
		return nil, err
	}
	engine, err := matching.NewGraphMatcher(mcs.NewKernel(0), finder,
		matching.WithRecorder(prometheus.NewMappingMetrics(collector)),
		matching.WithProcessors(4),
	)
	if err != nil {
		return nil, err
	}
	router := httpapi.NewRouter(httpapi.RouterConfig{
		MappingHandler: handlers.NewMappingHandler(engine, handlers.NewTheorySetting(mapping.TheoryMin), handlers.MappingHandlerOptions{}, nil),
		HealthHandler:  handlers.NewHealthHandler("e2e"),
		Metrics:        collector.Handler(),
		Mode:           gin.TestMode,
		MaxBodySize:    1 << 20,
	})
	server := httptest.NewServer(router)

	sdk, err := client.NewClient(server.URL, client.WithRetryMax(0))
	if err != nil {
		server.Close()
		return nil, err
	}
	return &testEnv{baseURL: server.URL, sdk: sdk, inProcess: true, cleanup: server.Close}, nil
}
