package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/turtacn/ReactionMapper/pkg/errors"
	maptypes "github.com/turtacn/ReactionMapper/pkg/types/mapping"
	rxntypes "github.com/turtacn/ReactionMapper/pkg/types/reaction"
)

// MappingsClient calls the /api/v1 mapping endpoints.
type MappingsClient struct {
	client *Client
}

// TheoryList is the answer of GET /api/v1/theories.
type TheoryList struct {
	Default  string   `json:"default"`
	Theories []string `json:"theories"`
}

// Map submits doc and returns the mapping report.  An empty theory uses the
// server's default.
func (m *MappingsClient) Map(ctx context.Context, doc *rxntypes.Document, theory string) (*maptypes.Report, error) {
	if doc == nil {
		return nil, errors.InvalidParam("client: reaction document is nil")
	}
	path := "/api/v1/mappings"
	if theory != "" {
		path += "?theory=" + url.QueryEscape(theory)
	}
	var env envelope[maptypes.Report]
	if err := m.client.do(ctx, http.MethodPost, path, doc, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Validate reports candidate and job counts and identifier problems of doc
// without mapping it.
func (m *MappingsClient) Validate(ctx context.Context, doc *rxntypes.Document) (*maptypes.Validation, error) {
	if doc == nil {
		return nil, errors.InvalidParam("client: reaction document is nil")
	}
	var env envelope[maptypes.Validation]
	if err := m.client.do(ctx, http.MethodPost, "/api/v1/mappings/validate", doc, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Theories lists the supported theories and the server default.
func (m *MappingsClient) Theories(ctx context.Context) (*TheoryList, error) {
	var env envelope[TheoryList]
	if err := m.client.do(ctx, http.MethodGet, "/api/v1/theories", nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Ready returns nil when the server's readiness probe passes.
func (c *Client) Ready(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/readyz", nil, nil)
}
