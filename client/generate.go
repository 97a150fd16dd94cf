package client

import (
	"context"

	"github.com/svgmerge/svgmerge/pkg/rest"
)

// GenerateService wraps the document generation endpoint.
type GenerateService struct {
	client *Client
}

// Generate runs one remote generation and returns the materialized
// documents in source row order.
func (s *GenerateService) Generate(ctx context.Context, req rest.GenerateRequest) (*rest.GenerateResponse, error) {
	var resp rest.GenerateResponse
	_, err := s.client.doPOST(ctx, "/api/v1/generate", &req, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// StatusService wraps the server status endpoint.
type StatusService struct {
	client *Client
}

// Get fetches the server version and renderer availability.
func (s *StatusService) Get(ctx context.Context) (*rest.StatusResponse, error) {
	var resp rest.StatusResponse
	_, err := s.client.doGET(ctx, "/api/v1/status", &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
