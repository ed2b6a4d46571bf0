// Package apiclient talks to a running HomeWiz API. The admin tool uses it to
// smoke test a deployment.
package apiclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type HealthStatus struct {
	Status       string            `json:"status"`
	Message      string            `json:"message"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

type BuildingSummary struct {
	BuildingID string `json:"building_id"`
	Name       string `json:"building_name"`
	Floors     int    `json:"floors"`
	TotalRooms int    `json:"total_rooms"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Accept", "application/json")

	return &Client{httpClient: client, logger: logger}
}

// Health returns the decoded /health body. A degraded API answers 503 with a
// body, so the status is returned together with an error in that case.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&status).
		SetError(&status).
		Get("/health")
	if err != nil {
		c.logger.Error("health check failed", zap.Error(err))
		return nil, fmt.Errorf("failed to call /health: %w", err)
	}
	if resp.IsError() {
		return &status, fmt.Errorf("api reported %s (status %d)", status.Status, resp.StatusCode())
	}

	c.logger.Info("health check succeeded",
		zap.String("status", status.Status),
		zap.String("uptime", status.Uptime),
	)
	return &status, nil
}

func (c *Client) ListBuildings(ctx context.Context) ([]BuildingSummary, error) {
	var buildings []BuildingSummary
	var apiErr errorBody
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&buildings).
		SetError(&apiErr).
		Get("/api/buildings")
	if err != nil {
		return nil, fmt.Errorf("failed to list buildings: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list buildings: %s %s (status %d)", apiErr.Code, apiErr.Message, resp.StatusCode())
	}
	return buildings, nil
}
