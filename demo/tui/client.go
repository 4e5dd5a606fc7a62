package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"topicbot/orchestrator"
	"topicbot/types"
)

// Client is a thin HTTP client for the topicbot API
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// GetStatus fetches the current run status
func (c *Client) GetStatus() (*orchestrator.StatusResponse, error) {
	resp, err := c.client.Get(c.baseURL + "/api/status")
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	var status orchestrator.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &status, nil
}

// Start triggers a background discovery run
func (c *Client) Start(count int) error {
	body, err := json.Marshal(types.DiscoverRequest{Count: count})
	if err != nil {
		return err
	}
	resp, err := c.client.Post(c.baseURL+"/api/discover", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to start discovery: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(msg))
	}

	return nil
}
