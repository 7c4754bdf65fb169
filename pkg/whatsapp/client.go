// Package whatsapp is a read-side client for the WAHA HTTP API. It lists the
// groups a session participates in and pages chat history out of them.
package whatsapp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"aqarscan/pkg/whatsapp/types"
)

const sessionPollInterval = 2 * time.Second

type client struct {
	baseURL     string
	apiKey      string
	sessionName string
	httpClient  *http.Client
}

// NewClient creates a WAHA client for one named session.
func NewClient(config types.ClientConfig) types.WAClient {
	return &client{
		baseURL:     config.BaseURL,
		apiKey:      config.APIKey,
		sessionName: config.SessionName,
		httpClient:  &http.Client{Timeout: config.Timeout},
	}
}

func (c *client) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request to %s failed with status %d", endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func (c *client) GetGroups(ctx context.Context) ([]types.Group, error) {
	var groups []types.Group
	endpoint := fmt.Sprintf("/api/%s/groups", url.PathEscape(c.sessionName))
	if err := c.get(ctx, endpoint, &groups); err != nil {
		return nil, fmt.Errorf("failed to get groups: %w", err)
	}
	return groups, nil
}

func (c *client) GetChatMessages(ctx context.Context, chatID string, limit int) ([]types.ChatMessage, error) {
	var messages []types.ChatMessage
	endpoint := fmt.Sprintf("/api/%s/chats/%s/messages?limit=%d",
		url.PathEscape(c.sessionName), url.PathEscape(chatID), limit)
	if err := c.get(ctx, endpoint, &messages); err != nil {
		return nil, fmt.Errorf("failed to get messages for chat %s: %w", chatID, err)
	}
	return messages, nil
}

func (c *client) GetSessionStatus(ctx context.Context) (*types.Session, error) {
	var session types.Session
	endpoint := fmt.Sprintf("/api/sessions/%s", url.PathEscape(c.sessionName))
	if err := c.get(ctx, endpoint, &session); err != nil {
		return nil, fmt.Errorf("failed to get session status: %w", err)
	}
	return &session, nil
}

// WaitForSessionReady polls the session until it reports WORKING or the
// wait budget runs out.
func (c *client) WaitForSessionReady(ctx context.Context, maxWaitTime time.Duration) error {
	deadline := time.Now().Add(maxWaitTime)
	ticker := time.NewTicker(sessionPollInterval)
	defer ticker.Stop()

	for {
		session, err := c.GetSessionStatus(ctx)
		if err == nil && session.IsWorking() {
			return nil
		}
		if err == nil && session.Status == types.SessionStatusFailed {
			return fmt.Errorf("session %s failed: %s", c.sessionName, session.Error)
		}

		if time.Now().After(deadline) {
			if err != nil {
				return fmt.Errorf("session %s not ready after %s: %w", c.sessionName, maxWaitTime, err)
			}
			return fmt.Errorf("session %s not ready after %s, status: %s", c.sessionName, maxWaitTime, session.Status)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
