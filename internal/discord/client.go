// Package discord is a minimal REST client for the Discord endpoints the
// bot needs: posting channel messages, editing interaction follow-ups and
// registering slash commands.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://discord.com/api/v10"

// Client talks to the Discord REST API with a global rate limiter and a
// bounded retry policy for transient failures.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	token   string
	baseURL string
}

// New creates a Discord client authenticated with the given bot token
func New(botToken string) *Client {
	return &Client{
		http: &http.Client{Timeout: 15 * time.Second},
		// Discord's global limit is 50 requests/s per bot; staying well
		// under it avoids tripping per-route buckets during fan-out.
		limiter: rate.NewLimiter(rate.Limit(4), 4),
		token:   botToken,
		baseURL: defaultBaseURL,
	}
}

// CreateMessage posts a message to a channel or thread
func (c *Client) CreateMessage(ctx context.Context, channelID string, msg Message) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/channels/%s/messages", channelID), msg)
}

// EditOriginalResponse edits the deferred response of an interaction
func (c *Client) EditOriginalResponse(ctx context.Context, appID, interactionToken string, msg Message) error {
	return c.do(ctx, http.MethodPatch,
		fmt.Sprintf("/webhooks/%s/%s/messages/@original", appID, interactionToken), msg)
}

// BulkOverwriteCommands replaces the application's global slash commands
func (c *Client) BulkOverwriteCommands(ctx context.Context, appID string, commands []Command) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/applications/%s/commands", appID), commands)
}

// statusError carries an HTTP status for retry classification.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("discord returned status %d: %s", e.status, e.body)
}

func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func (c *Client) do(ctx context.Context, method, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal discord payload: %w", err)
	}

	return retry.Do(
		func() error {
			if err := c.limiter.Wait(ctx); err != nil {
				return retry.Unrecoverable(err)
			}

			req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bot "+c.token)

			resp, err := c.http.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return nil
			}

			respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			herr := &statusError{status: resp.StatusCode, body: string(respBody)}
			if !retryableStatus(resp.StatusCode) {
				return retry.Unrecoverable(herr)
			}
			return herr
		},
		retry.Attempts(4),
		retry.Delay(time.Second),
		retry.MaxDelay(20*time.Second),
		retry.MaxJitter(2*time.Second),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logrus.Warnf("Retrying discord %s %s (attempt %d): %v", method, path, n+1, err)
		}),
	)
}
