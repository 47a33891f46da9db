// Package remote is the client for the whisper session service: one
// activation call, repeated trigger calls, a best-effort deactivation, and a
// lead-status poll. Transport details stay here; callers see classified
// errors and enumerated outcomes.
package remote

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	callTimeout       = 10 * time.Second
	deactivateTimeout = 3 * time.Second
)

// Client makes the four session calls against one base endpoint.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// New creates a client for the given deployment target base URL, e.g.
// "https://whisper.ggkserver.com". The token is sent as the raw
// Authorization header on every call.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: callTimeout},
	}
}

// Activate requests the Team-Lead role. On success the server's status text
// is returned; failures are classified into *Error kinds for user display.
func (c *Client) Activate(ctx context.Context) (string, error) {
	resp, err := c.post(ctx, "/activate")
	if err != nil {
		return "", &Error{Kind: KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	text := strings.TrimSpace(string(body))
	if resp.StatusCode >= 300 {
		if text == "" {
			text = resp.Status
		}
		return "", classifyStatus(resp.StatusCode, text)
	}
	return text, nil
}

// Trigger toggles session membership and classifies the server's free-text
// answer into an Outcome.
func (c *Client) Trigger(ctx context.Context) (Outcome, error) {
	resp, err := c.post(ctx, "/trigger")
	if err != nil {
		return OutcomeNone, &Error{Kind: KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return OutcomeFromText(string(body)), nil
}

// Deactivate tells the server the client is going away. Best effort: a tight
// timeout, no retry, errors logged and swallowed.
func (c *Client) Deactivate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, deactivateTimeout)
	defer cancel()
	resp, err := c.post(ctx, "/deactivate")
	if err != nil {
		log.Printf("deactivate signal not delivered: %v", err)
		return err
	}
	resp.Body.Close()
	return nil
}

// Status polls whether this client still holds the lead. Fail closed: any
// transport or parse problem reads as "no longer lead".
func (c *Client) Status(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return false
	}
	c.setHeaders(req)
	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return false
	}
	var out struct {
		IsLead bool `json:"is_lead"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false
	}
	return out.IsLead
}

func (c *Client) post(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	return c.client.Do(req)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", c.token)
	req.Header.Set("Content-Type", "application/json")
}
