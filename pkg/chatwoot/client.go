package chatwoot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ncastellanos/tiendita-backend/pkg/config"
	"github.com/ncastellanos/tiendita-backend/pkg/logger"
)

const defaultTimeout = 3 * time.Second

// Client talks to the Chatwoot conversation-labels API. An unconfigured
// client is valid and turns every call into a no-op, so callers never need a
// nil check or an environment check of their own.
type Client struct {
	baseURL    string
	accountID  string
	apiToken   string
	httpClient *http.Client
	configured bool
}

// Tagger is the surface the cart ledger consumes.
type Tagger interface {
	TagConversation(ctx context.Context, conversationID string, labels []string) error
}

// NewClient builds a Chatwoot client from configuration. Missing credentials
// are not an error: the integration is optional by design.
func NewClient(ctx context.Context, cfg config.ChatwootConfig, logg *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		accountID:  strings.TrimSpace(cfg.AccountID),
		apiToken:   strings.TrimSpace(cfg.APIToken),
		httpClient: &http.Client{Timeout: timeout},
		configured: cfg.Configured(),
	}

	if logg != nil {
		if client.configured {
			logg.Info(ctx, "chatwoot client initialized")
		} else {
			logg.Warn(ctx, "chatwoot not configured, conversation tagging disabled")
		}
	}

	return client
}

// Configured reports whether the client can reach Chatwoot at all.
func (c *Client) Configured() bool {
	return c != nil && c.configured
}

type labelsPayload struct {
	Payload []string `json:"payload,omitempty"`
	Labels  []string `json:"labels,omitempty"`
}

// TagConversation merges the provided labels into the conversation's current
// label set: fetch, union, replace. Chatwoot's labels endpoint replaces the
// full set on POST, so the read is required to avoid dropping labels other
// integrations applied.
func (c *Client) TagConversation(ctx context.Context, conversationID string, labels []string) error {
	if !c.Configured() {
		return nil
	}
	if strings.TrimSpace(conversationID) == "" {
		return fmt.Errorf("conversation id is required")
	}

	url := fmt.Sprintf("%s/api/v1/accounts/%s/conversations/%s/labels",
		c.baseURL, c.accountID, conversationID)

	current, err := c.fetchLabels(ctx, url)
	if err != nil {
		return err
	}

	merged := unionLabels(current, labels)
	return c.replaceLabels(ctx, url, merged)
}

func (c *Client) fetchLabels(ctx context.Context, url string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build labels request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch labels: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch labels: unexpected status %d", resp.StatusCode)
	}

	var payload labelsPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode labels response: %w", err)
	}
	return payload.Payload, nil
}

func (c *Client) replaceLabels(ctx context.Context, url string, labels []string) error {
	body, err := json.Marshal(labelsPayload{Labels: labels})
	if err != nil {
		return fmt.Errorf("encode labels request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build labels request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("replace labels: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("replace labels: unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api_access_token", c.apiToken)
}

func unionLabels(current, added []string) []string {
	seen := make(map[string]struct{}, len(current)+len(added))
	merged := make([]string, 0, len(current)+len(added))
	for _, label := range append(append([]string{}, current...), added...) {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		merged = append(merged, label)
	}
	return merged
}
