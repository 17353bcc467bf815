// Package notion is a minimal client for the workspace-notes relay: one
// lead submission becomes one page in a Notion database.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ares-site-service/internal/domain"
)

const (
	defaultBaseURL = "https://api.notion.com"
	apiVersion     = "2022-06-28"
)

// Client creates one remote page per lead. Credentials come exclusively
// from runtime configuration; there is no compiled-in fallback.
type Client struct {
	apiKey     string
	databaseID string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a relay client. baseURL is overridable for tests; an
// empty value selects the public API.
func NewClient(apiKey, databaseID, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		databaseID: databaseID,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Configured reports whether both credentials are present.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.databaseID != ""
}

type pageRequest struct {
	Parent     parentRef      `json:"parent"`
	Properties map[string]any `json:"properties"`
}

type parentRef struct {
	DatabaseID string `json:"database_id"`
}

type pageResponse struct {
	ID string `json:"id"`
}

// CreateLead creates one page for the lead and returns the page id.
// Optional fields are omitted entirely when empty; the API rejects empty
// strings for typed properties such as phone_number.
func (c *Client) CreateLead(ctx context.Context, lead domain.Lead) (string, error) {
	if !c.Configured() {
		return "", domain.ErrRelayNotConfigured
	}

	properties := map[string]any{
		"Name": map[string]any{
			"title": []any{map[string]any{"text": map[string]any{"content": lead.Name}}},
		},
		"Email": map[string]any{"email": lead.Email},
	}
	addRichText(properties, "Company", lead.Company)
	addRichText(properties, "Message", lead.Message)
	addRichText(properties, "Service", lead.Service)
	addRichText(properties, "PreferredTime", lead.PreferredTime)
	addRichText(properties, "Industry", lead.Industry)
	if lead.Date != "" {
		properties["Date"] = map[string]any{"date": map[string]any{"start": lead.Date}}
	}
	if lead.Phone != "" {
		properties["Phone"] = map[string]any{"phone_number": lead.Phone}
	}

	body, err := json.Marshal(pageRequest{
		Parent:     parentRef{DatabaseID: c.databaseID},
		Properties: properties,
	})
	if err != nil {
		return "", fmt.Errorf("marshal page request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/pages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build page request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("create page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("create page: status %d: %s", resp.StatusCode, detail)
	}

	var page pageResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return "", fmt.Errorf("decode page response: %w", err)
	}
	return page.ID, nil
}

func addRichText(properties map[string]any, key, value string) {
	if value == "" {
		return
	}
	properties[key] = map[string]any{
		"rich_text": []any{map[string]any{"text": map[string]any{"content": value}}},
	}
}
