// Package tools wraps the external platform APIs (GitHub, Slack, Gmail,
// Calendar, Docs) behind narrow clients. Each client accepts a closed set
// of typed requests resolved by type switch, and stringifies API-level
// failures into its reply so callers can treat every answer as plain text.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Registry bundles every platform client for injection into the agents.
type Registry struct {
	GitHub   GitHubSource
	Slack    SlackSource
	Gmail    GmailSource
	Calendar CalendarSource
	Docs     DocsSource
}

func NewRegistry(githubToken, slackToken, googleToken string) *Registry {
	return &Registry{
		GitHub:   NewGitHubClient(githubToken),
		Slack:    NewSlackClient(slackToken),
		Gmail:    NewGmailClient(googleToken),
		Calendar: NewCalendarClient(googleToken),
		Docs:     NewDocsClient(googleToken),
	}
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 15 * time.Second,
	}
}

// getJSON performs a GET and decodes the JSON body into out.
func getJSON(ctx context.Context, client *http.Client, rawURL string, headers map[string]string, params url.Values, out any) error {
	endpoint := rawURL
	if len(params) > 0 {
		endpoint = rawURL + "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(bodyBytes))
	}
	return json.Unmarshal(bodyBytes, out)
}
