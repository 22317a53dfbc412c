package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const calendarAPI = "https://www.googleapis.com/calendar/v3/calendars"

// CalendarRequest is the closed set of Calendar capabilities.
type CalendarRequest interface{ isCalendarRequest() }

type ListEvents struct{}

type CreateEvent struct {
	Title       string
	Start       string // RFC3339-style local datetime
	End         string
	Description string
}

type DeleteEvent struct {
	EventID string
}

func (ListEvents) isCalendarRequest()  {}
func (CreateEvent) isCalendarRequest() {}
func (DeleteEvent) isCalendarRequest() {}

type CalendarSource interface {
	Invoke(ctx context.Context, req CalendarRequest) (string, error)
}

type CalendarClient struct {
	token      string
	calendarID string
	client     *http.Client
}

var _ CalendarSource = &CalendarClient{}

func NewCalendarClient(token string) *CalendarClient {
	return &CalendarClient{
		token:      token,
		calendarID: "primary",
		client:     newHTTPClient(),
	}
}

func (c *CalendarClient) Invoke(ctx context.Context, req CalendarRequest) (string, error) {
	if c.token == "" {
		return "Google Calendar not configured. Please connect from the UI.", nil
	}
	switch r := req.(type) {
	case ListEvents:
		return c.listEvents(ctx)
	case CreateEvent:
		return c.createEvent(ctx, r)
	case DeleteEvent:
		return c.deleteEvent(ctx, r.EventID)
	default:
		return "", fmt.Errorf("unsupported calendar request %T", req)
	}
}

func (c *CalendarClient) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + c.token,
	}
}

type calendarEventList struct {
	Items []struct {
		Summary string `json:"summary"`
		Start   struct {
			DateTime string `json:"dateTime"`
			Date     string `json:"date"`
		} `json:"start"`
	} `json:"items"`
}

func (c *CalendarClient) listEvents(ctx context.Context) (string, error) {
	var data calendarEventList
	params := url.Values{
		"timeMin":      {time.Now().UTC().Format(time.RFC3339)},
		"maxResults":   {"10"},
		"singleEvents": {"true"},
		"orderBy":      {"startTime"},
	}
	if err := getJSON(ctx, c.client, calendarAPI+"/"+c.calendarID+"/events", c.headers(), params, &data); err != nil {
		return fmt.Sprintf("Calendar API error: %v", err), nil
	}
	var lines []string
	for _, ev := range data.Items {
		start := ev.Start.DateTime
		if start == "" {
			start = ev.Start.Date
		}
		if start == "" {
			start = "?"
		}
		title := ev.Summary
		if title == "" {
			title = "No title"
		}
		lines = append(lines, fmt.Sprintf("• %s @ %s", title, start))
	}
	if len(lines) == 0 {
		return "No upcoming events.", nil
	}
	return strings.Join(lines, "\n"), nil
}

func (c *CalendarClient) createEvent(ctx context.Context, ev CreateEvent) (string, error) {
	if ev.Title == "" || ev.Start == "" || ev.End == "" {
		return "Format: 'title|2026-02-20T10:00:00|2026-02-20T11:00:00|description'", nil
	}

	body := map[string]any{
		"summary":     ev.Title,
		"description": ev.Description,
		"start":       map[string]string{"dateTime": ev.Start, "timeZone": "Asia/Kolkata"},
		"end":         map[string]string{"dateTime": ev.End, "timeZone": "Asia/Kolkata"},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Sprintf("Calendar API error: %v", err), nil
	}

	req, err := http.NewRequestWithContext(ctx, "POST", calendarAPI+"/"+c.calendarID+"/events", bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Sprintf("Calendar API error: %v", err), nil
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Sprintf("Calendar API error: %v", err), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		return fmt.Sprintf("✅ Event '%s' created.", ev.Title), nil
	}
	bodyBytes, _ := io.ReadAll(resp.Body)
	return fmt.Sprintf("Failed: %s", string(bodyBytes)), nil
}

func (c *CalendarClient) deleteEvent(ctx context.Context, eventID string) (string, error) {
	if eventID == "" {
		return "Provide an event ID.", nil
	}
	req, err := http.NewRequestWithContext(ctx, "DELETE", calendarAPI+"/"+c.calendarID+"/events/"+eventID, nil)
	if err != nil {
		return fmt.Sprintf("Calendar API error: %v", err), nil
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Sprintf("Calendar API error: %v", err), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusOK {
		return fmt.Sprintf("🗑️ Event %s deleted.", eventID), nil
	}
	return fmt.Sprintf("Failed to delete event %s (status %d).", eventID, resp.StatusCode), nil
}
