package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const gmailAPI = "https://gmail.googleapis.com/gmail/v1/users/me"

// GmailRequest is the closed set of Gmail capabilities.
type GmailRequest interface{ isGmailRequest() }

type ListInbox struct{}

type SearchEmails struct {
	Query string
}

func (ListInbox) isGmailRequest()    {}
func (SearchEmails) isGmailRequest() {}

type GmailSource interface {
	Invoke(ctx context.Context, req GmailRequest) (string, error)
}

type GmailClient struct {
	token  string
	client *http.Client
}

var _ GmailSource = &GmailClient{}

func NewGmailClient(token string) *GmailClient {
	return &GmailClient{
		token:  token,
		client: newHTTPClient(),
	}
}

func (c *GmailClient) Invoke(ctx context.Context, req GmailRequest) (string, error) {
	if c.token == "" {
		return "Gmail not configured. Please connect from the UI.", nil
	}
	switch r := req.(type) {
	case ListInbox:
		return c.listMessages(ctx, url.Values{"maxResults": {"10"}, "labelIds": {"INBOX"}})
	case SearchEmails:
		if r.Query == "" {
			return "Provide a search query.", nil
		}
		return c.listMessages(ctx, url.Values{"maxResults": {"10"}, "q": {r.Query}})
	default:
		return "", fmt.Errorf("unsupported gmail request %T", req)
	}
}

func (c *GmailClient) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + c.token,
	}
}

type gmailMessageList struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

type gmailMessage struct {
	Payload struct {
		Headers []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"headers"`
	} `json:"payload"`
}

func (c *GmailClient) listMessages(ctx context.Context, params url.Values) (string, error) {
	var list gmailMessageList
	if err := getJSON(ctx, c.client, gmailAPI+"/messages", c.headers(), params, &list); err != nil {
		return fmt.Sprintf("Gmail API error: %v", err), nil
	}

	refs := list.Messages
	if len(refs) > 5 {
		refs = refs[:5]
	}

	var results []string
	for _, ref := range refs {
		var msg gmailMessage
		meta := url.Values{
			"format":          {"metadata"},
			"metadataHeaders": {"From", "Subject", "Date"},
		}
		if err := getJSON(ctx, c.client, gmailAPI+"/messages/"+ref.ID, c.headers(), meta, &msg); err != nil {
			continue
		}
		headers := map[string]string{}
		for _, h := range msg.Payload.Headers {
			headers[h.Name] = h.Value
		}
		from := headers["From"]
		if from == "" {
			from = "?"
		}
		subject := headers["Subject"]
		if subject == "" {
			subject = "No subject"
		}
		results = append(results, fmt.Sprintf("• From: %s | Subject: %s | %s", from, subject, headers["Date"]))
	}
	if len(results) == 0 {
		return "Inbox is empty.", nil
	}
	return strings.Join(results, "\n"), nil
}
