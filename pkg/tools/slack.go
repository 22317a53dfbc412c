package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const slackAPI = "https://slack.com/api"

// SlackRequest is the closed set of Slack capabilities.
type SlackRequest interface{ isSlackRequest() }

type ListChannels struct{}

type ReadMessages struct {
	Channel string // "#name" or channel ID
}

type PostMessage struct {
	Channel string
	Text    string
}

func (ListChannels) isSlackRequest() {}
func (ReadMessages) isSlackRequest() {}
func (PostMessage) isSlackRequest()  {}

type SlackSource interface {
	Invoke(ctx context.Context, req SlackRequest) (string, error)
}

type SlackClient struct {
	token  string
	client *http.Client
}

var _ SlackSource = &SlackClient{}

func NewSlackClient(token string) *SlackClient {
	return &SlackClient{
		token:  token,
		client: newHTTPClient(),
	}
}

func (c *SlackClient) Invoke(ctx context.Context, req SlackRequest) (string, error) {
	if c.token == "" {
		return "Slack not configured. Please connect from the UI.", nil
	}
	switch r := req.(type) {
	case ListChannels:
		return c.listChannels(ctx)
	case ReadMessages:
		return c.readMessages(ctx, r.Channel)
	case PostMessage:
		return c.postMessage(ctx, r.Channel, r.Text)
	default:
		return "", fmt.Errorf("unsupported slack request %T", req)
	}
}

func (c *SlackClient) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + c.token,
	}
}

type slackChannelList struct {
	OK       bool   `json:"ok"`
	Error    string `json:"error"`
	Channels []struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		IsPrivate  bool   `json:"is_private"`
		NumMembers int    `json:"num_members"`
	} `json:"channels"`
}

func (c *SlackClient) listChannels(ctx context.Context) (string, error) {
	var data slackChannelList
	params := url.Values{"types": {"public_channel,private_channel"}, "limit": {"20"}}
	if err := getJSON(ctx, c.client, slackAPI+"/conversations.list", c.headers(), params, &data); err != nil {
		return fmt.Sprintf("Slack API error: %v", err), nil
	}
	if !data.OK {
		return fmt.Sprintf("Slack error: %s", orUnknown(data.Error)), nil
	}
	var lines []string
	for _, ch := range data.Channels {
		vis := "🌐"
		if ch.IsPrivate {
			vis = "🔒"
		}
		lines = append(lines, fmt.Sprintf("• #%s (%d members) %s", ch.Name, ch.NumMembers, vis))
	}
	if len(lines) == 0 {
		return "No channels found.", nil
	}
	return strings.Join(lines, "\n"), nil
}

type slackHistory struct {
	OK       bool   `json:"ok"`
	Error    string `json:"error"`
	Messages []struct {
		User string `json:"user"`
		Text string `json:"text"`
	} `json:"messages"`
}

func (c *SlackClient) readMessages(ctx context.Context, channelRef string) (string, error) {
	channelID := strings.TrimPrefix(strings.TrimSpace(channelRef), "#")

	// Resolve channel name → ID if needed
	if !strings.HasPrefix(channelID, "C") {
		resolved, err := c.resolveChannel(ctx, channelID)
		if err != nil || resolved == "" {
			return fmt.Sprintf("Could not find channel '%s'.", channelRef), nil
		}
		channelID = resolved
	}

	var data slackHistory
	params := url.Values{"channel": {channelID}, "limit": {"15"}}
	if err := getJSON(ctx, c.client, slackAPI+"/conversations.history", c.headers(), params, &data); err != nil {
		return fmt.Sprintf("Slack API error: %v", err), nil
	}
	if !data.OK {
		return fmt.Sprintf("Slack error: %s", orUnknown(data.Error)), nil
	}
	var lines []string
	for _, msg := range data.Messages {
		user := msg.User
		if user == "" {
			user = "bot"
		}
		text := msg.Text
		if len(text) > 120 {
			text = text[:120]
		}
		lines = append(lines, fmt.Sprintf("• [%s] %s", user, text))
	}
	if len(lines) == 0 {
		return "No messages.", nil
	}
	return strings.Join(lines, "\n"), nil
}

func (c *SlackClient) postMessage(ctx context.Context, channelRef, text string) (string, error) {
	channelID := strings.TrimPrefix(strings.TrimSpace(channelRef), "#")
	if !strings.HasPrefix(channelID, "C") {
		resolved, err := c.resolveChannel(ctx, channelID)
		if err != nil || resolved == "" {
			return fmt.Sprintf("Could not find channel '%s'.", channelRef), nil
		}
		channelID = resolved
	}

	var data struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	params := url.Values{"channel": {channelID}, "text": {text}}
	if err := getJSON(ctx, c.client, slackAPI+"/chat.postMessage", c.headers(), params, &data); err != nil {
		return fmt.Sprintf("Slack API error: %v", err), nil
	}
	if !data.OK {
		return fmt.Sprintf("Slack error: %s", orUnknown(data.Error)), nil
	}
	return fmt.Sprintf("✅ Message posted to <#%s>.", channelID), nil
}

func (c *SlackClient) resolveChannel(ctx context.Context, name string) (string, error) {
	var data slackChannelList
	params := url.Values{"types": {"public_channel,private_channel"}, "limit": {"200"}}
	if err := getJSON(ctx, c.client, slackAPI+"/conversations.list", c.headers(), params, &data); err != nil {
		return "", err
	}
	for _, ch := range data.Channels {
		if ch.Name == name {
			return ch.ID, nil
		}
	}
	return "", nil
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
