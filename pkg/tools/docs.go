package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const driveAPI = "https://www.googleapis.com/drive/v3/files"

// DocsRequest is the closed set of Google Docs capabilities.
type DocsRequest interface{ isDocsRequest() }

type ListDocs struct{}

type SearchDocs struct {
	Query string
}

func (ListDocs) isDocsRequest()   {}
func (SearchDocs) isDocsRequest() {}

type DocsSource interface {
	Invoke(ctx context.Context, req DocsRequest) (string, error)
}

type DocsClient struct {
	token  string
	client *http.Client
}

var _ DocsSource = &DocsClient{}

func NewDocsClient(token string) *DocsClient {
	return &DocsClient{
		token:  token,
		client: newHTTPClient(),
	}
}

func (c *DocsClient) Invoke(ctx context.Context, req DocsRequest) (string, error) {
	if c.token == "" {
		return "Google Docs not configured. Please connect from the UI.", nil
	}
	switch r := req.(type) {
	case ListDocs:
		return c.listDocs(ctx, "")
	case SearchDocs:
		if r.Query == "" {
			return "Provide a search query.", nil
		}
		return c.listDocs(ctx, r.Query)
	default:
		return "", fmt.Errorf("unsupported docs request %T", req)
	}
}

type driveFileList struct {
	Files []struct {
		Name         string `json:"name"`
		ModifiedTime string `json:"modifiedTime"`
	} `json:"files"`
}

func (c *DocsClient) listDocs(ctx context.Context, query string) (string, error) {
	q := "mimeType='application/vnd.google-apps.document'"
	if query != "" {
		q += fmt.Sprintf(" and name contains '%s'", query)
	}
	params := url.Values{
		"q":        {q},
		"pageSize": {"10"},
		"orderBy":  {"modifiedTime desc"},
		"fields":   {"files(id,name,modifiedTime)"},
	}
	headers := map[string]string{"Authorization": "Bearer " + c.token}

	var data driveFileList
	if err := getJSON(ctx, c.client, driveAPI, headers, params, &data); err != nil {
		return fmt.Sprintf("Drive API error: %v", err), nil
	}
	var lines []string
	for _, f := range data.Files {
		modified := f.ModifiedTime
		if modified == "" {
			modified = "?"
		}
		lines = append(lines, fmt.Sprintf("• %s (modified: %s)", f.Name, modified))
	}
	if len(lines) == 0 {
		if query != "" {
			return fmt.Sprintf("No docs matching '%s'.", query), nil
		}
		return "No documents found.", nil
	}
	return strings.Join(lines, "\n"), nil
}
