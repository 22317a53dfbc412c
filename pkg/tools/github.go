package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const githubAPI = "https://api.github.com"

// GitHubRequest is the closed set of GitHub capabilities.
type GitHubRequest interface{ isGitHubRequest() }

type ListRepos struct {
	Org string // empty = authenticated user
}

type ListIssues struct {
	Repo string // "owner/repo"
}

type ListPulls struct {
	Repo string
}

type ListCommits struct {
	Repo string
}

func (ListRepos) isGitHubRequest()   {}
func (ListIssues) isGitHubRequest()  {}
func (ListPulls) isGitHubRequest()   {}
func (ListCommits) isGitHubRequest() {}

// GitHubSource is what the agents depend on.
type GitHubSource interface {
	Invoke(ctx context.Context, req GitHubRequest) (string, error)
}

type GitHubClient struct {
	token  string
	client *http.Client
}

var _ GitHubSource = &GitHubClient{}

func NewGitHubClient(token string) *GitHubClient {
	return &GitHubClient{
		token:  token,
		client: newHTTPClient(),
	}
}

func (c *GitHubClient) Invoke(ctx context.Context, req GitHubRequest) (string, error) {
	if c.token == "" {
		return "GitHub not configured. Please connect from the UI.", nil
	}
	switch r := req.(type) {
	case ListRepos:
		return c.listRepos(ctx, r.Org)
	case ListIssues:
		return c.listIssues(ctx, r.Repo)
	case ListPulls:
		return c.listPulls(ctx, r.Repo)
	case ListCommits:
		return c.listCommits(ctx, r.Repo)
	default:
		return "", fmt.Errorf("unsupported github request %T", req)
	}
}

func (c *GitHubClient) headers() map[string]string {
	return map[string]string{
		"Accept":        "application/vnd.github+json",
		"Authorization": "Bearer " + c.token,
	}
}

func (c *GitHubClient) get(ctx context.Context, path string, params url.Values, out any) error {
	return getJSON(ctx, c.client, githubAPI+path, c.headers(), params, out)
}

type githubRepo struct {
	FullName    string `json:"full_name"`
	Stars       int    `json:"stargazers_count"`
	Language    string `json:"language"`
	Description string `json:"description"`
}

func (c *GitHubClient) listRepos(ctx context.Context, org string) (string, error) {
	path := "/user/repos"
	if org != "" {
		path = "/orgs/" + org + "/repos"
	}
	var repos []githubRepo
	if err := c.get(ctx, path, url.Values{"sort": {"updated"}, "per_page": {"10"}}, &repos); err != nil {
		return fmt.Sprintf("GitHub API error: %v", err), nil
	}
	var lines []string
	for _, r := range repos {
		lang := r.Language
		if lang == "" {
			lang = "N/A"
		}
		desc := r.Description
		if desc == "" {
			desc = "No description"
		}
		lines = append(lines, fmt.Sprintf("• %s ⭐%d [%s] – %s", r.FullName, r.Stars, lang, desc))
	}
	if len(lines) == 0 {
		return "No repositories found.", nil
	}
	return strings.Join(lines, "\n"), nil
}

type githubIssue struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	User   struct {
		Login string `json:"login"`
	} `json:"user"`
	Labels []struct {
		Name string `json:"name"`
	} `json:"labels"`
	PullRequest *struct{} `json:"pull_request,omitempty"`
}

func (c *GitHubClient) listIssues(ctx context.Context, repo string) (string, error) {
	if repo == "" {
		return "Please provide a repo in 'owner/repo' format.", nil
	}
	var issues []githubIssue
	params := url.Values{"state": {"open"}, "per_page": {"15"}, "sort": {"updated"}}
	if err := c.get(ctx, "/repos/"+repo+"/issues", params, &issues); err != nil {
		return fmt.Sprintf("GitHub API error: %v", err), nil
	}
	var lines []string
	for _, i := range issues {
		if i.PullRequest != nil {
			continue // skip PRs
		}
		var labels []string
		for _, l := range i.Labels {
			labels = append(labels, l.Name)
		}
		labelText := strings.Join(labels, ", ")
		if labelText == "" {
			labelText = "no labels"
		}
		lines = append(lines, fmt.Sprintf("• #%d %s [%s] by %s", i.Number, i.Title, labelText, i.User.Login))
	}
	if len(lines) == 0 {
		return "No open issues.", nil
	}
	return strings.Join(lines, "\n"), nil
}

type githubPull struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Draft  bool   `json:"draft"`
	User   struct {
		Login string `json:"login"`
	} `json:"user"`
	Base struct {
		Ref string `json:"ref"`
	} `json:"base"`
}

func (c *GitHubClient) listPulls(ctx context.Context, repo string) (string, error) {
	if repo == "" {
		return "Please provide a repo in 'owner/repo' format.", nil
	}
	var prs []githubPull
	params := url.Values{"state": {"open"}, "per_page": {"10"}, "sort": {"updated"}}
	if err := c.get(ctx, "/repos/"+repo+"/pulls", params, &prs); err != nil {
		return fmt.Sprintf("GitHub API error: %v", err), nil
	}
	var lines []string
	for _, pr := range prs {
		ready := "✅"
		if pr.Draft {
			ready = "📝 Draft"
		}
		lines = append(lines, fmt.Sprintf("• PR #%d %s by %s → %s %s", pr.Number, pr.Title, pr.User.Login, pr.Base.Ref, ready))
	}
	if len(lines) == 0 {
		return "No open pull requests.", nil
	}
	return strings.Join(lines, "\n"), nil
}

type githubCommit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Name string `json:"name"`
		} `json:"author"`
	} `json:"commit"`
}

func (c *GitHubClient) listCommits(ctx context.Context, repo string) (string, error) {
	if repo == "" {
		return "Please provide a repo in 'owner/repo' format.", nil
	}
	var commits []githubCommit
	if err := c.get(ctx, "/repos/"+repo+"/commits", url.Values{"per_page": {"10"}}, &commits); err != nil {
		return fmt.Sprintf("GitHub API error: %v", err), nil
	}
	var lines []string
	for _, cm := range commits {
		sha := cm.SHA
		if len(sha) > 7 {
			sha = sha[:7]
		}
		msg := strings.SplitN(cm.Commit.Message, "\n", 2)[0]
		if len(msg) > 80 {
			msg = msg[:80]
		}
		lines = append(lines, fmt.Sprintf("• %s %s — %s", sha, msg, cm.Commit.Author.Name))
	}
	if len(lines) == 0 {
		return "No commits found.", nil
	}
	return strings.Join(lines, "\n"), nil
}
