// FILE: internal/service/integration_service.go
package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"velocity-ai-be/internal/config"
	"velocity-ai-be/internal/dto"
	"velocity-ai-be/internal/entity"
	"velocity-ai-be/internal/repository/memory"
	"velocity-ai-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// supportedIntegrations is the fixed catalog shown on the settings
// page, connected or not.
var supportedIntegrations = []string{"gmail", "calendar", "slack", "notion", "github", "jira"}

// googleServiceScopes maps a service name to the Google scopes it
// needs. Connecting the umbrella "google" service requests all of them.
var googleServiceScopes = map[string][]string{
	"gmail": {
		"https://www.googleapis.com/auth/gmail.send",
		"https://www.googleapis.com/auth/gmail.readonly",
		"https://www.googleapis.com/auth/gmail.modify",
	},
	"calendar": {
		"https://www.googleapis.com/auth/calendar",
		"https://www.googleapis.com/auth/calendar.events",
	},
	"docs": {
		"https://www.googleapis.com/auth/documents",
	},
	"sheets": {
		"https://www.googleapis.com/auth/spreadsheets",
	},
	"drive": {
		"https://www.googleapis.com/auth/drive",
	},
}

type IIntegrationService interface {
	GetStatus(ctx context.Context, userId uuid.UUID) ([]dto.IntegrationStatusResponse, error)
	Connect(ctx context.Context, userId uuid.UUID, service string) (*dto.ConnectIntegrationResponse, error)
	// HandleCallback finishes the OAuth flow and returns the frontend
	// URL to redirect to, success or not.
	HandleCallback(ctx context.Context, code, state, oauthError string) string
	Disconnect(ctx context.Context, userId uuid.UUID, provider string) error
}

type integrationService struct {
	uowFactory  unitofwork.RepositoryFactory
	stateRepo   *memory.OAuthStateRepository
	googleConf  *oauth2.Config
	frontendURL string
}

func NewIntegrationService(
	uowFactory unitofwork.RepositoryFactory,
	stateRepo *memory.OAuthStateRepository,
	cfg *config.Config,
) IIntegrationService {
	conf := &oauth2.Config{
		ClientID:     cfg.OAuth.GoogleClientID,
		ClientSecret: cfg.OAuth.GoogleClientSecret,
		RedirectURL:  cfg.App.BaseURL + "/api/v1/integrations/google/callback",
		Endpoint:     google.Endpoint,
	}

	return &integrationService{
		uowFactory:  uowFactory,
		stateRepo:   stateRepo,
		googleConf:  conf,
		frontendURL: cfg.App.ClientURL,
	}
}

func (is *integrationService) GetStatus(ctx context.Context, userId uuid.UUID) ([]dto.IntegrationStatusResponse, error) {
	uow := is.uowFactory.NewUnitOfWork(ctx)

	connections, err := uow.IntegrationRepository().FindAllByUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	byProvider := make(map[string]*entity.IntegrationConnection, len(connections))
	for _, c := range connections {
		byProvider[c.Provider] = c
	}

	result := make([]dto.IntegrationStatusResponse, 0, len(supportedIntegrations))
	for _, provider := range supportedIntegrations {
		status := dto.IntegrationStatusResponse{
			Provider: provider,
			Status:   "disconnected",
		}
		if c, ok := byProvider[provider]; ok && c.Status == entity.IntegrationStatusConnected {
			status.Status = string(c.Status)
			connectedAt := c.CreatedAt
			status.ConnectedAt = &connectedAt
			status.Scopes = c.Scopes
		}
		result = append(result, status)
	}
	return result, nil
}

func (is *integrationService) Connect(ctx context.Context, userId uuid.UUID, service string) (*dto.ConnectIntegrationResponse, error) {
	if is.googleConf.ClientID == "" || is.googleConf.ClientSecret == "" {
		return nil, errors.New("google OAuth not configured. Set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET")
	}

	if service == "" {
		service = "google"
	}
	scopes := googleScopesFor(service)
	if len(scopes) == 0 {
		return nil, fmt.Errorf("unsupported service %q", service)
	}

	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	state := base64.URLEncoding.EncodeToString(b)

	is.stateRepo.Save(state, &memory.OAuthState{
		UserId:    userId,
		Service:   service,
		CreatedAt: time.Now(),
	})

	conf := *is.googleConf
	conf.Scopes = scopes
	url := conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)

	return &dto.ConnectIntegrationResponse{RedirectURL: url}, nil
}

func (is *integrationService) HandleCallback(ctx context.Context, code, state, oauthError string) string {
	if oauthError != "" {
		return fmt.Sprintf("%s/settings?error=%s", is.frontendURL, oauthError)
	}
	if code == "" || state == "" {
		return is.frontendURL + "/settings?error=invalid_request"
	}

	pending, found := is.stateRepo.Consume(state)
	if !found {
		return is.frontendURL + "/settings?error=invalid_request"
	}

	token, err := is.googleConf.Exchange(ctx, code)
	if err != nil {
		log.Printf("[ERROR] OAuth code exchange failed: %v", err)
		return is.frontendURL + "/settings?error=exchange_failed"
	}

	// The umbrella "google" connection unlocks every Google-backed
	// service at once.
	services := []string{pending.Service}
	if pending.Service == "google" {
		services = []string{"gmail", "calendar", "docs", "sheets", "drive"}
	}

	if err := is.saveConnections(ctx, pending.UserId, services, token, pending.Service); err != nil {
		log.Printf("[ERROR] Failed to persist integration connection: %v", err)
		return is.frontendURL + "/settings?error=persist_failed"
	}

	return fmt.Sprintf("%s/settings?success=google_connected&service=%s", is.frontendURL, pending.Service)
}

func (is *integrationService) saveConnections(ctx context.Context, userId uuid.UUID, services []string, token *oauth2.Token, requestedService string) error {
	uow := is.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	now := time.Now()
	for _, svc := range services {
		existing, err := uow.IntegrationRepository().FindByUserAndProvider(ctx, userId, svc)
		if err != nil {
			return err
		}

		scopes := strings.Join(googleScopesFor(svc), " ")
		if existing != nil {
			existing.AccessToken = token.AccessToken
			existing.RefreshToken = token.RefreshToken
			existing.Scopes = scopes
			existing.Status = entity.IntegrationStatusConnected
			existing.UpdatedAt = &now
			if !token.Expiry.IsZero() {
				expiry := token.Expiry
				existing.TokenExpiry = &expiry
			}
			if err := uow.IntegrationRepository().Update(ctx, existing); err != nil {
				return err
			}
			continue
		}

		connection := &entity.IntegrationConnection{
			Id:           uuid.New(),
			UserId:       userId,
			Provider:     svc,
			AccessToken:  token.AccessToken,
			RefreshToken: token.RefreshToken,
			Scopes:       scopes,
			Status:       entity.IntegrationStatusConnected,
			CreatedAt:    now,
		}
		if !token.Expiry.IsZero() {
			expiry := token.Expiry
			connection.TokenExpiry = &expiry
		}
		if err := uow.IntegrationRepository().Create(ctx, connection); err != nil {
			return err
		}
	}

	return uow.Commit()
}

func (is *integrationService) Disconnect(ctx context.Context, userId uuid.UUID, provider string) error {
	uow := is.uowFactory.NewUnitOfWork(ctx)

	connection, err := uow.IntegrationRepository().FindByUserAndProvider(ctx, userId, provider)
	if err != nil {
		return err
	}
	if connection == nil {
		return fmt.Errorf("integration %q not connected", provider)
	}

	now := time.Now()
	connection.Status = entity.IntegrationStatusRevoked
	connection.AccessToken = ""
	connection.RefreshToken = ""
	connection.UpdatedAt = &now
	return uow.IntegrationRepository().Update(ctx, connection)
}

func googleScopesFor(service string) []string {
	if service == "google" {
		seen := make(map[string]struct{})
		all := make([]string, 0)
		for _, scopes := range googleServiceScopes {
			for _, s := range scopes {
				if _, ok := seen[s]; ok {
					continue
				}
				seen[s] = struct{}{}
				all = append(all, s)
			}
		}
		all = append(all, "openid", "https://www.googleapis.com/auth/userinfo.email")
		return all
	}
	if scopes, ok := googleServiceScopes[service]; ok {
		return scopes
	}
	// Non-Google providers connect with an empty scope set for now;
	// their token flows are handled outside this service.
	if service == "slack" || service == "notion" || service == "github" || service == "jira" {
		return nil
	}
	return nil
}
