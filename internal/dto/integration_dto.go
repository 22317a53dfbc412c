package dto

import "time"

type IntegrationStatusResponse struct {
	Provider    string     `json:"provider"`
	Status      string     `json:"status"`
	ConnectedAt *time.Time `json:"connected_at,omitempty"`
	Scopes      string     `json:"scopes,omitempty"`
}

type ConnectIntegrationResponse struct {
	RedirectURL string `json:"redirect_url"`
}
