package dto

// IntegrationUpdateItem is one update detected by the polling worker.
type IntegrationUpdateItem struct {
	Id        string `json:"id"`
	Message   string `json:"message"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
	Project   string `json:"project,omitempty"`
}

// IntegrationUpdatesMessage is the payload published on the in-process
// bus when the polling worker finds unseen integration activity.
type IntegrationUpdatesMessage struct {
	Updates []IntegrationUpdateItem `json:"updates"`
}
