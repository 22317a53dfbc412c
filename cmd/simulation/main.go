package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// Simulation client: drives a full chat + approval round trip against a
// running server. Set SIM_ACCESS_TOKEN to a valid JWT before running.

var (
	baseURL     = envOr("SIM_BASE_URL", "http://localhost:8000/api/v1")
	accessToken = os.Getenv("SIM_ACCESS_TOKEN")
)

// Simplified DTOs for the script
type sendChatRequest struct {
	ConversationId string `json:"conversation_id,omitempty"`
	Message        string `json:"message"`
	Mode           string `json:"mode,omitempty"`
}

type sendChatResponse struct {
	Data struct {
		ConversationId   string   `json:"conversation_id"`
		Reply            string   `json:"reply"`
		Mode             string   `json:"mode"`
		RequiresApproval bool     `json:"requires_approval"`
		Sources          []string `json:"sources"`
	} `json:"data"`
}

type approvalResponse struct {
	Data struct {
		Message        string `json:"message"`
		ApprovalStatus string `json:"approval_status"`
	} `json:"data"`
}

func main() {
	fmt.Println("=== Agent Pipeline Simulation Client ===")
	if accessToken == "" {
		log.Fatal("SIM_ACCESS_TOKEN is not set")
	}

	// Personal mode: should end with a schedule proposal gated on approval.
	fmt.Println("\n--- Personal mode ---")
	personal, err := sendChat("", "I have a Linear Algebra exam Friday and a startup demo Monday, help me plan my week", "personal")
	if err != nil {
		log.Fatalf("Personal chat failed: %v", err)
	}
	fmt.Printf("AI: %s\n", personal.Data.Reply)
	fmt.Printf("requires_approval=%t sources=%v\n", personal.Data.RequiresApproval, personal.Data.Sources)

	if personal.Data.RequiresApproval {
		decision, err := approve(personal.Data.ConversationId)
		if err != nil {
			log.Fatalf("Approval failed: %v", err)
		}
		fmt.Printf("APPROVAL: %s (%s)\n", decision.Data.Message, decision.Data.ApprovalStatus)
	}

	// Workspace mode: cross-tool synthesis, no approval gate expected.
	fmt.Println("\n--- Workspace mode ---")
	start := time.Now()
	workspace, err := sendChat("", "What's the status across the team's tools today?", "workspace")
	if err != nil {
		log.Fatalf("Workspace chat failed: %v", err)
	}
	fmt.Printf("AI (%v): %s\n", time.Since(start).Round(time.Millisecond), workspace.Data.Reply)
	fmt.Printf("sources=%v\n", workspace.Data.Sources)

	fmt.Println("\nSimulation complete.")
}

func sendChat(conversationId, message, mode string) (*sendChatResponse, error) {
	body, _ := json.Marshal(sendChatRequest{
		ConversationId: conversationId,
		Message:        message,
		Mode:           mode,
	})

	var resp sendChatResponse
	if err := post("/chat", bytes.NewReader(body), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func approve(conversationId string) (*approvalResponse, error) {
	var resp approvalResponse
	path := fmt.Sprintf("/chat/%s/approve", conversationId)
	if err := post(path, bytes.NewReader([]byte("{}")), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func post(path string, body io.Reader, out interface{}) error {
	req, err := http.NewRequest(http.MethodPost, baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	client := &http.Client{Timeout: 120 * time.Second}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode >= 300 {
		return fmt.Errorf("HTTP %d: %s", res.StatusCode, string(raw))
	}
	return json.Unmarshal(raw, out)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
