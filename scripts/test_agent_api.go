package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:8000/api/v1"

var userToken = os.Getenv("TEST_USER_TOKEN")

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url, token string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{} // No timeout, pipeline runs can be slow
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	color.Cyan("🚀 Starting Agent Pipeline API Test\n")

	if userToken == "" {
		color.Red("TEST_USER_TOKEN is not set")
		os.Exit(1)
	}

	// 1. Dashboard metrics (sanity: auth + DB wiring)
	color.Yellow("\n[USER] 1. Get Dashboard Metrics")
	resp, body, err := sendRequest("GET", "/dashboard/metrics", userToken, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var metricsResp map[string]interface{}
	json.Unmarshal(body, &metricsResp)
	prettyPrint(metricsResp)

	// 2. Personal mode chat (should propose a schedule change)
	color.Yellow("\n[USER] 2. Send Personal Mode Chat")
	chatReq := map[string]interface{}{
		"message": "I have a Linear Algebra exam Friday and a demo day Monday. Plan my week.",
		"mode":    "personal",
	}
	resp, body, err = sendRequest("POST", "/chat", userToken, chatReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var chatResp map[string]interface{}
	json.Unmarshal(body, &chatResp)
	prettyPrint(chatResp)

	// Extract conversation id and approval flag
	var conversationID string
	requiresApproval := false
	if data, ok := chatResp["data"].(map[string]interface{}); ok {
		if id, ok := data["conversation_id"].(string); ok {
			conversationID = id
		}
		if ra, ok := data["requires_approval"].(bool); ok {
			requiresApproval = ra
		}
	}

	// 3. Approve the proposed action if the pipeline gated on it
	if requiresApproval && conversationID != "" {
		color.Yellow("\n[USER] 3. Approve Proposed Action")
		resp, body, err = sendRequest("POST", "/chat/"+conversationID+"/approve", userToken, nil)
		if err != nil {
			color.Red("Failed: %v", err)
			os.Exit(1)
		}
		color.Green("Status: %s", resp.Status)
		var approveResp map[string]interface{}
		json.Unmarshal(body, &approveResp)
		prettyPrint(approveResp)
	} else {
		color.Yellow("\n[USER] 3. No approval required, skipping decision step")
	}

	// 4. Chat history round trip
	if conversationID != "" {
		color.Yellow("\n[USER] 4. Get Chat History")
		resp, body, err = sendRequest("GET", "/chat/"+conversationID+"/history", userToken, nil)
		if err != nil {
			color.Red("Failed: %v", err)
			os.Exit(1)
		}
		color.Green("Status: %s", resp.Status)
		var historyResp map[string]interface{}
		json.Unmarshal(body, &historyResp)
		prettyPrint(historyResp)
	}

	// 5. Workspace mode chat (cross-tool digest, no approval gate)
	color.Yellow("\n[USER] 5. Send Workspace Mode Chat")
	wsReq := map[string]interface{}{
		"message": "What's the status across the team's tools today?",
		"mode":    "workspace",
	}
	resp, body, err = sendRequest("POST", "/chat", userToken, wsReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var wsResp map[string]interface{}
	json.Unmarshal(body, &wsResp)
	prettyPrint(wsResp)

	// 6. Activity feed should show pipeline entries
	color.Yellow("\n[USER] 6. Get Activity Feed")
	resp, body, err = sendRequest("GET", "/activity?limit=10", userToken, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var activityResp map[string]interface{}
	json.Unmarshal(body, &activityResp)
	prettyPrint(activityResp)

	// 7. Conversations list
	color.Yellow("\n[USER] 7. List Conversations")
	resp, body, err = sendRequest("GET", "/conversations", userToken, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var convResp map[string]interface{}
	json.Unmarshal(body, &convResp)
	prettyPrint(convResp)

	color.Cyan("\n✨ Agent API test finished")
}
