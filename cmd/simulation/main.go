package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:8000/api/chat/v1"

// Simplified DTOs for the script
type chatRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id,omitempty"`
}

type chatResponse struct {
	Data struct {
		Answer    string `json:"answer"`
		Category  string `json:"category"`
		RoutedTo  string `json:"routed_to"`
		SessionID string `json:"session_id"`
	} `json:"data"`
}

func main() {
	color.Cyan("=== TechGear Support Chat Simulation ===")

	// one conversation exercising greeting, products, follow-up and escalation
	testCases := []string{
		"Hi",
		"What products do you sell?",
		"What is the price of SmartWatch Pro X?",
		"what's the battery life?",
		"Can I return it if I don't like it?",
		"My neighbor's dog chewed the strap, now what",
		"thanks",
	}

	var sessionID string
	for _, text := range testCases {
		color.Yellow("\nUSER: %s", text)

		start := time.Now()
		resp, err := sendChat(sessionID, text)
		elapsed := time.Since(start)

		if err != nil {
			color.Red("Error: %v", err)
			continue
		}
		sessionID = resp.Data.SessionID
		color.Green("BOT (%v) [%s/%s]: %s", elapsed, resp.Data.Category, resp.Data.RoutedTo, resp.Data.Answer)

		time.Sleep(500 * time.Millisecond)
	}

	fmt.Println()
	color.Cyan("Session used: %s", sessionID)
}

func sendChat(sessionID, query string) (*chatResponse, error) {
	payload, _ := json.Marshal(chatRequest{Query: query, SessionID: sessionID})

	req, err := http.NewRequest("POST", baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		log.Printf("raw body: %s", string(body))
		return nil, err
	}
	return &out, nil
}
