package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

func main() {
	baseURL := os.Getenv("NOTEKEEPER_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting Integration Test...")

	if _, ok := sendRequest(http.MethodGet, baseURL+"/healthz", nil); !ok {
		fmt.Println("FAILED: Health check")
		os.Exit(1)
	}
	fmt.Println("PASSED: Health check")

	// 1. Route utterances
	fmt.Println("1. Routing Utterances...")
	for _, text := range []string{"我把鑰匙放在玄關", "下禮拜三早上要去醫院看醫生", "今天天氣真好"} {
		body, ok := sendRequest(http.MethodPost, baseURL+"/utterances", map[string]string{"text": text})
		if !ok {
			fmt.Printf("FAILED: Route %q\n", text)
			os.Exit(1)
		}
		var outcome struct {
			Kind   string `json:"kind"`
			Intent string `json:"intent"`
		}
		_ = json.Unmarshal(body, &outcome)
		fmt.Printf("  %s -> %s/%s\n", text, outcome.Intent, outcome.Kind)
	}
	fmt.Println("PASSED: Route utterances")

	// 2. Query
	fmt.Println("2. Querying Records...")
	if _, ok := sendRequest(http.MethodGet, baseURL+"/items?today=true&keyword="+url.QueryEscape("玄關"), nil); !ok {
		fmt.Println("FAILED: Query items")
		os.Exit(1)
	}
	if _, ok := sendRequest(http.MethodGet, baseURL+"/schedules?today=true", nil); !ok {
		fmt.Println("FAILED: Query schedules")
		os.Exit(1)
	}
	fmt.Println("PASSED: Query records")
}

func sendRequest(method, endpoint string, payload any) ([]byte, bool) {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, endpoint, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return nil, false
	}
	req.Header.Set("Content-Type", "application/json")

	// Rate-limited model calls can block for a minute before retrying.
	client := &http.Client{Timeout: 3 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return nil, false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return nil, false
	}

	fmt.Printf("Response: %s\n", string(respBody))
	return respBody, true
}
