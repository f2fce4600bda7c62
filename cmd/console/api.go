package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// Item is one row of a list endpoint, kept untyped so every resource
// renders the same way.
type Item map[string]any

func (i Item) String(key string) string {
	if v, ok := i[key].(string); ok {
		return v
	}
	return ""
}

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

func getJSON(client *http.Client, url string, dst any) error {
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil || errorResp.Error == "" {
			return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, errorResp.Error)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func listItems(client *http.Client, baseURL, path string) ([]Item, error) {
	var items []Item
	if err := getJSON(client, baseURL+path+"?limit=1000", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func getItem(client *http.Client, baseURL, path, id string) (Item, error) {
	var item Item
	if err := getJSON(client, fmt.Sprintf("%s%s/%s", baseURL, path, id), &item); err != nil {
		return nil, err
	}
	return item, nil
}
