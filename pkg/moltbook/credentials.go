package moltbook

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LoadAPIKey resolves the API key from MOLTBOOK_API_KEY, falling back to the
// credentials file at MOLTBOOK_CREDENTIALS or ~/.config/moltbook/credentials.json.
func LoadAPIKey() (string, error) {
	if key := os.Getenv("MOLTBOOK_API_KEY"); key != "" {
		return key, nil
	}

	path := os.Getenv("MOLTBOOK_CREDENTIALS")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, ".config", "moltbook", "credentials.json")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load credentials from %s: %w", path, err)
	}

	var creds struct {
		APIKey string `json:"api_key"`
	}
	if err := json.Unmarshal(raw, &creds); err != nil {
		return "", fmt.Errorf("parse credentials %s: %w", path, err)
	}
	if creds.APIKey == "" {
		return "", fmt.Errorf("credentials %s: missing api_key", path)
	}
	return creds.APIKey, nil
}
