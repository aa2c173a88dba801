package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

var ErrMissingToken = errors.New("credentials file has no token")

// Secret is the content of the credentials file.
type Secret struct {
	Token string `json:"token"`
}

// LoadSecret reads the bot token from a JSON file such as {"token": "..."}.
func LoadSecret(path string) (Secret, error) {
	var secret Secret

	data, err := os.ReadFile(path)
	if err != nil {
		return secret, fmt.Errorf("failed to read credentials file: %w", err)
	}

	if err := json.Unmarshal(data, &secret); err != nil {
		return secret, fmt.Errorf("failed to parse credentials file %s: %w", path, err)
	}

	secret.Token = strings.TrimSpace(secret.Token)
	if secret.Token == "" {
		return secret, fmt.Errorf("%s: %w", path, ErrMissingToken)
	}

	return secret, nil
}
