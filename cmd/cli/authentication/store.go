package authentication

// Token persistence for the CLI. Credentials live in a mode-0600 JSON file
// under the user's home directory so a login survives across invocations.

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

const (
	configDirName   = ".storynest"
	credentialsFile = "credentials.json"
	envOverride     = "STORYNEST_CREDENTIALS"
)

var ErrNotLoggedIn = errors.New("not logged in")

type StoredCredentials struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Email        string `json:"email"`
	IsAdmin      bool   `json:"is_admin"`
}

// credentialsPath resolves the storage location, honouring the env override
// used by tests and non-standard setups.
func credentialsPath() (string, error) {
	if p := os.Getenv(envOverride); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, credentialsFile), nil
}

func StoreTokens(creds *StoredCredentials) error {
	path, err := credentialsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func GetTokens() (*StoredCredentials, error) {
	path, err := credentialsPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}

	var creds StoredCredentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}
	if creds.AccessToken == "" && creds.RefreshToken == "" {
		return nil, ErrNotLoggedIn
	}
	return &creds, nil
}

// DeleteTokens removes the stored pair; a missing file is not an error.
func DeleteTokens() error {
	path, err := credentialsPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
