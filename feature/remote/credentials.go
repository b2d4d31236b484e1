package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"achievement-manager/core/racache"
)

var prefsPattern = regexp.MustCompile(`(?i)^raprefs.*\.cfg$`)

// Credentials authenticate the achievementsets request.
type Credentials struct {
	Username string `json:"Username"`
	Token    string `json:"Token"`
}

// LoadCredentials reads the first RAPrefs*.cfg file at the RACache root.
func LoadCredentials(ctx context.Context, store racache.Store) (Credentials, error) {
	names, err := store.List(ctx, ".")
	if err != nil {
		return Credentials{}, err
	}

	var file string
	for _, name := range names {
		if prefsPattern.MatchString(name) {
			file = name
			break
		}
	}
	if file == "" {
		return Credentials{}, errors.New("expected RAPrefs.cfg file, but found none")
	}

	data, err := store.ReadFile(ctx, file)
	if err != nil {
		return Credentials{}, err
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, fmt.Errorf("%s: %w", file, err)
	}
	if creds.Username == "" {
		return Credentials{}, fmt.Errorf("%s: expected Username property as string, but got %q", file, creds.Username)
	}
	if creds.Token == "" {
		return Credentials{}, fmt.Errorf("%s: expected Token property as string, but got %q", file, creds.Token)
	}
	return creds, nil
}
