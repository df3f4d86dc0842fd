// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads vendor credentials from a directory of
// plain-text files, one secret per file: the filename is the key and
// the trimmed contents are the value. It backs deployments where
// credentials are mounted as files (systemd credentials, container
// secrets) rather than exported in the environment.
//
// Expected key files: dropbox-access-token, wix-api-key, wix-site-id,
// mailchimp-api-key, mailchimp-list-id.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDir is the conventional secrets location, relative to the
// working directory.
const DefaultDir = "secrets"

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory is not an error; Load returns an empty
// map. Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	values := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			values[name] = value
		}
	}

	return values, nil
}

// EnvName converts a secret filename to its environment variable form:
// dashes become underscores and the result is uppercased, so
// "dropbox-access-token" becomes "DROPBOX_ACCESS_TOKEN".
func EnvName(filename string) string {
	return strings.ToUpper(strings.ReplaceAll(filename, "-", "_"))
}

// ApplyEnv loads dir and exports each secret as an environment variable
// under its EnvName. Variables already set in the environment win;
// secret files never override an explicit value.
func ApplyEnv(dir string) error {
	values, err := Load(dir)
	if err != nil {
		return err
	}
	for name, value := range values {
		env := EnvName(name)
		if _, set := os.LookupEnv(env); set {
			continue
		}
		if err := os.Setenv(env, value); err != nil {
			return fmt.Errorf("exporting secret %s: %w", name, err)
		}
	}
	return nil
}
