package cryptox

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadOrGenerateSecret returns the secret stored in path. When the file does
// not exist a random secret of size bytes is generated, written with 0600
// permissions and returned.
func LoadOrGenerateSecret(path string, size int) (string, error) {
	path = filepath.Clean(path)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("cryptox: secret file %s is empty", path)
		}
		return secret, nil
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("cryptox: read secret: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", fmt.Errorf("cryptox: create secret dir: %w", err)
	}

	secret, err := GenerateToken(size)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(secret), 0o600); err != nil {
		return "", fmt.Errorf("cryptox: write secret: %w", err)
	}
	return secret, nil
}
