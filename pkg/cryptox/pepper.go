package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	pepperMu sync.RWMutex
	pepper   string
)

// Pepper returns the process wide pepper mixed into every hashed secret.
func Pepper() string {
	pepperMu.RLock()
	defer pepperMu.RUnlock()
	return pepper
}

// SetPepper replaces the pepper. Hashes created under a different pepper stop verifying.
func SetPepper(p string) {
	pepperMu.Lock()
	pepper = p
	pepperMu.Unlock()
}

// LoadPepper reads the pepper from file, creating the file with a fresh
// random value when it does not exist yet.
func LoadPepper(file string) error {
	if strings.TrimSpace(file) == "" {
		return errors.New("cryptox: pepper file path is empty")
	}
	file = filepath.Clean(file)

	data, err := os.ReadFile(file)
	switch {
	case err == nil:
		p := strings.TrimSpace(string(data))
		if p == "" {
			return fmt.Errorf("cryptox: pepper file %s is empty", file)
		}
		SetPepper(p)
		return nil
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("cryptox: read pepper: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o750); err != nil {
		return fmt.Errorf("cryptox: create pepper dir: %w", err)
	}

	buf := make([]byte, keyLength)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("cryptox: generate pepper: %w", err)
	}
	p := base64.RawURLEncoding.EncodeToString(buf)
	if err := os.WriteFile(file, []byte(p), 0o600); err != nil {
		return fmt.Errorf("cryptox: write pepper: %w", err)
	}

	SetPepper(p)
	return nil
}
