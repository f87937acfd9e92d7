package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// sealInfo binds derived keys to their use so a sealed value from one
// purpose cannot be opened as another.
const sealInfo = "yukti-platform/seal/v1"

// sealKey derives the AES-256 key from the process pepper.
func sealKey(purpose string) ([]byte, error) {
	p := Pepper()
	if p == "" {
		return nil, errors.New("cryptox: pepper not loaded")
	}
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(p), nil, []byte(sealInfo+"/"+purpose))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("cryptox: derive seal key: %w", err)
	}
	return key, nil
}

func sealAEAD(purpose string) (cipher.AEAD, error) {
	key, err := sealKey(purpose)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cryptox: create GCM: %w", err)
	}
	return gcm, nil
}

// SealString encrypts plaintext with AES-256-GCM under a key derived from
// the pepper and purpose. The result is base64url of nonce||ciphertext||tag.
func SealString(purpose, plaintext string) (string, error) {
	gcm, err := sealAEAD(purpose)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("cryptox: generate nonce: %w", err)
	}
	out := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(out), nil
}

// OpenString reverses SealString. It fails when the pepper or purpose differ
// or the value was tampered with.
func OpenString(purpose, sealed string) (string, error) {
	gcm, err := sealAEAD(purpose)
	if err != nil {
		return "", err
	}
	data, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("cryptox: decode sealed value: %w", err)
	}
	if len(data) < gcm.NonceSize() {
		return "", errors.New("cryptox: sealed value too short")
	}
	nonce, ciphertext := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("cryptox: open sealed value: %w", err)
	}
	return string(plain), nil
}
