package cryptography

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

var CryptoHahser Hasher = argonHasher{}

// EncryptData seals the payload with AES-256-GCM. The nonce is prepended to
// the ciphertext before base64 encoding. keyString is a hex-encoded key; nil
// falls back to TEMPLATE_ENC_KEY.
func EncryptData(payload []byte, keyString *string) (*string, error) {
	gcm, err := newGCM(keyString)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nonce, nonce, payload, nil)
	encoded := base64.URLEncoding.EncodeToString(ciphertext)
	return &encoded, nil
}

// DecryptData opens a payload sealed by EncryptData. Tampered or truncated
// ciphertext fails authentication and returns an error.
func DecryptData(stringToDecrypt string, keyString *string) ([]byte, error) {
	gcm, err := newGCM(keyString)
	if err != nil {
		return nil, err
	}

	ciphertext, err := base64.URLEncoding.DecodeString(stringToDecrypt)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 input: %w", err)
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext too short: must be at least %d bytes", gcm.NonceSize())
	}

	nonce := ciphertext[:gcm.NonceSize()]
	ciphertext = ciphertext[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate ciphertext: %w", err)
	}

	return plaintext, nil
}

func newGCM(keyString *string) (cipher.AEAD, error) {
	if keyString == nil {
		envKey := os.Getenv("TEMPLATE_ENC_KEY")
		keyString = &envKey
	}

	key, err := hex.DecodeString(*keyString)
	if err != nil {
		return nil, fmt.Errorf("invalid key format: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	return cipher.NewGCM(block)
}
