package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/scrypt"
)

var (
	ErrEncryptionKeyMissing = errors.New("encryption key is missing")
	ErrDecryptFailed        = errors.New("decrypt failed")
)

// Stored ciphertext format: hex(16-byte IV) || hex(AES-256-CBC ciphertext).
// The scrypt parameters and the fixed salt must not change, or every refresh
// token already at rest becomes undecryptable.
const (
	ivSize       = aes.BlockSize
	ivHexLen     = ivSize * 2
	scryptSalt   = "salt"
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	derivedKeyLn = 32
)

func deriveKey(key string) ([]byte, error) {
	return scrypt.Key([]byte(key), []byte(scryptSalt), scryptN, scryptR, scryptP, derivedKeyLn)
}

// EncryptData encrypts plaintext with AES-256-CBC under a key derived from
// the configured secret. A fresh random IV is generated per call, so two
// encryptions of the same plaintext never produce equal ciphertext.
func EncryptData(plaintext, key string) (string, error) {
	if key == "" {
		return "", ErrEncryptionKeyMissing
	}
	derived, err := deriveKey(key)
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}
	block, err := aes.NewCipher(derived)
	if err != nil {
		return "", fmt.Errorf("new cipher: %w", err)
	}

	iv := make([]byte, ivSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	padded := padPKCS7([]byte(plaintext))
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(iv) + hex.EncodeToString(ciphertext), nil
}

// DecryptData reverses EncryptData. Any malformed input, wrong key or
// padding failure is reported as ErrDecryptFailed.
func DecryptData(combined, key string) (string, error) {
	if key == "" {
		return "", ErrEncryptionKeyMissing
	}
	if len(combined) <= ivHexLen {
		return "", ErrDecryptFailed
	}
	iv, err := hex.DecodeString(combined[:ivHexLen])
	if err != nil {
		return "", ErrDecryptFailed
	}
	ciphertext, err := hex.DecodeString(combined[ivHexLen:])
	if err != nil {
		return "", ErrDecryptFailed
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", ErrDecryptFailed
	}

	derived, err := deriveKey(key)
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}
	block, err := aes.NewCipher(derived)
	if err != nil {
		return "", fmt.Errorf("new cipher: %w", err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, ok := unpadPKCS7(plaintext)
	if !ok {
		return "", ErrDecryptFailed
	}
	return string(unpadded), nil
}

func padPKCS7(data []byte) []byte {
	n := aes.BlockSize - len(data)%aes.BlockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

func unpadPKCS7(data []byte) ([]byte, bool) {
	if len(data) == 0 {
		return nil, false
	}
	n := int(data[len(data)-1])
	if n == 0 || n > aes.BlockSize || n > len(data) {
		return nil, false
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, false
		}
	}
	return data[:len(data)-n], true
}
