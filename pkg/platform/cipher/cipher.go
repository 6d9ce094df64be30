// Package cipher provides AES-256-GCM authenticated encryption for sensitive
// columns that must be stored at rest, specifically connector access tokens.
// A connector token grants access to an organization's data-plane endpoint,
// so a leaked database dump must not expose usable tokens. AES-GCM gives
// both confidentiality and integrity: a tampered ciphertext fails to open.
package cipher

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

var (
	// ErrKeyLength is returned when a key is not exactly 32 bytes.
	ErrKeyLength = errors.New("cipher: key must be exactly 32 bytes for AES-256")
	// ErrSaltTooShort is returned when the derivation salt is under 16 bytes.
	ErrSaltTooShort = errors.New("cipher: salt must be at least 16 bytes")
	// ErrCiphertextCorrupted is returned when a ciphertext fails base64
	// decoding or is too short to contain a nonce.
	ErrCiphertextCorrupted = errors.New("cipher: ciphertext is corrupted")
	// ErrDecryptionFailed is returned when GCM authentication fails,
	// indicating tampering or a wrong key.
	ErrDecryptionFailed = errors.New("cipher: decryption failed")
)

const deriveIterations = 100_000

// Cipher seals and opens short sensitive strings.
type Cipher struct {
	key []byte
}

// New creates a Cipher from a 32-byte key.
func New(key []byte) (*Cipher, error) {
	if len(key) != 32 {
		return nil, ErrKeyLength
	}
	c := &Cipher{key: make([]byte, 32)}
	copy(c.key, key)
	return c, nil
}

// Derive creates a Cipher from a passphrase and salt via PBKDF2-SHA256.
func Derive(passphrase string, salt []byte) (*Cipher, error) {
	if len(salt) < 16 {
		return nil, ErrSaltTooShort
	}
	return New(pbkdf2.Key([]byte(passphrase), salt, deriveIterations, 32, sha256.New))
}

// Seal encrypts plaintext and returns base64(nonce || ciphertext).
// Empty input stays empty so optional columns round-trip unchanged.
func (c *Cipher) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	aead, err := c.aead()
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.URLEncoding.EncodeToString(sealed), nil
}

// Open decrypts a value produced by Seal.
func (c *Cipher) Open(encoded string) (string, error) {
	if encoded == "" {
		return "", nil
	}
	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrCiphertextCorrupted
	}
	aead, err := c.aead()
	if err != nil {
		return "", err
	}
	if len(raw) < aead.NonceSize() {
		return "", ErrCiphertextCorrupted
	}
	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	return string(plaintext), nil
}

func (c *Cipher) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
