package db

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

// FieldCipher encrypts single column values at rest.
type FieldCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

type SecretboxCipher struct {
	key [32]byte
}

// NewSecretboxCipher derives a secretbox key from secret. An empty secret is
// a configuration error.
func NewSecretboxCipher(secret string) (*SecretboxCipher, error) {
	if secret == "" {
		return nil, errors.New("field cipher: empty key")
	}
	c := &SecretboxCipher{}
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte("orders.pii"))
	if _, err := io.ReadFull(kdf, c.key[:]); err != nil {
		return nil, errors.Wrap(err, "field cipher: derive key")
	}
	return c, nil
}

func (c *SecretboxCipher) Encrypt(plaintext string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", errors.Wrap(err, "field cipher: nonce")
	}
	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &c.key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (c *SecretboxCipher) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", errors.Wrap(err, "field cipher: decode")
	}
	if len(raw) < nonceSize+secretbox.Overhead {
		return "", errors.New("field cipher: ciphertext too short")
	}
	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &c.key)
	if !ok {
		return "", errors.New("field cipher: decryption failed")
	}
	return string(plain), nil
}
