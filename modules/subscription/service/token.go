package service

import (
	"fmt"

	"github.com/fernet/fernet-go"
)

// TokenCodec turns an email address into an opaque reversible unsubscribe
// token and back. Tokens do not expire; an unsubscribe link must keep working
// for as long as the subscription exists.
type TokenCodec struct {
	key  *fernet.Key
	keys []*fernet.Key
}

func NewTokenCodec(encodedKey string) (*TokenCodec, error) {
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("invalid unsubscribe token key: %w", err)
	}
	return &TokenCodec{
		key:  key,
		keys: []*fernet.Key{key},
	}, nil
}

func (c *TokenCodec) Encrypt(email string) (string, error) {
	token, err := fernet.EncryptAndSign([]byte(email), c.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt unsubscribe token: %w", err)
	}
	return string(token), nil
}

func (c *TokenCodec) Decrypt(token string) (string, error) {
	email := fernet.VerifyAndDecrypt([]byte(token), 0, c.keys)
	if email == nil {
		return "", fmt.Errorf("invalid unsubscribe token")
	}
	return string(email), nil
}
