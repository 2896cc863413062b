package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// GenerateRunID returns a short id identifying one scan run in logs and the
// notification log.
func GenerateRunID() string {
	id, err := gonanoid.Generate("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz", 7)
	if err != nil {
		return ""
	}
	return id
}
