package model

import (
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// UniqueID returns a short random alphanumeric token
func UniqueID() string {
	return gonanoid.MustGenerate(idAlphabet, 6)
}

// JoinID joins id parts with dashes, e.g. JoinID("root", UniqueID())
func JoinID(parts ...string) string {
	return strings.Join(parts, "-")
}
