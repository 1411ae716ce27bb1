// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
)

var (
	ErrInvalidToken = errors.New("invalid token format")
	ErrBadSignature = errors.New("invalid token signature")
)

// Token roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Identity is the authenticated caller behind a bearer token.
type Identity struct {
	UserID  int64
	IsAdmin bool
}

// GenerateUserToken creates an HMAC-signed bearer token for a user.
// Format: <user id>.<role>.<signature>
// This is deterministic and verifiable
func GenerateUserToken(userID int64, admin bool, salt string) string {
	role := RoleUser
	if admin {
		role = RoleAdmin
	}
	payload := strconv.FormatInt(userID, 10) + "." + role
	return payload + "." + sign(payload, salt)
}

// ParseUserToken validates a token produced by GenerateUserToken
func ParseUserToken(token, salt string) (Identity, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Identity{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || userID <= 0 {
		return Identity{}, ErrInvalidToken
	}
	if parts[1] != RoleUser && parts[1] != RoleAdmin {
		return Identity{}, ErrInvalidToken
	}

	expected := sign(parts[0]+"."+parts[1], salt)
	if !hmac.Equal([]byte(parts[2]), []byte(expected)) {
		return Identity{}, ErrBadSignature
	}

	return Identity{UserID: userID, IsAdmin: parts[1] == RoleAdmin}, nil
}

func sign(payload, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(payload))
	// Use URL-safe base64 and trim padding for cleaner tokens
	return strings.TrimRight(base64.URLEncoding.EncodeToString(h.Sum(nil)), "=")
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
