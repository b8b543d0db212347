// Package jwt decodes JWT payloads without verifying the signature. The
// result identifies the signed-in user; it is never used to authenticate.
package jwt

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/marketconnect/cursor-stats/app/domain/entities"
)

// DecodePayload returns the JSON object in the middle segment of token.
// All failures wrap entities.ErrDecode.
func DecodePayload(token string) (map[string]any, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", entities.ErrDecode, len(parts))
	}

	raw, err := base64.URLEncoding.DecodeString(pad(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("%w: payload base64: %v", entities.ErrDecode, err)
	}
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%w: payload is not utf-8", entities.ErrDecode)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: payload json: %v", entities.ErrDecode, err)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: payload is null", entities.ErrDecode)
	}
	return payload, nil
}

// Subject returns the user id from a "<prefix>|<user_id>" sub claim.
func Subject(payload map[string]any) (string, error) {
	sub, ok := payload["sub"].(string)
	if !ok {
		return "", fmt.Errorf("%w: missing sub claim", entities.ErrDecode)
	}
	_, userID, found := strings.Cut(sub, "|")
	if !found || userID == "" {
		return "", fmt.Errorf("%w: malformed sub claim %q", entities.ErrDecode, sub)
	}
	// Only the second field is the user id; ignore anything after another '|'.
	userID, _, _ = strings.Cut(userID, "|")
	return userID, nil
}

// pad appends '=' until len(s) is a multiple of 4.
func pad(s string) string {
	if m := len(s) % 4; m != 0 {
		s += strings.Repeat("=", 4-m)
	}
	return s
}
