// Package apikeys validates, masks, and resolves provider API keys. A key
// containing an asterisk is always treated as a masked display value echoed
// back by a UI, never as a usable secret.
package apikeys

import (
	"fmt"
	"log"
	"strings"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderZAI    = "zai"
)

// IsValid reports whether a key is plausibly usable for a provider. Masked
// keys (any '*') are never valid.
func IsValid(key, provider string) bool {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return false
	}
	if strings.Contains(trimmed, "*") {
		return false
	}

	switch provider {
	case ProviderOpenAI:
		return strings.HasPrefix(trimmed, "sk-") && len(trimmed) >= 20
	case ProviderGemini:
		return strings.HasPrefix(trimmed, "AIza") && len(trimmed) >= 20
	case ProviderZAI:
		// Z.AI key format is not documented upstream; length is the only check.
		return len(trimmed) >= 10
	default:
		return false
	}
}

// Sanitize trims surrounding whitespace.
func Sanitize(key string) string {
	return strings.TrimSpace(key)
}

// Mask returns the first 8 and last 4 characters with the middle replaced
// by asterisks (at least 4). Keys shorter than 12 characters are too short
// to partially reveal and mask to the empty string.
func Mask(key string) string {
	if len(key) < 12 {
		return ""
	}
	stars := len(key) - 12
	if stars < 4 {
		stars = 4
	}
	return key[:8] + strings.Repeat("*", stars) + key[len(key)-4:]
}

// IsMasked reports whether a key looks like a redacted display value.
func IsMasked(key string) bool {
	return strings.Contains(key, "*")
}

// Resolve picks the key to use for a provider: a valid user-supplied key
// always wins over the configured default; empty when neither is valid.
func Resolve(userKey, envKey, provider string) string {
	if userKey != "" && IsValid(userKey, provider) {
		return Sanitize(userKey)
	}
	if envKey != "" && IsValid(envKey, provider) {
		return Sanitize(envKey)
	}
	return ""
}

// Validation is the result of ValidateWithMessage, suitable for surfacing
// directly to the end user.
type Validation struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// ValidateWithMessage distinguishes missing, masked, and wrongly formatted
// keys with provider-specific guidance.
func ValidateWithMessage(key, provider string) Validation {
	if strings.TrimSpace(key) == "" {
		return Validation{Valid: false, Message: fmt.Sprintf("%s API key is required", strings.ToUpper(provider))}
	}

	trimmed := strings.TrimSpace(key)
	if strings.Contains(trimmed, "*") {
		return Validation{Valid: false, Message: fmt.Sprintf("%s API key appears to be masked. Please provide the actual key.", strings.ToUpper(provider))}
	}

	if !IsValid(trimmed, provider) {
		switch provider {
		case ProviderOpenAI:
			return Validation{Valid: false, Message: `OpenAI API key must start with "sk-" and be at least 20 characters long`}
		case ProviderGemini:
			return Validation{Valid: false, Message: `Google Gemini API key must start with "AIza" and be at least 20 characters long`}
		case ProviderZAI:
			return Validation{Valid: false, Message: "Z.AI API key must be at least 10 characters long"}
		default:
			return Validation{Valid: false, Message: "Invalid API key format"}
		}
	}

	return Validation{Valid: true}
}

// Debug logs key diagnostics without ever exposing the raw key.
func Debug(key, provider, source string) {
	if key == "" {
		log.Printf("[api-key] %s (%s): EMPTY", provider, source)
		return
	}
	log.Printf("[api-key] %s (%s): %s | valid=%t masked=%t len=%d",
		provider, source, Mask(key), IsValid(key, provider), IsMasked(key), len(key))
}
