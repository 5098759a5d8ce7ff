package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	minSecretKeyLength = 32
	defaultBodyLimitMB = 10
	maxBodyLimitMB     = 64
	bytesPerMegabyte   = 1024 * 1024
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

func resolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return "", errors.New("SECRET_KEY uses a placeholder value")
	}
	if len(secret) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}

func resolvePort() (string, error) {
	raw := strings.TrimSpace(getEnv("PORT", "8080"))
	port, err := strconv.Atoi(raw)
	if err != nil {
		return "", fmt.Errorf("invalid PORT %q: %w", raw, err)
	}
	if port < 1 || port > 65535 {
		return "", fmt.Errorf("PORT %d is out of range", port)
	}
	return strconv.Itoa(port), nil
}

// resolveBodyLimit returns the request body limit in bytes. Uploaded images
// arrive base64 encoded inside JSON, so the limit is well above fiber's default.
func resolveBodyLimit() (int, error) {
	raw := strings.TrimSpace(os.Getenv("BODY_LIMIT_MB"))
	if raw == "" {
		return defaultBodyLimitMB * bytesPerMegabyte, nil
	}
	megabytes, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid BODY_LIMIT_MB %q: %w", raw, err)
	}
	if megabytes < 1 || megabytes > maxBodyLimitMB {
		return 0, fmt.Errorf("BODY_LIMIT_MB must be between 1 and %d", maxBodyLimitMB)
	}
	return megabytes * bytesPerMegabyte, nil
}

func parseBoolEnv(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
