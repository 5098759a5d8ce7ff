package api

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var pageTemplateNames = []string{"home", "history", "not_found"}
var partialTemplateNames = []string{"analysis_partial"}

func NewHandler(config Config) (*Handler, error) {
	if config.Database == nil {
		return nil, errors.New("database is required")
	}
	if strings.TrimSpace(config.SecretKey) == "" {
		return nil, errors.New("secret key is required")
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	funcMap := template.FuncMap{
		"formatDate": func(value time.Time) string {
			if value.IsZero() {
				return ""
			}
			return value.Format("Jan 2, 2006 15:04")
		},
		"formatISO": func(value time.Time) string {
			return value.UTC().Format(time.RFC3339)
		},
		"formatRating": func(value float64) string {
			return fmt.Sprintf("%.1f", value)
		},
		"title": capitalize,
		"deref": func(value *int) int {
			if value == nil {
				return 0
			}
			return *value
		},
	}

	templates, err := parsePageTemplates(funcMap, pageTemplateNames)
	if err != nil {
		return nil, err
	}
	partials, err := parsePartialTemplates(funcMap, partialTemplateNames)
	if err != nil {
		return nil, err
	}

	handler := &Handler{
		secretKey:     []byte(config.SecretKey),
		cookieSecure:  config.CookieSecure,
		logger:        logger,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		templates:     templates,
		partials:      partials,
		signInLimiter: newAttemptLimiter(signInAttemptLimit, signInAttemptWindow),
	}
	return handler.withDependencies(config.Database, config.Analyzer, config.Broker), nil
}

func capitalize(value string) string {
	if value == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(value)
	return string(unicode.ToUpper(first)) + value[size:]
}
