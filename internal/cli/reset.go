package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"

	"github.com/terraincognita07/skinsight/internal/models"
	"github.com/terraincognita07/skinsight/internal/security"
	"github.com/terraincognita07/skinsight/internal/services"
	"golang.org/x/crypto/bcrypt"
)

// PasswordResetStore is the slice of the user repository the reset command needs.
type PasswordResetStore interface {
	FindByNormalizedEmail(ctx context.Context, email string) (models.User, bool, error)
	UpdatePassword(ctx context.Context, userID string, passwordHash string) error
}

const temporaryPasswordAttempts = 16

func RunResetPasswordCommand(ctx context.Context, users PasswordResetStore, email string, out io.Writer) error {
	normalizedEmail := services.NormalizeAuthEmail(email)
	if normalizedEmail == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(normalizedEmail); err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}

	user, found, err := users.FindByNormalizedEmail(ctx, normalizedEmail)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if !found {
		return fmt.Errorf("user %s not found", normalizedEmail)
	}

	temporaryPassword, err := generateTemporaryPassword(12)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash temporary password: %w", err)
	}
	if err := users.UpdatePassword(ctx, user.ID, string(passwordHash)); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Fprintln(out, "Password reset successful")
	fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
	return nil
}

// generateTemporaryPassword draws until the result satisfies the sign-up
// password policy so the user can sign in with it directly.
func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	for attempt := 0; attempt < temporaryPasswordAttempts; attempt++ {
		password, err := security.RandomString(length, security.TemporaryPasswordAlphabet)
		if err != nil {
			return "", err
		}
		if services.ValidatePasswordStrength(password) == nil {
			return password, nil
		}
	}
	return "", errors.New("could not generate a password that meets the policy")
}
