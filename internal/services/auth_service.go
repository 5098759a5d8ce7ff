package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/skinsight/internal/events"
	"github.com/terraincognita07/skinsight/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const DefaultSessionTTL = 7 * 24 * time.Hour

const (
	messageCredentialsRequired = "A valid email and password are required"
	messageDuplicateAccount    = "User already registered"
	messageInvalidCredentials  = "Invalid login credentials"
	messageAuthUnavailable     = "Authentication is unavailable right now. Please try again."
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(ctx context.Context, email string) (bool, error)
	FindByNormalizedEmail(ctx context.Context, email string) (models.User, bool, error)
	FindByID(ctx context.Context, userID string) (models.User, bool, error)
	Create(ctx context.Context, user *models.User) error
}

type AuthService struct {
	users      AuthUserRepository
	broker     events.Broker
	secretKey  []byte
	sessionTTL time.Duration
	now        func() time.Time
}

func NewAuthService(users AuthUserRepository, broker events.Broker, secretKey []byte) *AuthService {
	return &AuthService{
		users:      users,
		broker:     broker,
		secretKey:  secretKey,
		sessionTTL: DefaultSessionTTL,
		now:        time.Now,
	}
}

func (service *AuthService) SessionTTL() time.Duration {
	return service.sessionTTL
}

func (service *AuthService) SignUp(ctx context.Context, email string, password string) (Identity, error) {
	normalizedEmail, password, err := NormalizeCredentialsInput(email, password)
	if err != nil {
		return Identity{}, &AuthError{Kind: AuthErrorInvalidInput, Message: messageCredentialsRequired}
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return Identity{}, &AuthError{Kind: AuthErrorInvalidInput, Message: PasswordPolicyHint}
	}

	exists, err := service.users.ExistsByNormalizedEmail(ctx, normalizedEmail)
	if err != nil {
		return Identity{}, &AuthError{Kind: AuthErrorUnavailable, Message: messageAuthUnavailable, Err: err}
	}
	if exists {
		return Identity{}, &AuthError{Kind: AuthErrorDuplicateAccount, Message: messageDuplicateAccount}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Identity{}, &AuthError{Kind: AuthErrorUnavailable, Message: messageAuthUnavailable, Err: fmt.Errorf("hash password: %w", err)}
	}

	user := models.User{
		Email:        normalizedEmail,
		PasswordHash: string(passwordHash),
		CreatedAt:    service.now().UTC(),
	}
	if err := service.users.Create(ctx, &user); err != nil {
		// A concurrent sign-up for the same email loses on the unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return Identity{}, &AuthError{Kind: AuthErrorDuplicateAccount, Message: messageDuplicateAccount, Err: err}
		}
		return Identity{}, &AuthError{Kind: AuthErrorUnavailable, Message: messageAuthUnavailable, Err: err}
	}

	identity := identityFromUser(user)
	service.publish(ctx, events.SignedIn, identity.ID)
	return identity, nil
}

func (service *AuthService) SignIn(ctx context.Context, email string, password string) (Identity, error) {
	normalizedEmail, password, err := NormalizeCredentialsInput(email, password)
	if err != nil {
		return Identity{}, &AuthError{Kind: AuthErrorInvalidInput, Message: messageCredentialsRequired}
	}

	user, found, err := service.users.FindByNormalizedEmail(ctx, normalizedEmail)
	if err != nil {
		return Identity{}, &AuthError{Kind: AuthErrorUnavailable, Message: messageAuthUnavailable, Err: err}
	}
	if !found || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return Identity{}, &AuthError{Kind: AuthErrorInvalidCredentials, Message: messageInvalidCredentials}
	}

	identity := identityFromUser(user)
	service.publish(ctx, events.SignedIn, identity.ID)
	return identity, nil
}

// SignOut announces the end of a session to every open tab of the user.
// The cookie itself is cleared by the caller.
func (service *AuthService) SignOut(ctx context.Context, identity Identity) error {
	if identity.ID == "" {
		return nil
	}
	if err := service.broker.Publish(ctx, service.event(events.SignedOut, identity.ID)); err != nil {
		return &AuthError{Kind: AuthErrorUnavailable, Message: messageAuthUnavailable, Err: err}
	}
	return nil
}

func (service *AuthService) IssueSessionToken(identity Identity) (string, time.Time, error) {
	now := service.now()
	expiresAt := now.Add(service.sessionTTL)

	claims := sessionClaims{
		UserID: identity.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(service.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// CurrentSession resolves a session token. Missing, malformed, expired and
// orphaned tokens all yield an anonymous session; only a failing user store
// is reported as an error.
func (service *AuthService) CurrentSession(ctx context.Context, rawToken string) (Session, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return AnonymousSession(), nil
	}

	claims, err := service.parseSessionToken(rawToken)
	if err != nil {
		return AnonymousSession(), nil
	}

	user, found, err := service.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return AnonymousSession(), &AuthError{Kind: AuthErrorUnavailable, Message: messageAuthUnavailable, Err: err}
	}
	if !found {
		return AnonymousSession(), nil
	}

	identity := identityFromUser(user)
	return Session{
		Status:    SessionAuthenticated,
		User:      &identity,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// NeedsRefresh reports whether more than half of the session's lifetime has
// passed.
func (service *AuthService) NeedsRefresh(session Session) bool {
	if !session.Authenticated() || session.IssuedAt.IsZero() || session.ExpiresAt.IsZero() {
		return false
	}
	halfLife := session.ExpiresAt.Sub(session.IssuedAt) / 2
	return service.now().After(session.IssuedAt.Add(halfLife))
}

func (service *AuthService) RefreshSession(ctx context.Context, session Session) (string, time.Time, error) {
	if !session.Authenticated() {
		return "", time.Time{}, ErrAuthRequired
	}

	token, expiresAt, err := service.IssueSessionToken(*session.User)
	if err != nil {
		return "", time.Time{}, err
	}
	service.publish(ctx, events.TokenRefreshed, session.User.ID)
	return token, expiresAt, nil
}

func (service *AuthService) parseSessionToken(rawToken string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return service.secretKey, nil
	}, jwt.WithTimeFunc(service.now), jwt.WithExpirationRequired(), jwt.WithIssuedAt())
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if strings.TrimSpace(claims.UserID) == "" || claims.IssuedAt == nil {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// publish is best effort: a broker outage must not fail the sign-in that
// triggered the event.
func (service *AuthService) publish(ctx context.Context, eventType events.Type, userID string) {
	_ = service.broker.Publish(ctx, service.event(eventType, userID))
}

func (service *AuthService) event(eventType events.Type, userID string) events.Event {
	return events.Event{Type: eventType, UserID: userID, At: service.now().UTC()}
}
