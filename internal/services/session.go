package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/skinsight/internal/models"
)

type SessionStatus string

const (
	SessionLoading       SessionStatus = "loading"
	SessionAuthenticated SessionStatus = "authenticated"
	SessionAnonymous     SessionStatus = "anonymous"
)

// Identity is the part of an account the rest of the app may see.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func identityFromUser(user models.User) Identity {
	return Identity{ID: user.ID, Email: user.Email}
}

// Session is the server's view of the current visitor. The loading status is
// only ever held by the browser before its first session check resolves.
type Session struct {
	Status    SessionStatus `json:"status"`
	User      *Identity     `json:"user,omitempty"`
	IssuedAt  time.Time     `json:"-"`
	ExpiresAt time.Time     `json:"-"`
}

func AnonymousSession() Session {
	return Session{Status: SessionAnonymous}
}

func (session Session) Authenticated() bool {
	return session.Status == SessionAuthenticated && session.User != nil && session.User.ID != ""
}

func (session Session) UserID() string {
	if !session.Authenticated() {
		return ""
	}
	return session.User.ID
}

type sessionClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}
