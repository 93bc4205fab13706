package session

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User is the profile blob persisted alongside the tokens. The backend
// has shipped several names for the verified flag; UnmarshalJSON folds
// them into EmailVerified.
type User struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Username      string `json:"username"`
	Name          string `json:"name"`
	AvatarURL     string `json:"avatarUrl,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
}

// userAliases captures the alternative verified-flag spellings seen in
// backend responses over time.
type userAliases struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Username      string `json:"username"`
	Name          string `json:"name"`
	AvatarURL     string `json:"avatarUrl"`
	EmailVerified bool   `json:"emailVerified"`
	IsVerified    bool   `json:"isVerified"`
	EmailVerSnake bool   `json:"email_verified"`
}

// UnmarshalJSON accepts emailVerified, isVerified, or email_verified as
// the verification flag.
func (u *User) UnmarshalJSON(data []byte) error {
	var aux userAliases
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*u = User{
		ID:            aux.ID,
		Email:         aux.Email,
		Username:      aux.Username,
		Name:          aux.Name,
		AvatarURL:     aux.AvatarURL,
		EmailVerified: aux.EmailVerified || aux.IsVerified || aux.EmailVerSnake,
	}
	return nil
}

// Session is the client's authenticated state: the bearer token pair and
// the user profile returned at login. The zero value is anonymous.
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	User         User   `json:"user"`
}

// IsAuthenticated reports whether the session carries an access token.
func (s Session) IsAuthenticated() bool {
	return s.AccessToken != ""
}

// TokenExpiresAt parses the access token's exp claim without verifying
// the signature. This is a local convenience only; the backend remains
// authoritative on token validity.
func (s Session) TokenExpiresAt() (time.Time, error) {
	if s.AccessToken == "" {
		return time.Time{}, ErrNoSession
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.AccessToken, claims); err != nil {
		return time.Time{}, errors.Join(ErrMalformedToken, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, ErrMalformedToken
	}
	return exp.Time, nil
}

// TokenExpired reports whether the access token's exp claim has passed.
// Unparseable tokens report false; the server will reject them anyway.
func (s Session) TokenExpired() bool {
	exp, err := s.TokenExpiresAt()
	if err != nil {
		return false
	}
	return time.Now().After(exp)
}
