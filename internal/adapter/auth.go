package adapter

import (
	"errors"
	"fmt"
	"plant-pal/internal/core/model"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Demo account accepted by the credentials sign-in.
const (
	DemoEmail    = "demo@plantpal.com"
	DemoPassword = "password123"
	DemoUserID   = "1"
	DemoName     = "Demo User"
)

// MinSecretLen is the shortest accepted HS256 signing secret.
const MinSecretLen = 32

const minPasswordLen = 6

var (
	errBadCredentials = fmt.Errorf("%w: email and password are required", model.ErrUnauthorized)
	errPasswordShort  = fmt.Errorf("%w: password must be at least %d characters long", model.ErrValidation, minPasswordLen)
	errPasswordMatch  = fmt.Errorf("%w: passwords do not match", model.ErrValidation)
)

// SessionClaims is the JWT payload of a signed-in user.
type SessionClaims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	Name     string `json:"name"`
	Image    string `json:"image,omitempty"`
	Provider string `json:"provider"`
}

// Authenticator is the demo sign-in: the fixed demo account or any non-empty
// email and password pair. It only decides who the user is; it is not a
// security boundary.
type Authenticator struct {
	secret   []byte
	ttl      time.Duration
	demoHash []byte
	newID    func() string
}

func NewAuthenticator(secret []byte, ttl time.Duration) (*Authenticator, error) {
	if len(secret) < MinSecretLen {
		return nil, fmt.Errorf("auth: secret must be at least %d bytes", MinSecretLen)
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash demo password: %w", err)
	}
	return &Authenticator{secret: secret, ttl: ttl, demoHash: hash, newID: uuid.NewString}, nil
}

func (a *Authenticator) TTL() time.Duration { return a.ttl }

// SignIn resolves credentials to a user.
func (a *Authenticator) SignIn(email, password string) (model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return model.User{}, errBadCredentials
	}
	if email == DemoEmail &&
		bcrypt.CompareHashAndPassword(a.demoHash, []byte(password)) == nil {
		return model.User{ID: DemoUserID, Email: DemoEmail, Name: DemoName, Provider: "credentials"}, nil
	}
	return model.User{
		ID:       a.newID(),
		Email:    email,
		Name:     localPart(email),
		Provider: "credentials",
	}, nil
}

// Register checks the sign-up form and signs the new user in.
func (a *Authenticator) Register(in model.RegisterInput) (model.User, error) {
	if in.Password != in.ConfirmPassword {
		return model.User{}, errPasswordMatch
	}
	if len(in.Password) < minPasswordLen {
		return model.User{}, errPasswordShort
	}
	u, err := a.SignIn(in.Email, in.Password)
	if err != nil {
		return model.User{}, err
	}
	if name := strings.TrimSpace(in.Name); name != "" && u.ID != DemoUserID {
		u.Name = name
	}
	return u, nil
}

// IssueToken signs a session token for u.
func (a *Authenticator) IssueToken(u model.User) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
		Email:    u.Email,
		Name:     u.Name,
		Image:    u.Image,
		Provider: u.Provider,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// ParseToken validates a session token. Only HS256 is accepted.
func (a *Authenticator) ParseToken(tokenStr string) (model.User, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %v", model.ErrUnauthorized, err)
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return model.User{}, fmt.Errorf("%w: invalid token", model.ErrUnauthorized)
	}
	return model.User{
		ID:       claims.Subject,
		Email:    claims.Email,
		Name:     claims.Name,
		Image:    claims.Image,
		Provider: claims.Provider,
	}, nil
}

func localPart(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}

// IsUnauthorized reports whether err denies a sign-in.
func IsUnauthorized(err error) bool {
	return errors.Is(err, model.ErrUnauthorized)
}
