package adapter

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"plant-pal/internal/core/model"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const defaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// GoogleOAuth signs users in with their Google account.
type GoogleOAuth struct {
	Config      *oauth2.Config
	UserInfoURL string
	Client      *http.Client
	Retry       int
}

func NewGoogleOAuth(cfg GoogleConfig, retry int, httpClient *http.Client) *GoogleOAuth {
	if retry < 0 {
		retry = 0
	}
	return &GoogleOAuth{
		Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		UserInfoURL: defaultUserInfoURL,
		Client:      httpClient,
		Retry:       retry,
	}
}

func (g *GoogleOAuth) AuthCodeURL(state string) string {
	return g.Config.AuthCodeURL(state)
}

// FetchUser exchanges the authorization code and loads the Google profile.
func (g *GoogleOAuth) FetchUser(ctx context.Context, code string) (model.User, error) {
	if g.Client != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, g.Client)
	}
	token, err := g.Config.Exchange(ctx, code)
	if err != nil {
		return model.User{}, exchangeError(err)
	}
	client := g.Config.Client(ctx, token)

	var lastErr error
	attempts := g.Retry + 1
	for i := 0; i < attempts; i++ {
		u, err := g.fetchOnce(ctx, client)
		if err == nil {
			return u, nil
		}
		if errors.Is(err, model.ErrUnauthorized) {
			return model.User{}, err
		}
		lastErr = err
		if i < attempts-1 {
			select {
			case <-time.After(time.Duration(150*(i+1)) * time.Millisecond):
			case <-ctx.Done():
				return model.User{}, ctx.Err()
			}
		}
	}
	return model.User{}, lastErr
}

func (g *GoogleOAuth) fetchOnce(ctx context.Context, client *http.Client) (model.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.UserInfoURL, nil)
	if err != nil {
		return model.User{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return model.User{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return model.User{}, fmt.Errorf("%w: google userinfo: status %d", model.ErrUnauthorized, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return model.User{}, fmt.Errorf("google userinfo: status %d: %s", resp.StatusCode, string(b))
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return model.User{}, err
	}
	if info.ID == "" || info.Email == "" {
		return model.User{}, fmt.Errorf("%w: google profile without id or email", model.ErrUnauthorized)
	}

	name := info.Name
	if name == "" {
		name = localPart(info.Email)
	}
	return model.User{
		ID:       "google:" + info.ID,
		Email:    info.Email,
		Name:     name,
		Image:    info.Picture,
		Provider: "google",
	}, nil
}

// exchangeError treats a 4xx from the token endpoint as a rejected code.
// Transport failures and 5xx answers are upstream errors.
func exchangeError(err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) && re.Response != nil &&
		re.Response.StatusCode >= 400 && re.Response.StatusCode < 500 {
		return fmt.Errorf("%w: oauth exchange: %v", model.ErrUnauthorized, err)
	}
	return fmt.Errorf("oauth exchange: %w", err)
}

type googleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// newState returns a random OAuth state value.
func newState() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
