// Package oauth wraps the Google authorization-code flow used for sign-in.
package oauth

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// stateTTL bounds how long a sign-in round trip may take.
const stateTTL = 10 * time.Minute

var ErrInvalidState = errors.New("invalid oauth state")

type GoogleService interface {
	// NewState returns a signed, time-limited state value.
	NewState() (string, error)
	// VerifyState checks the signature and age of a state value.
	VerifyState(state string) error
	// AuthURL is where the browser is sent to consent.
	AuthURL(state string) string
	// Profile exchanges the code and fetches the signed-in Google profile.
	Profile(ctx context.Context, code string) (GoogleProfile, error)
}

type GoogleProfile struct {
	GoogleID      string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

type GoogleServiceImpl struct {
	config      *oauth2.Config
	stateSecret []byte
	userInfoURL string
	now         func() time.Time
}

func NewGoogleService(clientID, clientSecret, redirectURL, stateSecret string) GoogleService {
	return &GoogleServiceImpl{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		stateSecret: []byte(stateSecret),
		userInfoURL: userInfoURL,
		now:         time.Now,
	}
}

func (g *GoogleServiceImpl) sign(payload string) string {
	mac := hmac.New(sha256.New, g.stateSecret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// NewState implements GoogleService. The value is nonce.unix.signature.
func (g *GoogleServiceImpl) NewState() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	payload := base64.RawURLEncoding.EncodeToString(b) + "." + strconv.FormatInt(g.now().Unix(), 10)
	return payload + "." + g.sign(payload), nil
}

// VerifyState implements GoogleService.
func (g *GoogleServiceImpl) VerifyState(state string) error {
	i := strings.LastIndexByte(state, '.')
	if i <= 0 {
		return ErrInvalidState
	}
	payload, sig := state[:i], state[i+1:]
	if !hmac.Equal([]byte(sig), []byte(g.sign(payload))) {
		return ErrInvalidState
	}

	parts := strings.SplitN(payload, ".", 2)
	if len(parts) != 2 {
		return ErrInvalidState
	}
	issued, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return ErrInvalidState
	}
	if g.now().Sub(time.Unix(issued, 0)) > stateTTL {
		return ErrInvalidState
	}
	return nil
}

func (g *GoogleServiceImpl) AuthURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (g *GoogleServiceImpl) Profile(ctx context.Context, code string) (GoogleProfile, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return GoogleProfile{}, fmt.Errorf("failed to exchange code: %w", err)
	}

	client := g.config.Client(ctx, token)
	resp, err := client.Get(g.userInfoURL)
	if err != nil {
		return GoogleProfile{}, fmt.Errorf("failed to fetch google profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return GoogleProfile{}, fmt.Errorf("google profile request failed with status %d", resp.StatusCode)
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return GoogleProfile{}, fmt.Errorf("failed to decode google profile: %w", err)
	}
	return profile, nil
}
