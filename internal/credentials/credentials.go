// Package credentials turns the Google tokens stored for a household member
// into an authorized HTTP client, refreshing an expired access token once.
package credentials

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"

	"gagyebu/internal/config"
	apperrors "gagyebu/internal/errors"
	"gagyebu/internal/logger"
	"gagyebu/internal/models"
)

// Handle is an authorized session for one member's drive.
type Handle struct {
	Email  string
	Role   models.Role
	Client *http.Client
}

// Resolver builds Handles from stored credentials.
type Resolver struct {
	oauth      *oauth2.Config
	httpClient *http.Client
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithEndpoint points token refreshes at a different OAuth2 endpoint.
func WithEndpoint(endpoint oauth2.Endpoint) Option {
	return func(r *Resolver) {
		r.oauth.Endpoint = endpoint
	}
}

// WithHTTPClient sets the client used for token exchange and as the
// transport under the authorized client.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Resolver) {
		r.httpClient = client
	}
}

// NewResolver returns a Resolver refreshing tokens with the given OAuth client.
func NewResolver(clientID, clientSecret string, opts ...Option) *Resolver {
	r := &Resolver{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{drive.DriveReadonlyScope},
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns an authorized Handle for member. An expired access token is
// refreshed here so that a bad refresh token surfaces before any drive call.
// Renewed tokens are not written back.
func (r *Resolver) Resolve(ctx context.Context, member config.Member) (*Handle, error) {
	log := logger.With("owner", member.Email, "role", member.Role)

	if strings.TrimSpace(member.AccessToken) == "" {
		log.Warn("no access token stored")
		return nil, apperrors.ErrAuthenticationRequired
	}

	if r.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, r.httpClient)
	}

	tok := &oauth2.Token{
		AccessToken:  member.AccessToken,
		RefreshToken: member.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       member.TokenExpiry,
	}

	if !tok.Valid() {
		if tok.RefreshToken == "" {
			log.Warn("access token expired and no refresh token stored")
			return nil, apperrors.ErrRefreshUnavailable
		}
		fresh, err := r.oauth.TokenSource(ctx, tok).Token()
		if err != nil {
			log.Errorw("token refresh failed", "error", err)
			return nil, apperrors.Wrap(apperrors.ErrCredentialExpired, err)
		}
		log.Info("access token refreshed")
		tok = fresh
	}

	ts := oauth2.ReuseTokenSource(tok, r.oauth.TokenSource(ctx, tok))
	return &Handle{
		Email:  member.Email,
		Role:   member.Role,
		Client: oauth2.NewClient(ctx, ts),
	}, nil
}
