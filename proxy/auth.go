package proxy

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/viant/scy/auth/authorizer"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// newOAuthHTTPClient builds an HTTP client that attaches bearer tokens
// obtained with the client credentials grant of the referenced OAuth2 config.
func newOAuthHTTPClient(ctx context.Context, configURL string) (*http.Client, error) {
	auth := authorizer.New()
	oAuthConfig := &authorizer.OAuthConfig{ConfigURL: configURL}
	if err := auth.EnsureConfig(ctx, oAuthConfig); err != nil {
		return nil, err
	}
	cfg := oAuthConfig.Config
	credentials := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.Endpoint.TokenURL,
		Scopes:       cfg.Scopes,
	}
	source := oauth2.ReuseTokenSource(nil, &jwtExpirySource{source: credentials.TokenSource(ctx)})
	return oauth2.NewClient(ctx, source), nil
}

// jwtExpirySource backfills token expiry from the access token exp claim when
// the token endpoint omits expires_in, so ReuseTokenSource refreshes on time.
type jwtExpirySource struct {
	source oauth2.TokenSource
}

func (s *jwtExpirySource) Token() (*oauth2.Token, error) {
	token, err := s.source.Token()
	if err != nil {
		return nil, err
	}
	if token.Expiry.IsZero() {
		if expiry, ok := jwtExpiry(token.AccessToken); ok {
			token.Expiry = expiry
		}
	}
	return token, nil
}

func jwtExpiry(raw string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}
	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return time.Time{}, false
	}
	return expiry.Time, true
}
