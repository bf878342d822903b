package auth

import (
	"context"

	"golang.org/x/oauth2"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// FetchUser retrieves the provider profile for the exchanged token.
//
// The profile's Id field is the stable provider-scoped identifier
// a local record is keyed by.
func (s *Service) FetchUser(ctx context.Context, token *oauth2.Token) (*goauth2.Userinfo, error) {
	// Create oauth2 service
	service, err := goauth2.NewService(ctx, option.WithTokenSource(s.config.TokenSource(ctx, token)))
	if err != nil {
		return nil, err
	}

	// Fetch user data with oauth2 service
	user, err := service.Userinfo.Get().Do()
	if err != nil {
		return nil, err
	}

	return user, nil
}
