package playapi

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/androidpublisher/v3"
	"google.golang.org/api/option"
)

// ServiceFactory creates an Android Publisher API client from a service account key.
type ServiceFactory func(ctx context.Context, jsonKey []byte) (*androidpublisher.Service, error)

// NewService authenticates with the service account key and returns an Android Publisher API client.
func NewService(ctx context.Context, jsonKey []byte) (*androidpublisher.Service, error) {
	creds, err := google.CredentialsFromJSON(ctx, jsonKey, androidpublisher.AndroidpublisherScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account key: %w", err)
	}

	service, err := androidpublisher.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to create Android Publisher client: %w", err)
	}
	return service, nil
}
