package firebase

import (
	"context"
	"fmt"
	"path/filepath"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"bloodlink_backend/internal/config"
)

// Service provides methods to interact with Firebase Authentication. It is the
// only component that talks to the identity provider; everything else sees the
// verified UID and claims.
type Service struct {
	authClient *auth.Client
	logger     *zap.Logger
}

// NewService initializes the Firebase Admin SDK and creates a new Service.
func NewService(cfg *config.Config, logger *zap.Logger) (*Service, error) {
	var opts []option.ClientOption
	if cfg.FirebaseServiceAccountKeyPath != "" {
		opts = append(opts, option.WithCredentialsFile(filepath.Clean(cfg.FirebaseServiceAccountKeyPath)))
	}

	conf := &firebase.Config{ProjectID: cfg.FirebaseProjectID}
	app, err := firebase.NewApp(context.Background(), conf, opts...)
	if err != nil {
		logger.Error("Failed to initialize Firebase Admin SDK app", zap.Error(err))
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	authClient, err := app.Auth(context.Background())
	if err != nil {
		logger.Error("Failed to get Firebase Auth client", zap.Error(err))
		return nil, fmt.Errorf("error getting Firebase Auth client: %w", err)
	}

	logger.Info("Firebase Admin SDK initialized successfully.")
	return &Service{
		authClient: authClient,
		logger:     logger,
	}, nil
}

// VerifyIDToken verifies a Firebase ID token and returns the token claims.
func (s *Service) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if idToken == "" {
		return nil, fmt.Errorf("ID token must not be empty")
	}

	token, err := s.authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.logger.Warn("Firebase ID token verification failed", zap.Error(err))
		return nil, fmt.Errorf("failed to verify Firebase ID token: %w", err)
	}

	s.logger.Debug("Firebase ID token verified successfully", zap.String("uid", token.UID))
	return token, nil
}

// CreateUser creates a new Firebase Authentication account and returns its UID.
func (s *Service) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	record, err := s.authClient.CreateUser(ctx, params)
	if err != nil {
		s.logger.Warn("Firebase user creation failed", zap.String("email", email), zap.Error(err))
		return "", fmt.Errorf("failed to create Firebase user: %w", err)
	}

	s.logger.Info("Firebase user created", zap.String("uid", record.UID))
	return record.UID, nil
}

// DeleteUser removes a Firebase Authentication account. Used as the
// compensating action when the paired profile write fails after registration.
func (s *Service) DeleteUser(ctx context.Context, uid string) error {
	if err := s.authClient.DeleteUser(ctx, uid); err != nil {
		s.logger.Error("Failed to delete Firebase user", zap.String("uid", uid), zap.Error(err))
		return fmt.Errorf("failed to delete Firebase user: %w", err)
	}
	s.logger.Info("Firebase user deleted", zap.String("uid", uid))
	return nil
}
