// File: internal/platform/store/firestore.go
package store

import (
	"context"
	"fmt"
	"path/filepath"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"bloodlink_backend/internal/config"
)

// NewClient creates the process-wide Firestore client. The returned cleanup
// function closes the client and is handed to the injector so it runs on
// shutdown. When FIRESTORE_EMULATOR_HOST is set the client library routes to
// the emulator on its own.
func NewClient(cfg *config.Config, logger *zap.Logger) (*firestore.Client, func(), error) {
	var opts []option.ClientOption
	if cfg.FirebaseServiceAccountKeyPath != "" && !cfg.UsesEmulator() {
		opts = append(opts, option.WithCredentialsFile(filepath.Clean(cfg.FirebaseServiceAccountKeyPath)))
	}

	client, err := firestore.NewClient(context.Background(), cfg.FirebaseProjectID, opts...)
	if err != nil {
		logger.Error("Failed to initialize Firestore client", zap.Error(err))
		return nil, nil, fmt.Errorf("error initializing Firestore client: %w", err)
	}

	logger.Info("Firestore client initialized",
		zap.String("project_id", cfg.FirebaseProjectID),
		zap.Bool("emulator", cfg.UsesEmulator()),
	)

	cleanup := func() {
		if err := client.Close(); err != nil {
			logger.Warn("Error closing Firestore client", zap.Error(err))
		}
	}
	return client, cleanup, nil
}
