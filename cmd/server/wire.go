// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"bloodlink_backend/internal/app"
	"bloodlink_backend/internal/config"
	"bloodlink_backend/internal/firebase"
	"bloodlink_backend/internal/jobs"
	"bloodlink_backend/internal/platform/logger"
	"bloodlink_backend/internal/platform/store"
	"bloodlink_backend/internal/request"
	"bloodlink_backend/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		store.NewClient,

		// Firebase Auth
		firebase.NewService,
		wire.Bind(new(user.IdentityProvider), new(*firebase.Service)),

		// User Module
		user.NewFirestoreRepository,
		user.NewService,
		user.NewHandler,

		// Donation Request Module
		request.NewFirestoreRepository,
		request.NewService,
		request.NewHandler,

		// Jobs
		jobs.NewRequestExpiryJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
