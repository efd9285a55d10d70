// File: internal/user/service.go
package user

import (
	"context"

	"bloodlink_backend/internal/common"

	"go.uber.org/zap"
)

// IdentityProvider is the slice of the identity service the user module needs.
// Satisfied by firebase.Service.
type IdentityProvider interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	DeleteUser(ctx context.Context, uid string) error
}

// Service defines user profile operations.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (string, error)
	GetProfile(ctx context.Context, uid string) (*Profile, error)
	UpdateProfile(ctx context.Context, uid string, req UpdateProfileRequest) error
}

type service struct {
	repo     Repository
	identity IdentityProvider
	logger   *zap.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, identity IdentityProvider, logger *zap.Logger) Service {
	return &service{
		repo:     repo,
		identity: identity,
		logger:   logger,
	}
}

// Register creates a Firebase Auth account and the paired profile document.
// If the profile write fails the auth account is deleted again so no dangling
// identity is left behind.
func (s *service) Register(ctx context.Context, req RegisterRequest) (string, error) {
	if req.Role == common.RoleDonor && req.BloodType == "" {
		return "", common.ErrBadRequest.WithDetails("Blood type is required for donors.")
	}

	uid, err := s.identity.CreateUser(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		s.logger.Error("Failed to create identity account", zap.String("email", req.Email), zap.Error(err))
		return "", common.ErrInternalServer.WithDetails("Error creating user.")
	}

	profile := &Profile{
		ID:    uid,
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	}
	if req.Role == common.RoleDonor {
		profile.BloodType = req.BloodType
		profile.LastDonationDate = nil // no donation recorded yet
	}

	if err := s.repo.Create(ctx, profile); err != nil {
		s.logger.Error("Failed to create profile document, rolling back identity account",
			zap.String("uid", uid), zap.Error(err))
		if delErr := s.identity.DeleteUser(ctx, uid); delErr != nil {
			// The identity record is now dangling; this needs manual cleanup.
			s.logger.Error("Compensating identity delete failed", zap.String("uid", uid), zap.Error(delErr))
		}
		return "", common.ErrInternalServer.WithDetails("Error creating user.")
	}

	s.logger.Info("User registered successfully", zap.String("uid", uid), zap.String("role", req.Role))
	return uid, nil
}

// GetProfile retrieves the caller's profile.
func (s *service) GetProfile(ctx context.Context, uid string) (*Profile, error) {
	return s.repo.FindByID(ctx, uid)
}

// UpdateProfile applies a merge-update of the mutable profile fields. Email
// and role never reach this path; lastDonationDate is owned by the donation
// lifecycle and is not client-writable either.
func (s *service) UpdateProfile(ctx context.Context, uid string, req UpdateProfileRequest) error {
	fields := make(map[string]interface{})
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.BloodType != nil {
		fields["bloodType"] = *req.BloodType
	}
	if len(fields) == 0 {
		return nil
	}

	if err := s.repo.Update(ctx, uid, fields); err != nil {
		return err
	}
	s.logger.Info("Profile updated", zap.String("uid", uid))
	return nil
}
