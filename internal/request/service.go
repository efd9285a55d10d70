// File: internal/request/service.go
package request

import (
	"context"
	"errors"
	"time"

	"bloodlink_backend/internal/common"
	"bloodlink_backend/internal/config"
	"bloodlink_backend/internal/user"

	"go.uber.org/zap"
)

// Service defines the donation-request lifecycle operations.
type Service interface {
	Create(ctx context.Context, recipientID string, req CreateRequest) (string, error)
	ListActive(ctx context.Context, bloodType string) ([]DonationRequest, error)
	ListMine(ctx context.Context, callerID string) ([]DonationRequest, error)
	Respond(ctx context.Context, donorID, requestID string) error
	Cancel(ctx context.Context, callerID, requestID string) error
	Complete(ctx context.Context, callerID, requestID string) error
	ExpireStaleRequests(ctx context.Context) (int, error)
}

type service struct {
	repo   Repository
	users  user.Repository
	cfg    *config.Config
	logger *zap.Logger
}

// NewService creates a new donation-request service.
func NewService(repo Repository, users user.Repository, cfg *config.Config, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		users:  users,
		cfg:    cfg,
		logger: logger,
	}
}

// Create persists a new active request for the given recipient. Field
// presence is enforced by the binding tags before this is reached.
func (s *service) Create(ctx context.Context, recipientID string, req CreateRequest) (string, error) {
	donationRequest := &DonationRequest{
		RecipientID: recipientID,
		BloodType:   req.BloodType,
		Location:    req.Location,
		Urgency:     req.Urgency,
		Status:      StatusActive,
	}

	id, err := s.repo.Create(ctx, donationRequest)
	if err != nil {
		s.logger.Error("Failed to create donation request", zap.String("recipient_id", recipientID), zap.Error(err))
		return "", err
	}

	s.logger.Info("Donation request created",
		zap.String("request_id", id),
		zap.String("recipient_id", recipientID),
		zap.String("blood_type", req.BloodType),
		zap.String("urgency", req.Urgency),
	)
	return id, nil
}

// ListActive returns open requests, optionally filtered by blood type.
func (s *service) ListActive(ctx context.Context, bloodType string) ([]DonationRequest, error) {
	return s.repo.ListActive(ctx, bloodType)
}

// ListMine returns the caller's requests, scoped by their role: recipients
// see requests they created, donors see requests they responded to. The
// caller's profile must exist so the role is known.
func (s *service) ListMine(ctx context.Context, callerID string) ([]DonationRequest, error) {
	profile, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if profile.Role == common.RoleRecipient {
		return s.repo.ListByRecipient(ctx, callerID)
	}
	return s.repo.ListByDonor(ctx, callerID)
}

// Respond binds the donor to an active request. A request that is absent and
// one that exists but is no longer active produce the same not-found answer,
// so callers cannot probe for non-active requests.
func (s *service) Respond(ctx context.Context, donorID, requestID string) error {
	err := s.repo.Respond(ctx, requestID, donorID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrInvalidState) {
			return common.ErrNotFound.WithDetails("Request not found or is no longer active.")
		}
		s.logger.Error("Failed to respond to request", zap.String("request_id", requestID), zap.Error(err))
		return err
	}

	s.logger.Info("Donor responded to request",
		zap.String("request_id", requestID),
		zap.String("donor_id", donorID),
	)
	return nil
}

// Cancel cancels the caller's own active request.
func (s *service) Cancel(ctx context.Context, callerID, requestID string) error {
	if err := s.repo.Cancel(ctx, requestID, callerID); err != nil {
		return err
	}
	s.logger.Info("Donation request cancelled",
		zap.String("request_id", requestID),
		zap.String("recipient_id", callerID),
	)
	return nil
}

// Complete confirms a donation. The repository performs the atomic
// two-document update (request status + donor lastDonationDate); a failure
// leaves neither write applied.
func (s *service) Complete(ctx context.Context, callerID, requestID string) error {
	if err := s.repo.Complete(ctx, requestID, callerID); err != nil {
		return err
	}
	s.logger.Info("Donation completed",
		zap.String("request_id", requestID),
		zap.String("recipient_id", callerID),
	)
	return nil
}

// ExpireStaleRequests cancels active requests older than the configured
// number of days. Called by the expiry job.
func (s *service) ExpireStaleRequests(ctx context.Context) (int, error) {
	days := s.cfg.RequestExpiryDays
	if days <= 0 {
		return 0, nil
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	count, err := s.repo.CancelStale(ctx, cutoff)
	if err != nil {
		return count, err
	}
	if count > 0 {
		s.logger.Info("Stale donation requests cancelled", zap.Int("count", count), zap.Time("cutoff", cutoff))
	}
	return count, nil
}
