// File: internal/user/repository.go
package user

import (
	"context"

	"bloodlink_backend/internal/common"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Repository defines the interface for user profile persistence.
type Repository interface {
	Create(ctx context.Context, profile *Profile) error
	FindByID(ctx context.Context, uid string) (*Profile, error)
	Update(ctx context.Context, uid string, fields map[string]interface{}) error
}

type firestoreRepository struct {
	client *firestore.Client
	logger *zap.Logger
}

// NewFirestoreRepository creates a new Firestore-backed user repository.
func NewFirestoreRepository(client *firestore.Client, logger *zap.Logger) Repository {
	return &firestoreRepository{client: client, logger: logger}
}

// Create writes a new profile document keyed by the Firebase Auth UID. Fails
// if a document already exists under that UID.
func (r *firestoreRepository) Create(ctx context.Context, profile *Profile) error {
	_, err := r.client.Collection(Collection).Doc(profile.ID).Create(ctx, profile)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return common.ErrConflict.WithDetails("A profile already exists for this user.")
		}
		return err
	}
	return nil
}

// FindByID retrieves a profile document by Firebase Auth UID.
func (r *firestoreRepository) FindByID(ctx context.Context, uid string) (*Profile, error) {
	snap, err := r.client.Collection(Collection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, common.ErrNotFound.WithDetails("User profile not found.")
		}
		return nil, err
	}

	var profile Profile
	if err := snap.DataTo(&profile); err != nil {
		return nil, err
	}
	profile.ID = snap.Ref.ID
	return &profile, nil
}

// Update applies a partial update to an existing profile document.
func (r *firestoreRepository) Update(ctx context.Context, uid string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}

	_, err := r.client.Collection(Collection).Doc(uid).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return common.ErrNotFound.WithDetails("User profile not found.")
		}
		return err
	}
	return nil
}
