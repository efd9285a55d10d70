// File: internal/request/repository.go
package request

import (
	"context"
	"time"

	"bloodlink_backend/internal/common"
	"bloodlink_backend/internal/user"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Repository defines persistence for donation requests. The mutating
// operations carry their lifecycle guards inside a Firestore transaction so
// the read-check-write is atomic; two concurrent donors responding to the
// same request can never both win.
type Repository interface {
	Create(ctx context.Context, req *DonationRequest) (string, error)
	FindByID(ctx context.Context, id string) (*DonationRequest, error)
	ListActive(ctx context.Context, bloodType string) ([]DonationRequest, error)
	ListByRecipient(ctx context.Context, uid string) ([]DonationRequest, error)
	ListByDonor(ctx context.Context, uid string) ([]DonationRequest, error)
	Respond(ctx context.Context, id, donorID string) error
	Cancel(ctx context.Context, id, callerID string) error
	Complete(ctx context.Context, id, callerID string) error
	CancelStale(ctx context.Context, olderThan time.Time) (int, error)
}

type firestoreRepository struct {
	client *firestore.Client
	logger *zap.Logger
}

// NewFirestoreRepository creates a new Firestore-backed request repository.
func NewFirestoreRepository(client *firestore.Client, logger *zap.Logger) Repository {
	return &firestoreRepository{client: client, logger: logger}
}

// Create persists a new request and returns the store-assigned ID.
func (r *firestoreRepository) Create(ctx context.Context, req *DonationRequest) (string, error) {
	ref := r.client.Collection(Collection).NewDoc()
	if _, err := ref.Create(ctx, req); err != nil {
		return "", err
	}
	return ref.ID, nil
}

// FindByID retrieves a single request document.
func (r *firestoreRepository) FindByID(ctx context.Context, id string) (*DonationRequest, error) {
	snap, err := r.client.Collection(Collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, common.ErrNotFound.WithDetails("Request not found.")
		}
		return nil, err
	}
	return snapshotToRequest(snap)
}

// ListActive returns all active requests, optionally filtered by exact blood
// type, most recent first. An empty result is not an error.
func (r *firestoreRepository) ListActive(ctx context.Context, bloodType string) ([]DonationRequest, error) {
	q := r.client.Collection(Collection).Where("status", "==", string(StatusActive))
	if bloodType != "" {
		q = q.Where("bloodType", "==", bloodType)
	}
	return r.runQuery(ctx, q.OrderBy("createdAt", firestore.Desc))
}

// ListByRecipient returns all requests created by the given user, most recent first.
func (r *firestoreRepository) ListByRecipient(ctx context.Context, uid string) ([]DonationRequest, error) {
	q := r.client.Collection(Collection).
		Where("recipientId", "==", uid).
		OrderBy("createdAt", firestore.Desc)
	return r.runQuery(ctx, q)
}

// ListByDonor returns all requests the given donor has responded to, most recent first.
func (r *firestoreRepository) ListByDonor(ctx context.Context, uid string) ([]DonationRequest, error) {
	q := r.client.Collection(Collection).
		Where("donorId", "==", uid).
		OrderBy("createdAt", firestore.Desc)
	return r.runQuery(ctx, q)
}

// Respond transitions a request to pending_confirmation and binds the donor,
// all inside one transaction. Returns common.ErrNotFound when the document is
// absent and common.ErrInvalidState when it exists but is no longer active;
// the service collapses the two.
func (r *firestoreRepository) Respond(ctx context.Context, id, donorID string) error {
	ref := r.client.Collection(Collection).Doc(id)
	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		req, err := txGetRequest(tx, ref)
		if err != nil {
			return err
		}
		if err := req.Respond(donorID, time.Now().UTC()); err != nil {
			return err
		}
		return tx.Update(ref, []firestore.Update{
			{Path: "status", Value: string(StatusPendingConfirmation)},
			{Path: "donorId", Value: donorID},
		})
	})
}

// Cancel transitions a request to cancelled inside one transaction, guarding
// ownership and state.
func (r *firestoreRepository) Cancel(ctx context.Context, id, callerID string) error {
	ref := r.client.Collection(Collection).Doc(id)
	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		req, err := txGetRequest(tx, ref)
		if err != nil {
			return err
		}
		if err := req.Cancel(callerID, time.Now().UTC()); err != nil {
			return err
		}
		return tx.Update(ref, []firestore.Update{
			{Path: "status", Value: string(StatusCancelled)},
			{Path: "cancelledAt", Value: firestore.ServerTimestamp},
		})
	})
}

// Complete performs the atomic two-document completion: the request becomes
// completed and the bound donor's lastDonationDate is stamped, in a single
// transaction. Either both writes are visible or neither is.
func (r *firestoreRepository) Complete(ctx context.Context, id, callerID string) error {
	ref := r.client.Collection(Collection).Doc(id)
	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		req, err := txGetRequest(tx, ref)
		if err != nil {
			return err
		}
		if err := req.Complete(callerID, time.Now().UTC()); err != nil {
			return err
		}

		// All reads must happen before any write in a Firestore transaction.
		// A pending_confirmation request always has a donor bound; a missing
		// profile here is data corruption and surfaces as a store failure.
		donorRef := r.client.Collection(user.Collection).Doc(req.DonorID)
		if _, err := tx.Get(donorRef); err != nil {
			r.logger.Error("Donor profile missing during completion",
				zap.String("request_id", id), zap.String("donor_id", req.DonorID), zap.Error(err))
			return err
		}

		if err := tx.Update(ref, []firestore.Update{
			{Path: "status", Value: string(StatusCompleted)},
			{Path: "completedAt", Value: firestore.ServerTimestamp},
		}); err != nil {
			return err
		}
		return tx.Update(donorRef, []firestore.Update{
			{Path: "lastDonationDate", Value: firestore.ServerTimestamp},
		})
	})
}

// CancelStale cancels active requests created before the cutoff. Each
// document gets its own transaction so a request that a donor responds to
// mid-sweep is simply skipped.
func (r *firestoreRepository) CancelStale(ctx context.Context, olderThan time.Time) (int, error) {
	q := r.client.Collection(Collection).
		Where("status", "==", string(StatusActive)).
		Where("createdAt", "<", olderThan)

	iter := q.Documents(ctx)
	defer iter.Stop()

	cancelled := 0
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return cancelled, err
		}

		ref := snap.Ref
		err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
			req, err := txGetRequest(tx, ref)
			if err != nil {
				return err
			}
			if err := req.CancelStale(time.Now().UTC()); err != nil {
				return err
			}
			return tx.Update(ref, []firestore.Update{
				{Path: "status", Value: string(StatusCancelled)},
				{Path: "cancelledAt", Value: firestore.ServerTimestamp},
			})
		})
		if err != nil {
			// Transitioned since the query ran; nothing to do.
			if ok := isLifecycleConflict(err); ok {
				continue
			}
			return cancelled, err
		}
		cancelled++
	}
	return cancelled, nil
}

func (r *firestoreRepository) runQuery(ctx context.Context, q firestore.Query) ([]DonationRequest, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	requests := make([]DonationRequest, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		req, err := snapshotToRequest(snap)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, nil
}

func txGetRequest(tx *firestore.Transaction, ref *firestore.DocumentRef) (*DonationRequest, error) {
	snap, err := tx.Get(ref)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, common.ErrNotFound.WithDetails("Request not found.")
		}
		return nil, err
	}
	return snapshotToRequest(snap)
}

func snapshotToRequest(snap *firestore.DocumentSnapshot) (*DonationRequest, error) {
	var req DonationRequest
	if err := snap.DataTo(&req); err != nil {
		return nil, err
	}
	req.ID = snap.Ref.ID
	return &req, nil
}

func isLifecycleConflict(err error) bool {
	apiErr, ok := common.IsAPIError(err)
	if !ok {
		return false
	}
	return apiErr.Code == common.ErrInvalidState.Code || apiErr.Code == common.ErrNotFound.Code
}
