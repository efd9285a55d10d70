// File: internal/request/model.go
package request

import (
	"time"

	"bloodlink_backend/internal/common"
)

// Collection is the Firestore collection holding donation requests. Document
// IDs are store-assigned.
const Collection = "donation_requests"

// Status is the lifecycle state of a donation request.
type Status string

const (
	// StatusActive means the request is open for donor response.
	StatusActive Status = "active"
	// StatusPendingConfirmation means a donor is bound and the recipient has
	// yet to confirm the donation happened.
	StatusPendingConfirmation Status = "pending_confirmation"
	// StatusCompleted and StatusCancelled are terminal.
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// DonationRequest represents a blood donation request document.
//
// Invariant: DonorID is empty exactly while Status is active; it is set in the
// same write that moves the request to pending_confirmation and never cleared.
type DonationRequest struct {
	ID          string     `json:"id" firestore:"-"`
	RecipientID string     `json:"recipientId" firestore:"recipientId"`
	BloodType   string     `json:"bloodType" firestore:"bloodType"`
	Location    string     `json:"location" firestore:"location"`
	Urgency     string     `json:"urgency" firestore:"urgency"`
	Status      Status     `json:"status" firestore:"status"`
	DonorID     string     `json:"donorId,omitempty" firestore:"donorId"`
	CreatedAt   time.Time  `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty" firestore:"cancelledAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty" firestore:"completedAt,omitempty"`
}

// Terminal reports whether no further transitions are permitted.
func (r *DonationRequest) Terminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusCancelled
}

// Respond transitions active -> pending_confirmation and binds the donor.
func (r *DonationRequest) Respond(donorID string, now time.Time) error {
	if r.Status != StatusActive {
		return common.ErrInvalidState.WithDetails("Request is no longer active.")
	}
	r.Status = StatusPendingConfirmation
	r.DonorID = donorID
	return nil
}

// Cancel transitions active -> cancelled. Only the creating recipient may
// cancel; cancelling by the system (stale expiry) uses CancelStale instead.
func (r *DonationRequest) Cancel(callerID string, now time.Time) error {
	if r.RecipientID != callerID {
		return common.ErrForbidden.WithDetails("Unauthorized to cancel this request.")
	}
	return r.cancel(now)
}

// CancelStale is the system-initiated variant of Cancel, used by the expiry
// job. Same transition, no ownership guard.
func (r *DonationRequest) CancelStale(now time.Time) error {
	return r.cancel(now)
}

func (r *DonationRequest) cancel(now time.Time) error {
	if r.Status != StatusActive {
		return common.ErrInvalidState.WithDetails("Can only cancel active requests.")
	}
	r.Status = StatusCancelled
	r.CancelledAt = &now
	return nil
}

// Complete transitions pending_confirmation -> completed. Only the creating
// recipient may confirm. The caller is responsible for updating the bound
// donor's lastDonationDate in the same transaction.
func (r *DonationRequest) Complete(callerID string, now time.Time) error {
	if r.RecipientID != callerID {
		return common.ErrForbidden.WithDetails("Unauthorized to complete this request.")
	}
	if r.Status != StatusPendingConfirmation {
		return common.ErrInvalidState.WithDetails("Request must be in pending_confirmation status to complete.")
	}
	r.Status = StatusCompleted
	r.CompletedAt = &now
	return nil
}

// --- DTOs for API requests ---

// CreateRequest defines the body for creating a donation request.
type CreateRequest struct {
	BloodType string `json:"bloodType" binding:"required,max=8"`
	Location  string `json:"location" binding:"required,max=200"`
	Urgency   string `json:"urgency" binding:"required,max=20"`
}
