// File: internal/request/model_test.go
package request

import (
	"errors"
	"testing"
	"time"

	"bloodlink_backend/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(status Status) *DonationRequest {
	r := &DonationRequest{
		ID:          "req-1",
		RecipientID: "recipient-1",
		BloodType:   "O+",
		Location:    "Kathmandu",
		Urgency:     "high",
		Status:      status,
		CreatedAt:   time.Now().Add(-time.Hour),
	}
	if status == StatusPendingConfirmation || status == StatusCompleted {
		r.DonorID = "donor-1"
	}
	return r
}

func TestRespondTransition(t *testing.T) {
	now := time.Now().UTC()

	t.Run("active request accepts a donor", func(t *testing.T) {
		r := newRequest(StatusActive)
		require.NoError(t, r.Respond("donor-1", now))
		assert.Equal(t, StatusPendingConfirmation, r.Status)
		assert.Equal(t, "donor-1", r.DonorID)
	})

	t.Run("non-active states reject a response", func(t *testing.T) {
		for _, status := range []Status{StatusPendingConfirmation, StatusCompleted, StatusCancelled} {
			r := newRequest(status)
			donorBefore := r.DonorID
			err := r.Respond("donor-2", now)
			require.Error(t, err, "status %s", status)
			assert.True(t, errors.Is(err, common.ErrInvalidState), "status %s", status)
			assert.Equal(t, status, r.Status, "status must not change on rejected respond")
			assert.Equal(t, donorBefore, r.DonorID, "donor binding must not change on rejected respond")
		}
	})
}

func TestCancelTransition(t *testing.T) {
	now := time.Now().UTC()

	t.Run("owner cancels an active request", func(t *testing.T) {
		r := newRequest(StatusActive)
		require.NoError(t, r.Cancel("recipient-1", now))
		assert.Equal(t, StatusCancelled, r.Status)
		require.NotNil(t, r.CancelledAt)
		assert.Equal(t, now, *r.CancelledAt)
	})

	t.Run("non-owner is forbidden regardless of state", func(t *testing.T) {
		for _, status := range []Status{StatusActive, StatusPendingConfirmation, StatusCompleted, StatusCancelled} {
			r := newRequest(status)
			err := r.Cancel("someone-else", now)
			require.Error(t, err, "status %s", status)
			assert.True(t, errors.Is(err, common.ErrForbidden), "status %s", status)
			assert.Equal(t, status, r.Status)
		}
	})

	t.Run("owner cannot cancel a non-active request", func(t *testing.T) {
		for _, status := range []Status{StatusPendingConfirmation, StatusCompleted, StatusCancelled} {
			r := newRequest(status)
			err := r.Cancel("recipient-1", now)
			require.Error(t, err, "status %s", status)
			assert.True(t, errors.Is(err, common.ErrInvalidState), "status %s", status)
		}
	})

	t.Run("system-initiated stale cancel skips the ownership guard", func(t *testing.T) {
		r := newRequest(StatusActive)
		require.NoError(t, r.CancelStale(now))
		assert.Equal(t, StatusCancelled, r.Status)

		pending := newRequest(StatusPendingConfirmation)
		err := pending.CancelStale(now)
		assert.True(t, errors.Is(err, common.ErrInvalidState))
	})
}

func TestCompleteTransition(t *testing.T) {
	now := time.Now().UTC()

	t.Run("owner completes a pending request", func(t *testing.T) {
		r := newRequest(StatusPendingConfirmation)
		require.NoError(t, r.Complete("recipient-1", now))
		assert.Equal(t, StatusCompleted, r.Status)
		require.NotNil(t, r.CompletedAt)
		assert.Equal(t, now, *r.CompletedAt)
		assert.Equal(t, "donor-1", r.DonorID, "donor binding survives completion")
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		r := newRequest(StatusPendingConfirmation)
		err := r.Complete("someone-else", now)
		assert.True(t, errors.Is(err, common.ErrForbidden))
		assert.Equal(t, StatusPendingConfirmation, r.Status)
	})

	t.Run("only pending_confirmation can complete", func(t *testing.T) {
		for _, status := range []Status{StatusActive, StatusCompleted, StatusCancelled} {
			r := newRequest(status)
			err := r.Complete("recipient-1", now)
			require.Error(t, err, "status %s", status)
			assert.True(t, errors.Is(err, common.ErrInvalidState), "status %s", status)
		}
	})
}

// Once a request reaches a terminal state, no transition may move it again.
func TestTerminalStatesAreFinal(t *testing.T) {
	now := time.Now().UTC()

	for _, status := range []Status{StatusCompleted, StatusCancelled} {
		r := newRequest(status)
		assert.True(t, r.Terminal())

		assert.Error(t, r.Respond("donor-2", now))
		assert.Error(t, r.Cancel("recipient-1", now))
		assert.Error(t, r.Complete("recipient-1", now))
		assert.Error(t, r.CancelStale(now))
		assert.Equal(t, status, r.Status)
	}

	assert.False(t, newRequest(StatusActive).Terminal())
	assert.False(t, newRequest(StatusPendingConfirmation).Terminal())
}

// DonorID is set exactly when the request has left the active state.
func TestDonorBindingInvariant(t *testing.T) {
	now := time.Now().UTC()

	r := newRequest(StatusActive)
	assert.Empty(t, r.DonorID)

	require.NoError(t, r.Respond("donor-1", now))
	assert.NotEmpty(t, r.DonorID)

	require.NoError(t, r.Complete("recipient-1", now))
	assert.NotEmpty(t, r.DonorID)
}
