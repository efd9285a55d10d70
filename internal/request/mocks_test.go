// File: internal/request/mocks_test.go
package request

import (
	"context"
	"time"

	"bloodlink_backend/internal/user"

	"github.com/stretchr/testify/mock"
)

// MockRepository is a testify mock of the request Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, req *DonationRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*DonationRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*DonationRequest), args.Error(1)
}

func (m *MockRepository) ListActive(ctx context.Context, bloodType string) ([]DonationRequest, error) {
	args := m.Called(ctx, bloodType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]DonationRequest), args.Error(1)
}

func (m *MockRepository) ListByRecipient(ctx context.Context, uid string) ([]DonationRequest, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]DonationRequest), args.Error(1)
}

func (m *MockRepository) ListByDonor(ctx context.Context, uid string) ([]DonationRequest, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]DonationRequest), args.Error(1)
}

func (m *MockRepository) Respond(ctx context.Context, id, donorID string) error {
	args := m.Called(ctx, id, donorID)
	return args.Error(0)
}

func (m *MockRepository) Cancel(ctx context.Context, id, callerID string) error {
	args := m.Called(ctx, id, callerID)
	return args.Error(0)
}

func (m *MockRepository) Complete(ctx context.Context, id, callerID string) error {
	args := m.Called(ctx, id, callerID)
	return args.Error(0)
}

func (m *MockRepository) CancelStale(ctx context.Context, olderThan time.Time) (int, error) {
	args := m.Called(ctx, olderThan)
	return args.Int(0), args.Error(1)
}

// MockUserRepository is a testify mock of the user Repository, used for the
// role lookup in ListMine.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, profile *user.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, uid string) (*user.Profile, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Profile), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, uid string, fields map[string]interface{}) error {
	args := m.Called(ctx, uid, fields)
	return args.Error(0)
}

// MockService is a testify mock of the request Service, used by handler tests.
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, recipientID string, req CreateRequest) (string, error) {
	args := m.Called(ctx, recipientID, req)
	return args.String(0), args.Error(1)
}

func (m *MockService) ListActive(ctx context.Context, bloodType string) ([]DonationRequest, error) {
	args := m.Called(ctx, bloodType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]DonationRequest), args.Error(1)
}

func (m *MockService) ListMine(ctx context.Context, callerID string) ([]DonationRequest, error) {
	args := m.Called(ctx, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]DonationRequest), args.Error(1)
}

func (m *MockService) Respond(ctx context.Context, donorID, requestID string) error {
	args := m.Called(ctx, donorID, requestID)
	return args.Error(0)
}

func (m *MockService) Cancel(ctx context.Context, callerID, requestID string) error {
	args := m.Called(ctx, callerID, requestID)
	return args.Error(0)
}

func (m *MockService) Complete(ctx context.Context, callerID, requestID string) error {
	args := m.Called(ctx, callerID, requestID)
	return args.Error(0)
}

func (m *MockService) ExpireStaleRequests(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
