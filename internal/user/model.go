// File: internal/user/model.go
package user

import (
	"time"
)

// Collection is the Firestore collection holding user profiles. Documents are
// keyed by the Firebase Auth UID.
const Collection = "users"

// Profile represents a user's profile document.
type Profile struct {
	ID               string     `json:"id" firestore:"-"` // Firebase Auth UID, the document ID
	Name             string     `json:"name" firestore:"name"`
	Email            string     `json:"email" firestore:"email"`
	Role             string     `json:"role" firestore:"role"`
	BloodType        string     `json:"bloodType,omitempty" firestore:"bloodType,omitempty"`
	LastDonationDate *time.Time `json:"lastDonationDate,omitempty" firestore:"lastDonationDate"`
	CreatedAt        time.Time  `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

// IsDonor reports whether the profile belongs to a donor.
func (p *Profile) IsDonor() bool {
	return p.Role == "donor"
}

// --- DTOs (Data Transfer Objects) for API requests ---

// RegisterRequest defines the structure for registering a new user. The
// password is forwarded to Firebase Auth and never stored here.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6,max=72"`
	Name      string `json:"name" binding:"required,max=100"`
	Role      string `json:"role" binding:"required,oneof=donor recipient"`
	BloodType string `json:"bloodType" binding:"omitempty,max=8"`
}

// UpdateProfileRequest defines the mutable profile fields. Email and role are
// immutable after registration and deliberately not bindable here.
type UpdateProfileRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=100"`
	BloodType *string `json:"bloodType" binding:"omitempty,max=8"`
}
