// File: internal/common/context_keys.go
package common

const (
	// AuthorizationHeader is the header name for authorization token
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the prefix for Bearer tokens
	AuthorizationTypeBearer = "Bearer"
	// UserIDKey is the context key for storing the authenticated user's Firebase UID
	UserIDKey = "userID"
	// UserEmailKey is the context key for storing the authenticated user's email
	UserEmailKey = "userEmail"
	// UserClaimsKey stores the verified Firebase token claims
	UserClaimsKey = "userClaims"
)

// User roles as stored on the profile document.
const (
	RoleDonor     = "donor"
	RoleRecipient = "recipient"
)
