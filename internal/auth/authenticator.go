package auth

import (
	"context"

	"github.com/mmynk/billed/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password, OAuth, etc.)
// without changing the web layer.
type Authenticator interface {
	// Register creates a new account with the given email, role and credential.
	Register(ctx context.Context, email string, userType models.UserType, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if successful.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
