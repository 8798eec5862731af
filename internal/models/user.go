package models

// UserType is the role of a signed-in user.
type UserType string

const (
	UserEmployee UserType = "Employee"
	UserAdmin    UserType = "Admin"
)

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the user's email address (unique). Used for login and to
	// stamp the bills the user creates.
	Email string

	Type UserType

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}

// NewUser creates a user with the given credentials. ID and timestamps are
// filled in by the store.
func NewUser(email string, userType UserType, passwordHash string) *User {
	return &User{
		Email:        email,
		Type:         userType,
		PasswordHash: passwordHash,
	}
}

// SessionUser is the identity persisted in the client session under the
// "user" key.
type SessionUser struct {
	Type  UserType `json:"type"`
	Email string   `json:"email,omitempty"`
}

// IsEmployee reports whether the session belongs to an employee.
func (u SessionUser) IsEmployee() bool {
	return u.Type == UserEmployee
}
