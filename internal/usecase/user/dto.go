package user

// Outcome is the result of an operation that completed without error.
type Outcome int

const (
	// OutcomeNoChange means the statement ran but affected no rows.
	OutcomeNoChange Outcome = iota
	// OutcomeSucceeded means at least one row was affected.
	OutcomeSucceeded
	// OutcomeNotFound means no row matched the requested ID.
	OutcomeNotFound
)

// String returns a lowercase name for logging.
func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "no_change"
	}
}

// CreateUserRequest represents the input for creating a new user.
type CreateUserRequest struct {
	Name    string `validate:"required"`
	Email   string `validate:"required"`
	Country string `validate:"required"`
}

// CreateUserResponse represents the result of creating a user.
type CreateUserResponse struct {
	ID      int64
	Outcome Outcome
}

// UpdateUserEmailRequest represents the input for replacing a user's email.
type UpdateUserEmailRequest struct {
	ID    int64
	Email string `validate:"required"`
}

// UpdateUserEmailResponse represents the result of an email update.
type UpdateUserEmailResponse struct {
	ID      int64
	Outcome Outcome
}

// DeleteUserRequest represents the input for deleting a user.
type DeleteUserRequest struct {
	ID int64
}

// DeleteUserResponse represents the result of a delete.
type DeleteUserResponse struct {
	ID      int64
	Outcome Outcome
}

// User represents a user record as shown to the operator.
type User struct {
	ID      int64
	Name    string
	Email   string
	Country string
}
