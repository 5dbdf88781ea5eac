package user

// User represents one row of the users table.
type User struct {
	ID      int64  // ID is assigned by the database and never changes
	Name    string // Name of the user
	Email   string // Email is the only field that can be updated
	Country string // Country of the user
}
