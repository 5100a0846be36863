package domain

// Credentials is the transient sign-in / sign-up input. It is never persisted.
type Credentials struct {
	Email    string
	Password string
}

// User is the account record returned by the API
type User struct {
	ID    string
	Email string
	Name  string
}
