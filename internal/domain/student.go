package domain

import "time"

// Student is the tenant account that authenticates against the API and owns
// employee records. UUID is the public opaque identifier handed to clients;
// it is assigned at creation and never reassigned.
type Student struct {
	ID           int64
	UUID         string
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
