package domain

import "time"

// User represents a registered author. PostIDs mirrors the set of posts
// whose Creator is this user and is kept in sync on post create/delete.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Status       string
	PostIDs      []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DefaultStatus is assigned to new users on registration.
const DefaultStatus = "I am new!"
