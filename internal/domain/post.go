package domain

import "time"

// Post is a blog entry owned by exactly one user. Creator is populated
// by repository reads that expand the creator reference.
type Post struct {
	ID        string
	Title     string
	Content   string
	ImageURL  string
	CreatorID string
	Creator   *User
	CreatedAt time.Time
	UpdatedAt time.Time
}
