package models

import "time"

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	PassHash  []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Caller is the identity fact supplied with every request.
// The zero value is an anonymous caller.
type Caller struct {
	UserID int64
}

func Anonymous() Caller { return Caller{} }

func (c Caller) Authenticated() bool { return c.UserID > 0 }
