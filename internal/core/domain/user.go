package domain

import (
	"regexp"
	"time"
)

// Role identifies what a user may do. Roles are disjoint: a Mayor is not a
// Citizen and a Moderator outranks nobody.
type Role string

const (
	RoleCitizen   Role = "Citizen"
	RoleMayor     Role = "Mayor"
	RoleModerator Role = "Moderator"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCitizen, RoleMayor, RoleModerator:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// Identity is the authenticated caller resolved from a token. It lives only
// for the duration of one request.
type Identity struct {
	DocumentID string
	Role       Role
}

// User models a registered participant. DocumentID is the national ID and
// primary key; District is only meaningful for mayors.
type User struct {
	DocumentID   string    `json:"document" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Address      string    `json:"address,omitempty" bson:"address,omitempty"`
	Role         Role      `json:"role" bson:"role"`
	District     string    `json:"district,omitempty" bson:"district,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Identity projects the user onto the request-scoped caller identity.
func (u *User) Identity() Identity {
	return Identity{DocumentID: u.DocumentID, Role: u.Role}
}

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+$`)

// ValidEmail reports whether email has the accepted address shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
