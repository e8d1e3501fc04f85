package models

import (
	"time"
)

// MemberRole is a member's role within a campaign.
type MemberRole string

const (
	RolePlayer     MemberRole = "player"
	RoleGameMaster MemberRole = "game_master"
	RoleSpectator  MemberRole = "spectator"
)

// Valid reports whether r is a known role.
func (r MemberRole) Valid() bool {
	switch r {
	case RolePlayer, RoleGameMaster, RoleSpectator:
		return true
	}
	return false
}

// MemberStatus tracks invitation progress.
type MemberStatus string

const (
	StatusInvited MemberStatus = "invited"
	StatusActive  MemberStatus = "active"
)

// Member is a campaign participant other than the owner. Email identifies the
// member within its campaign.
type Member struct {
	Email  string       `json:"email"`
	Role   MemberRole   `json:"role"`
	Status MemberStatus `json:"status"`
}

// Campaign is the top-level container owned by one user.
type Campaign struct {
	ID                string    `json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	UserID            string    `json:"user_id"`
	ImageURL          *string   `json:"image_url"`
	Members           []Member  `json:"members"`
	ImportedScenarios []string  `json:"imported_scenarios"`
}

// GetID lets campaigns be held in client-side stores.
func (c Campaign) GetID() string { return c.ID }

// IsOwner reports whether userID owns the campaign.
func (c *Campaign) IsOwner(userID string) bool {
	return userID != "" && c.UserID == userID
}

// FindMember returns the index of the member with the given email, matched
// case-insensitively, or -1.
func (c *Campaign) FindMember(email string) int {
	email = NormalizeEmail(email)
	for i, m := range c.Members {
		if NormalizeEmail(m.Email) == email {
			return i
		}
	}
	return -1
}

// MemberFor returns the member entry for an email, if any.
func (c *Campaign) MemberFor(email string) (Member, bool) {
	if i := c.FindMember(email); i >= 0 {
		return c.Members[i], true
	}
	return Member{}, false
}
