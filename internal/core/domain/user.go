package domain

import (
	"fmt"
	"time"
)

// Claim roles assignable through the role authority.
const (
	RoleAdmin       = "admin"
	RoleMitarbeiter = "mitarbeiter"
)

// Display labels shown on the profile document.
const (
	DisplayAdmin       = "Administrator"
	DisplayMitarbeiter = "Mitarbeiter"
)

// TrustClaims is the server-issued identity metadata for a principal.
// Two legal encodings mark an administrator: Role == "admin" or Admin == true.
// Extra holds unrelated claims that a role change must not clobber.
type TrustClaims struct {
	Role  string         `json:"role,omitempty"`
	Admin bool           `json:"admin,omitempty"`
	Extra map[string]any `json:"-"`
}

// IsAdmin reports whether either admin encoding is present.
func (c TrustClaims) IsAdmin() bool {
	return c.Role == RoleAdmin || c.Admin
}

// User is the application-level profile behind an authenticated principal.
// IsAdmin is authoritative only after reconciliation against the trust
// claims; the stored copy is a display hint.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email,omitempty"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	Avatar       string     `json:"avatar,omitempty"`
	Score        int64      `json:"score"`
	Badges       []string   `json:"badges,omitempty"`
	IsAdmin      bool       `json:"is_admin"`
	Locked       bool       `json:"locked,omitempty"`
	LockedAt     *time.Time `json:"locked_at,omitempty"`
	Birthday     string     `json:"birthday,omitempty"`
	MentorID     string     `json:"mentor_id,omitempty"`
	Mentees      int64      `json:"mentees"`
	GamesPlayed  int64      `json:"games_played"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// DisplayRoleFor maps a claim role to the profile display label.
func DisplayRoleFor(claimRole string) string {
	if claimRole == RoleAdmin {
		return DisplayAdmin
	}
	return DisplayMitarbeiter
}

// DefaultAvatarURL derives a deterministic placeholder avatar from the
// principal id, so repeated profile synthesis yields the same picture.
func DefaultAvatarURL(principalID string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/100/100", principalID)
}
