package model

import "time"

type Team struct {
	TeamID      string     `json:"teamId"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	CreatedBy   string     `json:"createdBy"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// TeamMember is a membership row joined with the member's user profile.
type TeamMember struct {
	TeamMemberID string  `json:"teamMemberId"`
	UserID       string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Image        *string `json:"image"`
	Role         Role    `json:"role"`
}
