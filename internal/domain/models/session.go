package models

import "time"

// DateLayout is the ISO calendar date format used for session dates.
const DateLayout = "2006-01-02"

// Session is a dated play log. ScenarioID is a weak link: deleting the
// scenario clears it.
type Session struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Title      string    `json:"title"`
	Date       string    `json:"date"`
	Notes      string    `json:"notes"`
	CampaignID string    `json:"campaign_id"`
	UserID     string    `json:"user_id"`
	ScenarioID *string   `json:"scenario_id"`
}

func (s Session) GetID() string { return s.ID }
