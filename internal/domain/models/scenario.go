package models

import (
	"time"

	"rpgmanager/internal/content"
)

// Scenario is a campaign-scoped narrative document.
type Scenario struct {
	ID          string           `json:"id"`
	CreatedAt   time.Time        `json:"created_at"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	CampaignID  string           `json:"campaign_id"`
	UserID      string           `json:"user_id"`
	Content     content.Document `json:"content"`
	// CampaignTitle is only filled by listings that span campaigns.
	CampaignTitle string `json:"campaign_title,omitempty"`
}

func (s Scenario) GetID() string { return s.ID }
