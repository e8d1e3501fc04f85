package models

import "time"

// Trait is a free-form key/value pair. Keys may repeat and order is kept.
type Trait struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type NPC struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CampaignID  string    `json:"campaign_id"`
	UserID      string    `json:"user_id"`
	ImageURL    *string   `json:"image_url"`
	Traits      []Trait   `json:"traits"`
}

func (n NPC) GetID() string { return n.ID }
