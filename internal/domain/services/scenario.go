package services

import (
	"context"

	"rpgmanager/internal/content"
	"rpgmanager/internal/domain/models"
)

type CreateScenarioRequest struct {
	CampaignID  string            `json:"campaign_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Content     *content.Document `json:"content"`
}

// UpdateScenarioRequest replaces the given fields. Content, when set, replaces
// the whole document.
type UpdateScenarioRequest struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Content     *content.Document `json:"content"`
}

// EditResult is the scenario after an edit batch. Created[i] holds the id
// added by command i, or "".
type EditResult struct {
	Scenario *models.Scenario `json:"scenario"`
	Created  []string         `json:"created"`
}

// ImportResult reports a scenario clone batch item by item.
type ImportResult struct {
	Summary ImportSummary `json:"summary"`
	Items   []ImportItem  `json:"items"`
}

// ImportSummary contains aggregate counts for an import batch
type ImportSummary struct {
	Requested int `json:"requested"`
	Cloned    int `json:"cloned"`
	Failed    int `json:"failed"`
}

// ImportItem is the outcome for one source scenario.
type ImportItem struct {
	SourceID   string `json:"source_id"`
	ScenarioID string `json:"scenario_id,omitempty"`
	Action     string `json:"action"` // "cloned" or "failed"
	Error      string `json:"error,omitempty"`
}

type ScenarioService interface {
	CreateScenario(ctx context.Context, actor models.Actor, req *CreateScenarioRequest) (*models.Scenario, error)
	GetScenario(ctx context.Context, actor models.Actor, id string) (*models.Scenario, error)
	ListScenarios(ctx context.Context, actor models.Actor, campaignID string) ([]models.Scenario, error)
	// ListAllScenarios lists every scenario the actor can see, for the import picker.
	ListAllScenarios(ctx context.Context, actor models.Actor) ([]models.Scenario, error)
	UpdateScenario(ctx context.Context, actor models.Actor, id string, req *UpdateScenarioRequest) (*models.Scenario, error)
	DeleteScenario(ctx context.Context, actor models.Actor, id string) error

	// EditContent applies commands in order and saves the document once.
	// If a command fails nothing is saved.
	EditContent(ctx context.Context, actor models.Actor, id string, cmds []content.Command) (*EditResult, error)

	// ImportScenarios clones each source into the target campaign in order.
	// Failed items are recorded and skipped; successful clones are kept.
	ImportScenarios(ctx context.Context, actor models.Actor, targetCampaignID string, sourceIDs []string) (*ImportResult, error)
}
