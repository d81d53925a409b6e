package analytics

import (
	"context"
	"fmt"

	"careerpath-backend/internal/events"
	"careerpath-backend/internal/shared/telemetry"
)

// SyncHandler mirrors profile changes into the analytics store.
type SyncHandler struct {
	Repo Repo
}

// NewSyncHandler constructs a SyncHandler.
func NewSyncHandler(repo Repo) *SyncHandler {
	return &SyncHandler{Repo: repo}
}

// HandleProfileChanged applies a profile-changed event: get-or-create the
// candidate and personal-information rows, then replace the skill set.
func (h *SyncHandler) HandleProfileChanged(ctx context.Context, evt events.ProfileChanged) error {
	err := h.Repo.ApplyProfileSync(ctx, ProfileSync{
		UserID:    evt.UserID,
		FirstName: evt.FirstName,
		LastName:  evt.LastName,
		Skills:    evt.Skills,
		UpdatedAt: evt.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("apply profile sync: %w", err)
	}
	telemetry.Info("analytics.profile_synced", map[string]any{
		"user_id":     evt.UserID,
		"skill_count": len(evt.Skills),
	})
	return nil
}

var _ events.Handler = (*SyncHandler)(nil)
