package health

import (
	"context"
	"database/sql"
	"time"
)

// Service encapsulates health-related checks for both stores.
type Service struct {
	profileDB   *sql.DB
	analyticsDB *sql.DB
}

// NewService constructs a new health service. Either database may be nil
// when the process runs on in-memory stores.
func NewService(profileDB, analyticsDB *sql.DB) *Service {
	return &Service{profileDB: profileDB, analyticsDB: analyticsDB}
}

// Status returns a simple liveness payload.
func (s *Service) Status() map[string]bool {
	return map[string]bool{"ok": true}
}

// Readiness pings each configured store. In-memory stores report "memory".
func (s *Service) Readiness(ctx context.Context) map[string]string {
	return map[string]string{
		"profileStore":   pingStore(ctx, s.profileDB),
		"analyticsStore": pingStore(ctx, s.analyticsDB),
	}
}

func pingStore(ctx context.Context, database *sql.DB) string {
	if database == nil {
		return "memory"
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := database.PingContext(pingCtx); err != nil {
		return "unavailable"
	}
	return "ok"
}
