package health

import (
	"context"
	"database/sql"
	"time"

	"fitable-backend/internal/shared/storage/db"
)

// Status is the health payload.
type Status struct {
	OK      bool   `json:"ok"`
	Storage string `json:"storage"`
	Error   string `json:"error,omitempty"`
}

// Service reports liveness and database reachability.
type Service struct {
	DB      *sql.DB
	Timeout time.Duration
}

// NewService constructs a health service. A nil database means the process
// runs on in-memory repositories.
func NewService(database *sql.DB) *Service {
	return &Service{DB: database, Timeout: 2 * time.Second}
}

// Status pings the database when one is configured.
func (s *Service) Status(ctx context.Context) Status {
	if s == nil || s.DB == nil {
		return Status{OK: true, Storage: "memory"}
	}
	if err := db.Ping(ctx, s.DB, s.Timeout); err != nil {
		return Status{OK: false, Storage: "postgres", Error: err.Error()}
	}
	return Status{OK: true, Storage: "postgres"}
}
