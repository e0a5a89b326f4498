package repository

import (
	"context"
	"fmt"

	"github.com/halstead-studio/studioops/internal/db"
	"github.com/google/uuid"
)

// SQLiteAgendaGenerationRepo implements AgendaGenerationRepo using a SQLite
// database. Every collaborator call is recorded, including failures, so the
// raw response survives for audit even when parsing rejects it.
type SQLiteAgendaGenerationRepo struct {
	conn db.DBTX
}

// NewSQLiteAgendaGenerationRepo creates a new SQLiteAgendaGenerationRepo.
func NewSQLiteAgendaGenerationRepo(conn db.DBTX) *SQLiteAgendaGenerationRepo {
	return &SQLiteAgendaGenerationRepo{conn: conn}
}

func (r *SQLiteAgendaGenerationRepo) Create(ctx context.Context, sprintID, model, rawResponse string, success bool) (string, error) {
	id := uuid.New().String()
	query := `INSERT INTO agenda_generations (id, sprint_id, model, raw_response, success, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query, id, sprintID, model, rawResponse, boolToInt(success), nowUTC())
	if err != nil {
		return "", fmt.Errorf("recording agenda generation: %w", err)
	}
	return id, nil
}
