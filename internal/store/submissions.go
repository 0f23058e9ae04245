package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"localbite/internal/model"

	"github.com/google/uuid"
)

// Submission is a stored contact message or event submission.
type Submission struct {
	ID        string
	Kind      model.SubmissionKind
	Email     string
	Payload   string
	CreatedAt time.Time
}

// SaveContact stores a contact form message and returns its id.
func SaveContact(ctx context.Context, db *sql.DB, msg model.ContactMessage) (string, error) {
	return saveSubmission(ctx, db, model.SubmissionContact, msg.Email, msg)
}

// SaveEventSubmission stores a submitted event and returns its id.
func SaveEventSubmission(ctx context.Context, db *sql.DB, sub model.EventSubmission) (string, error) {
	return saveSubmission(ctx, db, model.SubmissionEvent, sub.ContactEmail, sub)
}

func saveSubmission(ctx context.Context, db *sql.DB, kind model.SubmissionKind, email string, v any) (string, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s submission: %w", kind, err)
	}

	id := uuid.NewString()
	_, err = db.ExecContext(ctx, `
		INSERT INTO submissions (id, kind, email, payload)
		VALUES (?, ?, ?, ?)
	`, id, string(kind), email, string(payload))
	if err != nil {
		return "", fmt.Errorf("failed to insert %s submission: %w", kind, err)
	}
	return id, nil
}

// ListSubmissions returns stored submissions, newest first. The app only
// writes to the inbox; this is the read side for inspecting it from tools.
func ListSubmissions(ctx context.Context, db *sql.DB) ([]Submission, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, kind, COALESCE(email, ''), payload, created_at
		FROM submissions
		ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var results []Submission
	for rows.Next() {
		var s Submission
		var kind, createdAt string
		if err := rows.Scan(&s.ID, &kind, &s.Email, &s.Payload, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan submission row: %w", err)
		}
		s.Kind = model.SubmissionKind(kind)
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			s.CreatedAt = t
		}
		results = append(results, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submission rows: %w", err)
	}

	return results, nil
}
