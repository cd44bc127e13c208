package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/taskkeeper/internal/models"
	"github.com/iudanet/taskkeeper/internal/server/storage"
)

// SaveSession records a newly issued token for a user
func (s *Storage) SaveSession(ctx context.Context, session *models.Session) error {
	query := `
		INSERT OR REPLACE INTO sessions (token, user_id, created_at)
		VALUES (?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		session.Token,
		session.UserID,
		session.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// HasSession reports whether this exact token is registered for this user
func (s *Storage) HasSession(ctx context.Context, userID, token string) (bool, error) {
	query := `SELECT COUNT(*) FROM sessions WHERE user_id = ? AND token = ?`

	var count int
	if err := s.db.QueryRowContext(ctx, query, userID, token).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check session: %w", err)
	}

	return count > 0, nil
}

// DeleteSession revokes a single token
func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	query := `DELETE FROM sessions WHERE token = ?`

	result, err := s.db.ExecContext(ctx, query, token)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrSessionNotFound
	}

	return nil
}

// DeleteUserSessions revokes every session of a user
func (s *Storage) DeleteUserSessions(ctx context.Context, userID string) (int, error) {
	query := `DELETE FROM sessions WHERE user_id = ?`

	result, err := s.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user sessions: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rows), nil
}

// GetUserSessions retrieves a user's sessions in issuance order
func (s *Storage) GetUserSessions(ctx context.Context, userID string) ([]*models.Session, error) {
	// rowid preserves insertion order even when created_at timestamps collide
	query := `
		SELECT token, user_id, created_at
		FROM sessions
		WHERE user_id = ?
		ORDER BY rowid
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user sessions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var sessions []*models.Session

	for rows.Next() {
		session := &models.Session{}
		if err := rows.Scan(
			&session.Token,
			&session.UserID,
			&session.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return sessions, nil
}

// DeleteExpiredSessions removes sessions issued before the cutoff
func (s *Storage) DeleteExpiredSessions(ctx context.Context, cutoff time.Time) (int, error) {
	query := `DELETE FROM sessions WHERE created_at < ?`

	result, err := s.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rows), nil
}
