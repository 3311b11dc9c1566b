package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/studyweek/internal/models"
	"github.com/julianstephens/studyweek/internal/storage"
)

const sessionColumns = `id, subject_id, day_name, hours, week_start, status`

func scanSession(row rowScanner) (models.Session, error) {
	var sess models.Session
	err := row.Scan(&sess.ID, &sess.SubjectID, &sess.DayName, &sess.Hours, &sess.WeekStart, &sess.Status)
	return sess, err
}

func (s *Store) GetSession(id string) (models.Session, error) {
	row := s.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, fmt.Errorf("session %s: %w", id, storage.ErrNotFound)
	}
	return sess, err
}

func (s *Store) querySessions(query string, args ...any) ([]models.Session, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

func (s *Store) GetSessionsForWeek(weekStart string) ([]models.Session, error) {
	return s.querySessions(`SELECT `+sessionColumns+` FROM sessions WHERE week_start = ? ORDER BY seq`, weekStart)
}

func (s *Store) GetAllSessions() ([]models.Session, error) {
	return s.querySessions(`SELECT ` + sessionColumns + ` FROM sessions ORDER BY week_start, seq`)
}

func (s *Store) UpdateSessionStatus(id string, status models.SessionStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", storage.ErrInvalidStatus, status)
	}
	res, err := s.db.Exec("UPDATE sessions SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("session %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) ReplaceWeekSessions(weekStart string, sessions []models.Session) ([]models.Session, error) {
	return s.replaceSessions(weekStart, sessions, false)
}

func (s *Store) ReplacePendingSessions(weekStart string, sessions []models.Session) ([]models.Session, error) {
	return s.replaceSessions(weekStart, sessions, true)
}

func (s *Store) replaceSessions(weekStart string, sessions []models.Session, pendingOnly bool) ([]models.Session, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	del := "DELETE FROM sessions WHERE week_start = ?"
	if pendingOnly {
		del += " AND status = 'pending'"
	}
	if _, err := tx.Exec(del, weekStart); err != nil {
		return nil, fmt.Errorf("failed to clear sessions for week %s: %w", weekStart, err)
	}

	var seq int
	if err := tx.QueryRow("SELECT COALESCE(MAX(seq), 0) FROM sessions WHERE week_start = ?", weekStart).Scan(&seq); err != nil {
		return nil, fmt.Errorf("failed to read session sequence: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO sessions (id, seq, subject_id, day_name, hours, week_start, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	stored := make([]models.Session, 0, len(sessions))
	for _, sess := range sessions {
		if sess.ID == "" {
			sess.ID = uuid.NewString()
		}
		if sess.Status == "" {
			sess.Status = models.SessionPending
		}
		sess.WeekStart = weekStart
		seq++
		if _, err := stmt.Exec(sess.ID, seq, sess.SubjectID, sess.DayName, sess.Hours, sess.WeekStart, string(sess.Status)); err != nil {
			return nil, fmt.Errorf("failed to insert session: %w", err)
		}
		stored = append(stored, sess)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return stored, nil
}
