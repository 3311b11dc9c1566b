package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/studyweek/internal/models"
	"github.com/julianstephens/studyweek/internal/storage"
)

const subjectColumns = `id, name, total_hours, priority, deadline, color, created_at, deleted_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubject(row rowScanner) (models.Subject, error) {
	var sub models.Subject
	var deletedAt sql.NullString
	if err := row.Scan(&sub.ID, &sub.Name, &sub.TotalHours, &sub.Priority, &sub.Deadline,
		&sub.Color, &sub.CreatedAt, &deletedAt); err != nil {
		return models.Subject{}, err
	}
	if deletedAt.Valid {
		sub.DeletedAt = &deletedAt.String
	}
	return sub, nil
}

func (s *Store) AddSubject(sub models.Subject) error {
	if sub.ID == "" {
		return fmt.Errorf("subject id is required")
	}
	if sub.CreatedAt == "" {
		sub.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	_, err := s.db.Exec(`INSERT INTO subjects (`+subjectColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, NULL)`,
		sub.ID, sub.Name, sub.TotalHours, int(sub.Priority), sub.Deadline, sub.Color, sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add subject: %w", err)
	}
	return nil
}

func (s *Store) GetSubject(id string) (models.Subject, error) {
	row := s.db.QueryRow(`SELECT `+subjectColumns+` FROM subjects WHERE id = ? AND deleted_at IS NULL`, id)
	sub, err := scanSubject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Subject{}, fmt.Errorf("subject %s: %w", id, storage.ErrNotFound)
	}
	return sub, err
}

func (s *Store) querySubjects(query string) ([]models.Subject, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Subject
	for rows.Next() {
		sub, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// GetAllSubjects returns live subjects in creation order.
func (s *Store) GetAllSubjects() ([]models.Subject, error) {
	return s.querySubjects(`SELECT ` + subjectColumns + ` FROM subjects WHERE deleted_at IS NULL ORDER BY created_at, rowid`)
}

func (s *Store) GetAllSubjectsIncludingDeleted() ([]models.Subject, error) {
	return s.querySubjects(`SELECT ` + subjectColumns + ` FROM subjects ORDER BY created_at, rowid`)
}

func (s *Store) UpdateSubject(sub models.Subject) error {
	res, err := s.db.Exec(`UPDATE subjects SET name = ?, total_hours = ?, priority = ?, deadline = ?, color = ?
		WHERE id = ? AND deleted_at IS NULL`,
		sub.Name, sub.TotalHours, int(sub.Priority), sub.Deadline, sub.Color, sub.ID)
	if err != nil {
		return fmt.Errorf("failed to update subject: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("subject %s: %w", sub.ID, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) deletedAt(id string) (sql.NullString, error) {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM subjects WHERE id = ?", id).Scan(&deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return deletedAt, fmt.Errorf("subject %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return deletedAt, fmt.Errorf("failed to check subject existence: %w", err)
	}
	return deletedAt, nil
}

func (s *Store) DeleteSubject(id string) error {
	deletedAt, err := s.deletedAt(id)
	if err != nil {
		return err
	}
	if deletedAt.Valid {
		return fmt.Errorf("subject %s: %w", id, storage.ErrAlreadyDeleted)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec("UPDATE subjects SET deleted_at = ? WHERE id = ?", now, id); err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM sessions WHERE subject_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete sessions of subject: %w", err)
	}
	return tx.Commit()
}

func (s *Store) RestoreSubject(id string) error {
	deletedAt, err := s.deletedAt(id)
	if err != nil {
		return err
	}
	if !deletedAt.Valid {
		return fmt.Errorf("subject %s: %w", id, storage.ErrNotDeleted)
	}
	_, err = s.db.Exec("UPDATE subjects SET deleted_at = NULL WHERE id = ?", id)
	return err
}

func (s *Store) CountSubjects() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT count(*) FROM subjects").Scan(&n)
	return n, err
}
