package database

import (
	"database/sql"
	"fmt"
	"time"

	"showlib/models"
)

// Status filter values recognized by ListShows. Anything else leaves the
// list unfiltered.
const (
	StatusEnded      = "ended"
	StatusInProgress = "in_progress"
)

// ShowFilter narrows a show listing. Zero value means no filtering.
type ShowFilter struct {
	Title  string // case-insensitive substring match
	Status string // StatusEnded or StatusInProgress
}

// ShowRepository provides CRUD access to the tv_shows table.
type ShowRepository struct {
	db *sql.DB
}

// NewShowRepository creates a repository backed by the given connection.
func NewShowRepository(db *sql.DB) *ShowRepository {
	return &ShowRepository{db: db}
}

const showColumns = "id, title, cover_image_url, genre, is_ended, created_at"

// createdAtLayout is RFC 3339 with a fixed-width fractional second so the
// TEXT column sorts chronologically. RFC3339Nano would trim trailing zeros
// and break lexicographic ordering.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ListShows returns all shows matching the filter, most recently created first.
func (r *ShowRepository) ListShows(filter ShowFilter) ([]models.Show, error) {
	query := "SELECT " + showColumns + " FROM tv_shows WHERE 1=1"
	args := []any{}

	if filter.Title != "" {
		query += " AND LOWER(title) LIKE LOWER(?)"
		args = append(args, "%"+filter.Title+"%")
	}

	switch filter.Status {
	case StatusEnded:
		query += " AND is_ended = 1"
	case StatusInProgress:
		query += " AND is_ended = 0"
	}

	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}
	defer rows.Close()

	shows := make([]models.Show, 0)
	for rows.Next() {
		show, err := scanShow(rows)
		if err != nil {
			return nil, err
		}
		shows = append(shows, *show)
	}

	return shows, rows.Err()
}

// GetShow returns the show with the given id, or nil if it does not exist.
func (r *ShowRepository) GetShow(id int64) (*models.Show, error) {
	row := r.db.QueryRow("SELECT "+showColumns+" FROM tv_shows WHERE id = ?", id)
	show, err := scanShow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return show, nil
}

// TitleExists reports whether a show with a case-insensitively matching
// title exists. A non-zero excludeID leaves that show out of the comparison,
// which update operations use to skip the record being updated.
func (r *ShowRepository) TitleExists(title string, excludeID int64) (bool, error) {
	var id int64
	err := r.db.QueryRow(
		"SELECT id FROM tv_shows WHERE LOWER(title) = LOWER(?) AND id != ?",
		title, excludeID,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check title: %w", err)
	}
	return true, nil
}

// CreateShow inserts a new show, backfilling its ID and CreatedAt.
func (r *ShowRepository) CreateShow(show *models.Show) error {
	now := time.Now().UTC()

	result, err := r.db.Exec(
		"INSERT INTO tv_shows (title, cover_image_url, genre, is_ended, created_at) VALUES (?, ?, ?, ?, ?)",
		show.Title, show.CoverImageURL, show.Genre, boolToInt(show.IsEnded), now.Format(createdAtLayout),
	)
	if err != nil {
		return fmt.Errorf("insert show: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("read inserted id: %w", err)
	}

	show.ID = id
	show.CreatedAt = now
	return nil
}

// UpdateShow overwrites the mutable fields of a show. The id and created_at
// columns are never touched. Returns false if no show with the id exists.
func (r *ShowRepository) UpdateShow(show *models.Show) (bool, error) {
	result, err := r.db.Exec(
		"UPDATE tv_shows SET title = ?, cover_image_url = ?, genre = ?, is_ended = ? WHERE id = ?",
		show.Title, show.CoverImageURL, show.Genre, boolToInt(show.IsEnded), show.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update show: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read affected rows: %w", err)
	}
	return affected > 0, nil
}

// DeleteShow removes a show permanently. Returns false if it did not exist.
func (r *ShowRepository) DeleteShow(id int64) (bool, error) {
	result, err := r.db.Exec("DELETE FROM tv_shows WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete show: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read affected rows: %w", err)
	}
	return affected > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShow(row rowScanner) (*models.Show, error) {
	var (
		show      models.Show
		isEnded   int
		createdAt string
	)

	err := row.Scan(&show.ID, &show.Title, &show.CoverImageURL, &show.Genre, &isEnded, &createdAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan show: %w", err)
	}

	show.IsEnded = isEnded != 0

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	show.CreatedAt = ts

	return &show, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
