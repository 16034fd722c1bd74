package database

import (
	"path/filepath"
	"testing"
	"time"

	"showlib/models"
)

// setupTestShowRepo creates a test database and show repository.
func setupTestShowRepo(t *testing.T) *ShowRepository {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := NewDB(Config{DatabasePath: dbPath})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewShowRepository(db.Connection())
}

func mustCreateShow(t *testing.T, repo *ShowRepository, title string, ended bool) *models.Show {
	t.Helper()
	show := &models.Show{
		Title:         title,
		CoverImageURL: "https://example.com/" + title + ".jpg",
		Genre:         "Drama",
		IsEnded:       ended,
	}
	if err := repo.CreateShow(show); err != nil {
		t.Fatalf("CreateShow(%q) failed: %v", title, err)
	}
	return show
}

func TestCreateShow_Success(t *testing.T) {
	repo := setupTestShowRepo(t)

	show := mustCreateShow(t, repo, "Breaking Bad", true)

	if show.ID == 0 {
		t.Error("expected non-zero ID after insert")
	}
	if show.CreatedAt.IsZero() {
		t.Error("expected non-zero CreatedAt")
	}
}

func TestGetShow_RoundTrip(t *testing.T) {
	repo := setupTestShowRepo(t)

	created := mustCreateShow(t, repo, "The Wire", false)

	got, err := repo.GetShow(created.ID)
	if err != nil {
		t.Fatalf("GetShow failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected show to exist")
	}
	if got.Title != "The Wire" {
		t.Errorf("expected title 'The Wire', got %q", got.Title)
	}
	if got.Genre != "Drama" {
		t.Errorf("expected genre 'Drama', got %q", got.Genre)
	}
	if got.IsEnded {
		t.Error("expected IsEnded to be false")
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt changed across round trip: %v vs %v", got.CreatedAt, created.CreatedAt)
	}
}

func TestGetShow_NotFound(t *testing.T) {
	repo := setupTestShowRepo(t)

	got, err := repo.GetShow(999)
	if err != nil {
		t.Fatalf("GetShow failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing show, got %+v", got)
	}
}

func TestTitleExists_CaseInsensitive(t *testing.T) {
	repo := setupTestShowRepo(t)

	created := mustCreateShow(t, repo, "Breaking Bad", false)

	exists, err := repo.TitleExists("breaking bad", 0)
	if err != nil {
		t.Fatalf("TitleExists failed: %v", err)
	}
	if !exists {
		t.Error("expected case-insensitive match to be found")
	}

	// The show itself is excluded for update checks.
	exists, err = repo.TitleExists("BREAKING BAD", created.ID)
	if err != nil {
		t.Fatalf("TitleExists failed: %v", err)
	}
	if exists {
		t.Error("expected no match when the only match is excluded")
	}
}

func TestListShows_OrderedNewestFirst(t *testing.T) {
	repo := setupTestShowRepo(t)

	mustCreateShow(t, repo, "First", false)
	time.Sleep(2 * time.Millisecond)
	mustCreateShow(t, repo, "Second", false)
	time.Sleep(2 * time.Millisecond)
	mustCreateShow(t, repo, "Third", false)

	shows, err := repo.ListShows(ShowFilter{})
	if err != nil {
		t.Fatalf("ListShows failed: %v", err)
	}
	if len(shows) != 3 {
		t.Fatalf("expected 3 shows, got %d", len(shows))
	}
	if shows[0].Title != "Third" || shows[2].Title != "First" {
		t.Errorf("expected newest-first order, got %q, %q, %q",
			shows[0].Title, shows[1].Title, shows[2].Title)
	}
}

func TestListShows_TitleFilter(t *testing.T) {
	repo := setupTestShowRepo(t)

	mustCreateShow(t, repo, "Breaking Bad", true)
	mustCreateShow(t, repo, "Better Call Saul", true)
	mustCreateShow(t, repo, "The Wire", true)

	shows, err := repo.ListShows(ShowFilter{Title: "bREAK"})
	if err != nil {
		t.Fatalf("ListShows failed: %v", err)
	}
	if len(shows) != 1 {
		t.Fatalf("expected 1 show, got %d", len(shows))
	}
	if shows[0].Title != "Breaking Bad" {
		t.Errorf("expected 'Breaking Bad', got %q", shows[0].Title)
	}
}

func TestListShows_StatusFilter(t *testing.T) {
	repo := setupTestShowRepo(t)

	mustCreateShow(t, repo, "Ended Show", true)
	mustCreateShow(t, repo, "Running Show", false)

	ended, err := repo.ListShows(ShowFilter{Status: StatusEnded})
	if err != nil {
		t.Fatalf("ListShows failed: %v", err)
	}
	if len(ended) != 1 || ended[0].Title != "Ended Show" {
		t.Errorf("status=ended returned wrong shows: %+v", ended)
	}

	running, err := repo.ListShows(ShowFilter{Status: StatusInProgress})
	if err != nil {
		t.Fatalf("ListShows failed: %v", err)
	}
	if len(running) != 1 || running[0].Title != "Running Show" {
		t.Errorf("status=in_progress returned wrong shows: %+v", running)
	}

	// Unrecognized status values leave the list unfiltered.
	all, err := repo.ListShows(ShowFilter{Status: "cancelled"})
	if err != nil {
		t.Fatalf("ListShows failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("unrecognized status should not filter, got %d shows", len(all))
	}
}

func TestListShows_Empty(t *testing.T) {
	repo := setupTestShowRepo(t)

	shows, err := repo.ListShows(ShowFilter{})
	if err != nil {
		t.Fatalf("ListShows failed: %v", err)
	}
	if shows == nil {
		t.Error("expected empty slice, not nil")
	}
	if len(shows) != 0 {
		t.Errorf("expected no shows, got %d", len(shows))
	}
}

func TestUpdateShow_PreservesCreatedAt(t *testing.T) {
	repo := setupTestShowRepo(t)

	created := mustCreateShow(t, repo, "The Wire", false)

	updated, err := repo.UpdateShow(&models.Show{
		ID:            created.ID,
		Title:         "The Wire",
		CoverImageURL: "https://example.com/new-cover.jpg",
		Genre:         "Crime",
		IsEnded:       true,
	})
	if err != nil {
		t.Fatalf("UpdateShow failed: %v", err)
	}
	if !updated {
		t.Fatal("expected update to affect a row")
	}

	got, err := repo.GetShow(created.ID)
	if err != nil {
		t.Fatalf("GetShow failed: %v", err)
	}
	if got.Genre != "Crime" {
		t.Errorf("expected genre 'Crime', got %q", got.Genre)
	}
	if !got.IsEnded {
		t.Error("expected IsEnded to be true after update")
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt must not change on update: %v vs %v", got.CreatedAt, created.CreatedAt)
	}
}

func TestUpdateShow_Missing(t *testing.T) {
	repo := setupTestShowRepo(t)

	updated, err := repo.UpdateShow(&models.Show{
		ID:            42,
		Title:         "Ghost",
		CoverImageURL: "https://example.com/ghost.jpg",
		Genre:         "Horror",
	})
	if err != nil {
		t.Fatalf("UpdateShow failed: %v", err)
	}
	if updated {
		t.Error("expected no rows affected for missing id")
	}
}

func TestDeleteShow(t *testing.T) {
	repo := setupTestShowRepo(t)

	created := mustCreateShow(t, repo, "Deadwood", true)

	deleted, err := repo.DeleteShow(created.ID)
	if err != nil {
		t.Fatalf("DeleteShow failed: %v", err)
	}
	if !deleted {
		t.Error("expected delete to affect a row")
	}

	got, err := repo.GetShow(created.ID)
	if err != nil {
		t.Fatalf("GetShow failed: %v", err)
	}
	if got != nil {
		t.Error("expected show to be gone after delete")
	}

	// Second delete is a no-op.
	deleted, err = repo.DeleteShow(created.ID)
	if err != nil {
		t.Fatalf("DeleteShow failed: %v", err)
	}
	if deleted {
		t.Error("expected no rows affected on second delete")
	}
}

func TestMigrations_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := NewDB(Config{DatabasePath: dbPath})
	if err != nil {
		t.Fatalf("first open failed: %v", err)
	}

	repo := NewShowRepository(db.Connection())
	created := mustCreateShow(t, repo, "Survivor", false)
	db.Close()

	// Reopening runs migrations again against a current schema.
	db, err = NewDB(Config{DatabasePath: dbPath})
	if err != nil {
		t.Fatalf("second open failed: %v", err)
	}
	defer db.Close()

	repo = NewShowRepository(db.Connection())
	got, err := repo.GetShow(created.ID)
	if err != nil {
		t.Fatalf("GetShow after reopen failed: %v", err)
	}
	if got == nil || got.Title != "Survivor" {
		t.Errorf("expected data to survive reopen, got %+v", got)
	}
}
