package shows

import (
	"context"
	"errors"
	"log"
	"net"
	"strings"

	"showlib/internal/database"
	"showlib/models"
	"showlib/services/metadata"
)

// Validation errors. The strings are the wire contract inherited from the
// original API and are sent to clients verbatim.
var (
	ErrMissingField   = errors.New("All fields are required")
	ErrInvalidURL     = errors.New("Cover image URL must be a valid HTTPS URL")
	ErrDuplicateTitle = errors.New("A TV show with this title already exists")
	ErrNotFound       = errors.New("TV show not found")
)

// VerificationError means the metadata lookup reached a verdict and the
// title was rejected. Transport failures never produce one; those are
// allowed through (fail-open).
type VerificationError struct {
	Message string
}

func (e *VerificationError) Error() string {
	return e.Message
}

// TitleVerifier checks a series title against an external metadata source.
// A returned error means the source could not be consulted, as opposed to a
// negative verdict.
type TitleVerifier interface {
	VerifyTitleExists(ctx context.Context, title string) (metadata.VerifyOutcome, error)
}

// Service orchestrates validation, title verification and persistence for
// the show catalog.
type Service struct {
	repo     *database.ShowRepository
	verifier TitleVerifier
}

// NewService creates a show service over the given repository and verifier.
func NewService(repo *database.ShowRepository, verifier TitleVerifier) *Service {
	return &Service{repo: repo, verifier: verifier}
}

// List returns shows matching the filter, most recently created first.
func (s *Service) List(filter database.ShowFilter) ([]models.Show, error) {
	return s.repo.ListShows(filter)
}

// Get returns the show with the given id or ErrNotFound.
func (s *Service) Get(id int64) (*models.Show, error) {
	show, err := s.repo.GetShow(id)
	if err != nil {
		return nil, err
	}
	if show == nil {
		return nil, ErrNotFound
	}
	return show, nil
}

// Create validates, verifies and persists a new show, returning its id.
func (s *Service) Create(ctx context.Context, input models.ShowInput) (int64, error) {
	input = trimInput(input)
	if input.Title == "" || input.CoverImageURL == "" || input.Genre == "" {
		return 0, ErrMissingField
	}

	if !ValidateSecureURL(input.CoverImageURL) {
		return 0, ErrInvalidURL
	}

	if err := s.verifyTitle(ctx, input.Title); err != nil {
		return 0, err
	}

	exists, err := s.repo.TitleExists(input.Title, 0)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrDuplicateTitle
	}

	show := models.Show{
		Title:         input.Title,
		CoverImageURL: input.CoverImageURL,
		Genre:         input.Genre,
		IsEnded:       bool(input.IsEnded),
	}
	if err := s.repo.CreateShow(&show); err != nil {
		return 0, err
	}

	return show.ID, nil
}

// Update overwrites the mutable fields of an existing show. The title is
// re-verified only when it changed case-insensitively from the stored one;
// a nonexistent id surfaces as ErrNotFound at the write, matching the
// original API.
func (s *Service) Update(ctx context.Context, id int64, input models.ShowInput) error {
	input = trimInput(input)
	if input.Title == "" || input.CoverImageURL == "" || input.Genre == "" {
		return ErrMissingField
	}

	if !ValidateSecureURL(input.CoverImageURL) {
		return ErrInvalidURL
	}

	current, err := s.repo.GetShow(id)
	if err != nil {
		return err
	}
	if current != nil && !strings.EqualFold(current.Title, input.Title) {
		if err := s.verifyTitle(ctx, input.Title); err != nil {
			return err
		}
	}

	exists, err := s.repo.TitleExists(input.Title, id)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateTitle
	}

	show := models.Show{
		ID:            id,
		Title:         input.Title,
		CoverImageURL: input.CoverImageURL,
		Genre:         input.Genre,
		IsEnded:       bool(input.IsEnded),
	}
	updated, err := s.repo.UpdateShow(&show)
	if err != nil {
		return err
	}
	if !updated {
		return ErrNotFound
	}

	return nil
}

// Delete removes a show permanently or returns ErrNotFound.
func (s *Service) Delete(id int64) error {
	deleted, err := s.repo.DeleteShow(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// verifyTitle consults the external metadata source. A negative verdict
// rejects the operation; an unreachable or broken source allows it
// (fail-open), so the catalog keeps working when OMDb is down.
func (s *Service) verifyTitle(ctx context.Context, title string) error {
	outcome, err := s.verifier.VerifyTitleExists(ctx, title)
	if err != nil {
		if !isTimeout(err) {
			log.Printf("[shows] title verification error for %q, allowing: %v", title, err)
		}
		return nil
	}
	if !outcome.Found {
		return &VerificationError{Message: outcome.Message}
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func trimInput(input models.ShowInput) models.ShowInput {
	input.Title = strings.TrimSpace(input.Title)
	input.CoverImageURL = strings.TrimSpace(input.CoverImageURL)
	input.Genre = strings.TrimSpace(input.Genre)
	return input
}
