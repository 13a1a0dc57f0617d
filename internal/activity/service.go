package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=activity
type Repository interface {
	Append(ctx context.Context, rec *Record) error
	List(ctx context.Context) ([]*Record, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Record appends an audit entry. An empty user id is attributed to "system",
// matching how unattended mutations have always been logged.
func (s *Service) Record(ctx context.Context, userID string, action Action, details string) error {
	if userID == "" {
		userID = "system"
	}

	rec := &Record{
		ID:        uuid.New(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		Timestamp: s.now(),
	}

	if err := s.repo.Append(ctx, rec); err != nil {
		return fmt.Errorf("recording activity: %w", err)
	}

	return nil
}

func (s *Service) List(ctx context.Context) ([]*Record, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]*Record, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var recs []*Record

	for _, rec := range all {
		if rec.UserID == userID {
			recs = append(recs, rec)
		}
	}

	return recs, nil
}
