package application

import (
	"context"
	"time"

	"github.com/reciclaqui/backend/internal/domain/repository"
)

// PointsService reads the append-only points history produced by the
// CollectionAccepted event handler.
type PointsService struct {
	Repo repository.PointsRepository
}

func NewPointsService(repo repository.PointsRepository) *PointsService {
	return &PointsService{Repo: repo}
}

type PointsEntryView struct {
	ID           string    `json:"id"`
	CollectionID string    `json:"collection_id"`
	Points       int       `json:"points"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

func (s *PointsService) History(ctx context.Context, userID string) ([]PointsEntryView, error) {
	entries, err := s.Repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]PointsEntryView, 0, len(entries))
	for _, e := range entries {
		out = append(out, PointsEntryView{
			ID:           e.ID,
			CollectionID: e.CollectionID,
			Points:       e.Points,
			Description:  e.Description,
			CreatedAt:    e.CreatedAt,
		})
	}
	return out, nil
}

// Total sums the user's history entries.
func (s *PointsService) Total(ctx context.Context, userID string) (int, error) {
	entries, err := s.Repo.FindByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, e := range entries {
		total += e.Points
	}
	return total, nil
}
