package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"

	"github.com/reciclaqui/backend/internal/domain/entity"
	"github.com/reciclaqui/backend/internal/domain/event"
	"github.com/reciclaqui/backend/internal/domain/repository"
	"github.com/reciclaqui/backend/internal/domain/service"
)

// CollectionService orchestrates the collection use cases. It stays
// thin: aggregates and the domain service carry the rules, the unit of
// work carries the transaction and event flush.
type CollectionService struct {
	Collections repository.CollectionRepository
	Users       repository.UserRepository
	Domain      *service.CollectionDomainService
	UoW         repository.UnitOfWork
	ES          *elasticsearch.Client
	ESIndex     string
	Logger      *logrus.Logger
}

func NewCollectionService(collections repository.CollectionRepository, users repository.UserRepository, domain *service.CollectionDomainService, uow repository.UnitOfWork, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *CollectionService {
	return &CollectionService{
		Collections: collections,
		Users:       users,
		Domain:      domain,
		UoW:         uow,
		ES:          es,
		ESIndex:     esIndex,
		Logger:      logger,
	}
}

// CollectionView is the serialized form of a collection returned to
// callers.
type CollectionView struct {
	ID           string     `json:"id"`
	OperatorID   string     `json:"operator_id"`
	UserID       string     `json:"user_id"`
	MaterialType string     `json:"material_type"`
	Quantity     int        `json:"quantity"`
	Points       int        `json:"points"`
	Description  string     `json:"description,omitempty"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	RespondedAt  *time.Time `json:"responded_at,omitempty"`
}

func NewCollectionView(c *entity.Collection) CollectionView {
	return CollectionView{
		ID:           c.ID,
		OperatorID:   c.OperatorID,
		UserID:       c.UserID,
		MaterialType: c.Material.String(),
		Quantity:     c.Quantity,
		Points:       c.Points,
		Description:  c.Description,
		Status:       string(c.Status),
		CreatedAt:    c.CreatedAt,
		RespondedAt:  c.RespondedAt,
	}
}

type DeclareRecyclingInput struct {
	OperatorID   string
	UserID       string
	MaterialType string
	Quantity     int
	Description  string
}

type DeclareRecyclingResult struct {
	Message    string         `json:"message"`
	Collection CollectionView `json:"collection"`
}

// DeclareRecycling creates a PENDING collection for a recycler. It runs
// inside a unit of work so the CollectionCreated event only reaches
// handlers once the row is committed.
func (s *CollectionService) DeclareRecycling(ctx context.Context, in DeclareRecyclingInput) (*DeclareRecyclingResult, error) {
	out, err := s.UoW.Execute(ctx, func(txCtx context.Context) (repository.WorkResult, error) {
		operator, err := s.Users.FindByID(txCtx, in.OperatorID)
		if err != nil {
			return repository.WorkResult{}, err
		}
		if operator == nil {
			return repository.WorkResult{}, fmt.Errorf("operator %s: %w", in.OperatorID, repository.ErrNotFound)
		}
		recycler, err := s.Users.FindByID(txCtx, in.UserID)
		if err != nil {
			return repository.WorkResult{}, err
		}
		if recycler == nil {
			return repository.WorkResult{}, fmt.Errorf("user %s: %w", in.UserID, repository.ErrNotFound)
		}

		if err := s.Domain.ValidateRecyclingDeclaration(operator, recycler); err != nil {
			return repository.WorkResult{}, err
		}

		collection, err := entity.NewCollection(in.OperatorID, in.UserID, in.MaterialType, in.Quantity, in.Description)
		if err != nil {
			return repository.WorkResult{}, err
		}
		if err := s.Collections.Create(txCtx, collection); err != nil {
			return repository.WorkResult{}, err
		}

		return repository.WorkResult{
			Result: &DeclareRecyclingResult{
				Message:    "Recycling declared successfully. Awaiting user acceptance.",
				Collection: NewCollectionView(collection),
			},
			Aggregates: []event.Source{collection},
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(*DeclareRecyclingResult), nil
}

type RespondToCollectionInput struct {
	CollectionID string
	UserID       string
	Accept       bool
	Reason       string
}

type RespondToCollectionResult struct {
	Message    string         `json:"message"`
	Collection CollectionView `json:"collection"`
}

// RespondToCollection applies a recycler's accept/reject inside one unit
// of work: load both aggregates, run the domain service, persist both,
// and let the unit of work publish the buffered events after commit.
func (s *CollectionService) RespondToCollection(ctx context.Context, in RespondToCollectionInput) (*RespondToCollectionResult, error) {
	out, err := s.UoW.Execute(ctx, func(txCtx context.Context) (repository.WorkResult, error) {
		collection, err := s.Collections.FindByID(txCtx, in.CollectionID)
		if err != nil {
			return repository.WorkResult{}, err
		}
		if collection == nil {
			return repository.WorkResult{}, fmt.Errorf("collection %s: %w", in.CollectionID, repository.ErrNotFound)
		}
		user, err := s.Users.FindByID(txCtx, in.UserID)
		if err != nil {
			return repository.WorkResult{}, err
		}
		if user == nil {
			return repository.WorkResult{}, fmt.Errorf("user %s: %w", in.UserID, repository.ErrNotFound)
		}

		if err := s.Domain.ProcessCollectionResponse(collection, user, in.Accept, in.Reason); err != nil {
			return repository.WorkResult{}, err
		}

		if err := s.Collections.Save(txCtx, collection); err != nil {
			return repository.WorkResult{}, err
		}
		if err := s.Users.Save(txCtx, user); err != nil {
			return repository.WorkResult{}, err
		}

		message := "Collection rejected."
		if in.Accept {
			message = fmt.Sprintf("Collection accepted! %d points added to your account.", collection.Points)
		}
		return repository.WorkResult{
			Result: &RespondToCollectionResult{
				Message:    message,
				Collection: NewCollectionView(collection),
			},
			Aggregates: []event.Source{collection, user},
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(*RespondToCollectionResult), nil
}

// PendingForUser lists the PENDING collections awaiting a recycler's
// response.
func (s *CollectionService) PendingForUser(ctx context.Context, userID string) ([]CollectionView, error) {
	collections, err := s.Collections.FindPendingByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toViews(collections), nil
}

// ForUser lists every collection belonging to a recycler.
func (s *CollectionService) ForUser(ctx context.Context, userID string) ([]CollectionView, error) {
	collections, err := s.Collections.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toViews(collections), nil
}

// All lists every collection; operator-only at the HTTP layer.
func (s *CollectionService) All(ctx context.Context) ([]CollectionView, error) {
	collections, err := s.Collections.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toViews(collections), nil
}

// Summary reports accepted collections grouped by material.
func (s *CollectionService) Summary(ctx context.Context) ([]repository.MaterialSummary, error) {
	return s.Collections.SummaryByMaterial(ctx)
}

// SearchAccepted queries the accepted-collections index. Documents are
// written by the CollectionAccepted handler, so only accepted
// collections show up here.
func (s *CollectionService) SearchAccepted(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return nil, fmt.Errorf("search is not configured")
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"collection_id^2", "user_id"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, fmt.Errorf("search collections: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search collections: %s", res.Status())
	}

	var out struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	results := make([]map[string]any, 0, len(out.Hits.Hits))
	for _, h := range out.Hits.Hits {
		results = append(results, h.Source)
	}
	return results, nil
}

func toViews(collections []*entity.Collection) []CollectionView {
	out := make([]CollectionView, 0, len(collections))
	for _, c := range collections {
		out = append(out, NewCollectionView(c))
	}
	return out
}
