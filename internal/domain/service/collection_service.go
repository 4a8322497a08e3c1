package service

import (
	"github.com/reciclaqui/backend/internal/domain/entity"
)

// CollectionDomainService coordinates business rules that span the
// Collection and User aggregates. It performs no I/O; persistence and
// event publication belong to the unit of work.
type CollectionDomainService struct{}

func NewCollectionDomainService() *CollectionDomainService {
	return &CollectionDomainService{}
}

// ProcessCollectionResponse applies a recycler's response to a pending
// collection. This is the only place both aggregates are mutated
// together: the collection transition must succeed before the balance is
// credited, so a failed accept never credits points.
func (s *CollectionDomainService) ProcessCollectionResponse(collection *entity.Collection, user *entity.User, accept bool, reason string) error {
	if !user.IsRecycler() {
		return entity.ErrRoleMismatch
	}
	if collection.UserID != user.ID {
		return entity.ErrNotOwner
	}

	if !accept {
		return collection.RejectBy(user.ID, reason)
	}
	if err := collection.AcceptBy(user.ID); err != nil {
		return err
	}
	return user.AddPointsFromCollection(collection.ID, collection.Points)
}

// ValidateRecyclingDeclaration checks the actor roles for a declaration:
// only eco-operators declare, and only for recyclers.
func (s *CollectionDomainService) ValidateRecyclingDeclaration(operator, recycler *entity.User) error {
	if !operator.IsEcoOperator() {
		return entity.ErrRoleMismatch
	}
	if !recycler.IsRecycler() {
		return entity.ErrRoleMismatch
	}
	return nil
}
