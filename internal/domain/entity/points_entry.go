package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PointsEntry is one row of a user's points history. Entries are created
// by the CollectionAccepted event handler after the responding
// transaction has committed; they are append-only.
type PointsEntry struct {
	ID           string
	UserID       string
	CollectionID string
	Points       int
	Description  string
	CreatedAt    time.Time
}

func NewPointsEntryFromCollection(userID, collectionID string, points int) *PointsEntry {
	return &PointsEntry{
		ID:           uuid.NewString(),
		UserID:       userID,
		CollectionID: collectionID,
		Points:       points,
		Description:  fmt.Sprintf("Points from accepted collection %s", collectionID),
		CreatedAt:    time.Now().UTC(),
	}
}
