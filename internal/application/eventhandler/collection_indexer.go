package eventhandler

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/reciclaqui/backend/internal/domain/entity"
	"github.com/reciclaqui/backend/internal/domain/event"
)

// CollectionIndexHandler mirrors accepted collections into an
// Elasticsearch index used by the reporting endpoints.
type CollectionIndexHandler struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewCollectionIndexHandler(es *elasticsearch.Client, index string, logger *logrus.Logger) *CollectionIndexHandler {
	return &CollectionIndexHandler{ES: es, Index: index, Logger: logger}
}

func (h *CollectionIndexHandler) Handle(ctx context.Context, e event.Event) error {
	if h.ES == nil || h.Index == "" {
		return nil
	}
	accepted, ok := e.(entity.CollectionAcceptedEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T", e)
	}

	doc := map[string]any{
		"collection_id": accepted.CollectionID,
		"user_id":       accepted.UserID,
		"points":        accepted.Points,
		"accepted_at":   accepted.OccurredAt().Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      h.Index,
		DocumentID: accepted.CollectionID,
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, h.ES)
	if err != nil {
		return fmt.Errorf("index collection: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index collection: %s", res.Status())
	}
	return nil
}

var _ event.Handler = (*CollectionIndexHandler)(nil)
