package store

import (
	"context"
	"encoding/json"

	"github.com/akolanti/DoodleAPI/internal/config"
	"github.com/akolanti/DoodleAPI/internal/data/redisStore"
	"github.com/akolanti/DoodleAPI/internal/domain/docModel"
	"github.com/akolanti/DoodleAPI/pkg/logger_i"
)

const documentKeyPrefix = "documents/"

type RedisDocumentStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisDocumentStore(ctx context.Context) *RedisDocumentStore {
	inner := redisStore.GetRedisStore(ctx, config.RedisDocumentStore)
	if inner == nil {
		return nil
	}
	return &RedisDocumentStore{
		store:  inner,
		logger: logger_i.NewLogger("DocumentStore"),
	}
}

func (s *RedisDocumentStore) SaveDocument(ctx context.Context, doc docModel.ResultDocument) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	locator := documentKeyPrefix + doc.Id
	if err := s.store.Set(ctx, locator, data, config.RedisDocumentStoreTTL); err != nil {
		return "", err
	}
	s.logger.Debug("Saved result document", "locator", locator)
	return locator, nil
}

func (s *RedisDocumentStore) GetDocument(ctx context.Context, id string) (docModel.ResultDocument, bool) {
	var doc docModel.ResultDocument
	key := id
	if len(key) < len(documentKeyPrefix) || key[:len(documentKeyPrefix)] != documentKeyPrefix {
		key = documentKeyPrefix + id
	}
	val, err := s.store.Get(ctx, key)
	if s.store.IsNil(err) {
		return doc, false
	} else if err != nil {
		s.logger.Error("Error reading document", "id", id, "error", err)
		return doc, false
	}
	if err = json.Unmarshal([]byte(val), &doc); err != nil {
		s.logger.Error("Error unmarshalling document", "id", id, "error", err)
		return doc, false
	}
	return doc, true
}

func TestDocumentStore(store *redisStore.Store) *RedisDocumentStore {
	return &RedisDocumentStore{
		store:  store,
		logger: logger_i.NewLogger("test document store"),
	}
}
