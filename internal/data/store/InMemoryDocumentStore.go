package store

import (
	"context"
	"strings"
	"sync"

	"github.com/akolanti/DoodleAPI/internal/domain/docModel"
)

type InMemoryDocumentStore struct {
	docMutex *sync.RWMutex
	docMap   map[string]docModel.ResultDocument
}

func InitInMemoryDocumentStore() *InMemoryDocumentStore {
	return &InMemoryDocumentStore{
		docMutex: new(sync.RWMutex),
		docMap:   make(map[string]docModel.ResultDocument),
	}
}

func (store *InMemoryDocumentStore) SaveDocument(ctx context.Context, doc docModel.ResultDocument) (string, error) {
	store.docMutex.Lock()
	defer store.docMutex.Unlock()
	locator := documentKeyPrefix + doc.Id
	store.docMap[locator] = doc
	return locator, nil
}

func (store *InMemoryDocumentStore) GetDocument(ctx context.Context, id string) (docModel.ResultDocument, bool) {
	store.docMutex.RLock()
	defer store.docMutex.RUnlock()
	key := id
	if !strings.HasPrefix(key, documentKeyPrefix) {
		key = documentKeyPrefix + id
	}
	doc, found := store.docMap[key]
	return doc, found
}
