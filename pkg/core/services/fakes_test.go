package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/core/domain"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/ports"
)

var errStoreDown = errors.New("store unavailable")

// memStore is an in-memory DocumentStore with fault injection.
type memStore struct {
	mu   sync.Mutex
	docs map[string][]ports.Document
	seq  int

	failReads  bool
	failWrites bool
	mutations  []string
}

func newMemStore() *memStore {
	return &memStore{docs: map[string][]ports.Document{}}
}

func (s *memStore) put(collection, id string, fields ports.Fields) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[collection] = append(s.docs[collection], ports.Document{ID: id, Fields: fields})
}

func (s *memStore) count(collection string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs[collection])
}

func (s *memStore) find(collection, id string) (int, bool) {
	for i, d := range s.docs[collection] {
		if d.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (s *memStore) fields(collection, id string) ports.Fields {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.find(collection, id); ok {
		return maps.Clone(s.docs[collection][i].Fields)
	}
	return nil
}

func (s *memStore) GetDocument(_ context.Context, collection, id string) (*ports.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failReads {
		return nil, errStoreDown
	}
	i, ok := s.find(collection, id)
	if !ok {
		return nil, nil
	}
	d := s.docs[collection][i]
	return &ports.Document{ID: d.ID, Fields: maps.Clone(d.Fields)}, nil
}

func (s *memStore) SetDocument(_ context.Context, collection, id string, fields ports.Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return errStoreDown
	}
	s.mutations = append(s.mutations, "set "+collection+"/"+id)
	if i, ok := s.find(collection, id); ok {
		s.docs[collection][i].Fields = maps.Clone(fields)
		return nil
	}
	s.docs[collection] = append(s.docs[collection], ports.Document{ID: id, Fields: maps.Clone(fields)})
	return nil
}

func (s *memStore) UpdateDocument(_ context.Context, collection, id string, fields ports.Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return errStoreDown
	}
	i, ok := s.find(collection, id)
	if !ok {
		return domain.ErrNotFound
	}
	s.mutations = append(s.mutations, "update "+collection+"/"+id)
	maps.Copy(s.docs[collection][i].Fields, fields)
	return nil
}

func (s *memStore) AddDocument(_ context.Context, collection string, fields ports.Fields) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return "", errStoreDown
	}
	s.seq++
	id := fmt.Sprintf("doc-%d", s.seq)
	s.mutations = append(s.mutations, "add "+collection+"/"+id)
	s.docs[collection] = append(s.docs[collection], ports.Document{ID: id, Fields: maps.Clone(fields)})
	return id, nil
}

func (s *memStore) DeleteDocument(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return errStoreDown
	}
	s.mutations = append(s.mutations, "delete "+collection+"/"+id)
	if i, ok := s.find(collection, id); ok {
		s.docs[collection] = slices.Delete(s.docs[collection], i, i+1)
	}
	return nil
}

func (s *memStore) ListDocuments(_ context.Context, collection string, order *ports.Order) ([]ports.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failReads {
		return nil, errStoreDown
	}
	out := make([]ports.Document, 0, len(s.docs[collection]))
	for _, d := range s.docs[collection] {
		out = append(out, ports.Document{ID: d.ID, Fields: maps.Clone(d.Fields)})
	}
	if order != nil {
		slices.SortStableFunc(out, func(a, b ports.Document) int {
			c := compareField(a.Fields[order.Field], b.Fields[order.Field])
			if order.Direction == ports.Desc {
				return -c
			}
			return c
		})
	}
	return out, nil
}

func compareField(a, b any) int {
	switch av := a.(type) {
	case float64:
		bv, _ := b.(float64)
		return cmp.Compare(av, bv)
	case int:
		bv, _ := b.(int)
		return cmp.Compare(av, bv)
	case string:
		bv, _ := b.(string)
		return cmp.Compare(av, bv)
	}
	return 0
}

func (s *memStore) Dump(context.Context) ([]ports.DumpedDocument, error) {
	return nil, nil
}

func (s *memStore) Close() error { return nil }

var _ ports.DocumentStore = (*memStore)(nil)
