package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/core/domain"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/ports"
)

// ContentService is the public content reader. Every read falls back to the
// built-in content when the store has nothing usable.
type ContentService struct {
	store ports.DocumentStore
}

func NewContentService(store ports.DocumentStore) *ContentService {
	return &ContentService{store: store}
}

// orderFor is the listing order each collection kind is read in.
func orderFor(kind domain.Kind) *ports.Order {
	switch kind {
	case domain.KindExperience:
		return &ports.Order{Field: "order", Direction: ports.Asc}
	case domain.KindSkills:
		return &ports.Order{Field: "percentage", Direction: ports.Desc}
	}
	return nil
}

// loadSingleton returns the stored document in place of def, or def itself
// when the document is absent, unreadable or malformed.
func loadSingleton[T domain.Content](ctx context.Context, store ports.DocumentStore, key string, def T) T {
	log := logrus.WithFields(logrus.Fields{"collection": domain.CollectionContent, "id": key})

	doc, err := store.GetDocument(ctx, domain.CollectionContent, key)
	if err != nil {
		log.WithError(err).Warn("content read failed, using default")
		return def
	}
	if doc == nil {
		return def
	}

	v, err := decode[T](*doc)
	if err != nil {
		log.WithError(err).Warn("stored content is malformed, using default")
		return def
	}
	return v
}

// loadCollection returns the stored items in store order, or def when the
// read fails or yields nothing usable.
func loadCollection[T domain.Item](ctx context.Context, store ports.DocumentStore, collection string, order *ports.Order, def []T) []T {
	log := logrus.WithField("collection", collection)

	docs, err := store.ListDocuments(ctx, collection, order)
	if err != nil {
		log.WithError(err).Warn("collection read failed, using defaults")
		return def
	}

	items := decodeAll[T](collection, docs)
	if len(items) == 0 {
		return def
	}
	return items
}

// decodeAll skips documents that fail to decode.
func decodeAll[T domain.Item](collection string, docs []ports.Document) []T {
	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		v, err := decode[T](doc)
		if err != nil {
			logrus.WithFields(logrus.Fields{"collection": collection, "id": doc.ID}).
				WithError(err).Warn("skipping malformed document")
			continue
		}
		items = append(items, v)
	}
	return items
}

func (s *ContentService) Hero(ctx context.Context) domain.Hero {
	return loadSingleton(ctx, s.store, string(domain.KindHero), domain.DefaultHero())
}

func (s *ContentService) About(ctx context.Context) domain.About {
	return loadSingleton(ctx, s.store, string(domain.KindAbout), domain.DefaultAbout())
}

func (s *ContentService) Services(ctx context.Context) []domain.Service {
	return loadCollection(ctx, s.store, domain.CollectionServices, nil, domain.DefaultServices())
}

func (s *ContentService) Projects(ctx context.Context, category string) []domain.Project {
	projects := loadCollection(ctx, s.store, domain.CollectionProjects, nil, domain.DefaultProjects())
	return domain.FilterByCategory(projects, category)
}

func (s *ContentService) Project(ctx context.Context, id string) (*domain.Project, error) {
	for _, p := range s.Projects(ctx, "") {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("project %q: %w", id, domain.ErrNotFound)
}

func (s *ContentService) Categories(ctx context.Context) []string {
	return domain.Categories(s.Projects(ctx, ""))
}

func (s *ContentService) Experience(ctx context.Context) []domain.Experience {
	items := loadCollection(ctx, s.store, domain.CollectionExperience, orderFor(domain.KindExperience), domain.DefaultExperience())
	domain.SortExperience(items)
	return items
}

func (s *ContentService) Skills(ctx context.Context) []domain.Skill {
	items := loadCollection(ctx, s.store, domain.CollectionSkills, orderFor(domain.KindSkills), domain.DefaultSkills())
	domain.SortSkills(items)
	return items
}

var _ ports.ContentService = (*ContentService)(nil)
