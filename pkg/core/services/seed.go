package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/core/domain"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/ports"
)

// SeedContent is the portfolio written by a seed run. Nil sections are left
// alone.
type SeedContent struct {
	Hero       *domain.Hero        `json:"hero,omitempty"`
	About      *domain.About       `json:"about,omitempty"`
	Services   []domain.Service    `json:"services,omitempty"`
	Projects   []domain.Project    `json:"projects,omitempty"`
	Experience []domain.Experience `json:"experience,omitempty"`
	Skills     []domain.Skill      `json:"skills,omitempty"`
}

// DefaultSeed is the built-in portfolio.
func DefaultSeed() SeedContent {
	hero, about := domain.DefaultHero(), domain.DefaultAbout()
	return SeedContent{
		Hero:       &hero,
		About:      &about,
		Services:   domain.DefaultServices(),
		Projects:   domain.DefaultProjects(),
		Experience: domain.DefaultExperience(),
		Skills:     domain.DefaultSkills(),
	}
}

type singletonSeed struct {
	kind  domain.Kind
	value domain.Content
}

// SeedReport counts documents per kind; skipped kinds already had content.
type SeedReport struct {
	Written map[domain.Kind]int
	Skipped []domain.Kind
}

// Seed writes content into kinds that are still empty. With force it writes
// every kind, overwriting items that carry the same id.
func Seed(ctx context.Context, store ports.DocumentStore, content SeedContent, force bool) (SeedReport, error) {
	report := SeedReport{Written: map[domain.Kind]int{}}

	var singletons []singletonSeed
	if content.Hero != nil {
		singletons = append(singletons, singletonSeed{domain.KindHero, *content.Hero})
	}
	if content.About != nil {
		singletons = append(singletons, singletonSeed{domain.KindAbout, *content.About})
	}
	for _, s := range singletons {
		written, err := seedSingleton(ctx, store, s.kind, s.value, force)
		if err != nil {
			return report, err
		}
		report.note(s.kind, written)
	}

	collections := []struct {
		kind  domain.Kind
		items []domain.Item
	}{
		{domain.KindServices, items(content.Services)},
		{domain.KindProjects, items(content.Projects)},
		{domain.KindExperience, items(content.Experience)},
		{domain.KindSkills, items(content.Skills)},
	}
	var invalid []error
	for _, c := range collections {
		if len(c.items) == 0 {
			continue
		}
		written, rejected, err := seedCollection(ctx, store, c.kind, c.items, force)
		if err != nil {
			return report, err
		}
		invalid = append(invalid, rejected...)
		report.note(c.kind, written)
	}
	// Invalid items are skipped; the rest of the seed still lands.
	return report, errors.Join(invalid...)
}

func (r *SeedReport) note(kind domain.Kind, written int) {
	if written < 0 {
		r.Skipped = append(r.Skipped, kind)
		return
	}
	r.Written[kind] = written
}

func items[T domain.Item](in []T) []domain.Item {
	out := make([]domain.Item, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

// seedSingleton returns -1 when the kind was skipped.
func seedSingleton(ctx context.Context, store ports.DocumentStore, kind domain.Kind, value domain.Content, force bool) (int, error) {
	if !force {
		existing, err := store.GetDocument(ctx, domain.CollectionContent, string(kind))
		if err != nil {
			return 0, fmt.Errorf("read %s: %w", kind, err)
		}
		if existing != nil {
			return -1, nil
		}
	}
	if err := value.Validate(); err != nil {
		return 0, fmt.Errorf("seed %s: %w", kind, err)
	}
	fields, err := encode(value)
	if err != nil {
		return 0, err
	}
	if err := store.SetDocument(ctx, domain.CollectionContent, string(kind), fields); err != nil {
		return 0, fmt.Errorf("write %s: %w", kind, err)
	}
	return 1, nil
}

// seedCollection returns -1 when the kind was skipped, along with the items
// rejected by validation.
func seedCollection(ctx context.Context, store ports.DocumentStore, kind domain.Kind, values []domain.Item, force bool) (int, []error, error) {
	collection := kind.Collection()
	if !force {
		existing, err := store.ListDocuments(ctx, collection, nil)
		if err != nil {
			return 0, nil, fmt.Errorf("read %s: %w", kind, err)
		}
		if len(existing) > 0 {
			return -1, nil, nil
		}
	}

	var errs []error
	written := 0
	for i, v := range values {
		if err := v.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("seed %s #%d: %w", kind, i, err))
			continue
		}
		fields, err := encode(v)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if id := v.DocumentID(); id != "" {
			err = store.SetDocument(ctx, collection, id, fields)
		} else {
			_, err = store.AddDocument(ctx, collection, fields)
		}
		if err != nil {
			return written, errs, fmt.Errorf("write %s: %w", kind, err)
		}
		written++
	}
	if len(errs) > 0 {
		logrus.WithField("kind", kind).Warnf("skipped %d invalid seed items", len(errs))
	}
	return written, errs, nil
}
