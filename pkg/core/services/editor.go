package services

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/core/domain"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/ports"
)

// ReloadPolicy decides which lists are refetched after a successful write.
type ReloadPolicy string

const (
	// ReloadAll refetches every editor and both submission lists.
	ReloadAll ReloadPolicy = "all"
	// ReloadAffected refetches only the list that was written.
	ReloadAffected ReloadPolicy = "affected"
)

func ParseReloadPolicy(s string) (ReloadPolicy, error) {
	switch ReloadPolicy(s) {
	case ReloadAll, "":
		return ReloadAll, nil
	case ReloadAffected:
		return ReloadAffected, nil
	}
	return "", fmt.Errorf("unknown reload policy %q (want %q or %q)", s, ReloadAll, ReloadAffected)
}

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is the operator-facing outcome of the last write.
type Notice struct {
	Level NoticeLevel `json:"level"`
	Text  string      `json:"text"`
}

// EditorState is what the admin API shows for one editor.
type EditorState struct {
	Kind   domain.Kind `json:"kind"`
	Value  any         `json:"value,omitempty"`
	Items  any         `json:"items,omitempty"`
	Draft  any         `json:"draft"`
	Notice *Notice     `json:"notice,omitempty"`
}

// Editor is the operator workflow for one content kind. Editors are not safe
// for concurrent use; the Console serializes access.
type Editor interface {
	Kind() domain.Kind
	BeginCreate() error
	BeginEdit(id string) error
	UpdateDraftField(field string, value json.RawMessage) error
	CancelDraft()
	Commit(ctx context.Context) error
	Remove(ctx context.Context, id string, confirmed bool) error
	Reload(ctx context.Context) error
	Snapshot() EditorState
}

// editorBase holds the draft slot shared by both editor shapes.
type editorBase[T domain.Content] struct {
	kind   domain.Kind
	store  ports.DocumentStore
	draft  *T
	notice *Notice

	// afterWrite applies the reload policy once a write has succeeded.
	afterWrite func(ctx context.Context)
}

func (e *editorBase[T]) Kind() domain.Kind { return e.kind }

func (e *editorBase[T]) setAfterWrite(fn func(ctx context.Context)) { e.afterWrite = fn }

func (e *editorBase[T]) setDraft(v T) error {
	c, err := clone(v)
	if err != nil {
		return fmt.Errorf("copy draft: %w", err)
	}
	e.draft = &c
	e.notice = nil
	return nil
}

func (e *editorBase[T]) UpdateDraftField(field string, value json.RawMessage) error {
	if e.draft == nil {
		return domain.ErrNoDraft
	}
	updated, err := setField(*e.draft, field, value)
	if err != nil {
		return err
	}
	e.draft = &updated
	return nil
}

// MutateDraft applies fn to the draft. The draft is left unchanged when fn
// fails.
func (e *editorBase[T]) MutateDraft(fn func(*T) error) error {
	if e.draft == nil {
		return domain.ErrNoDraft
	}
	work, err := clone(*e.draft)
	if err != nil {
		return err
	}
	if err := fn(&work); err != nil {
		return err
	}
	e.draft = &work
	return nil
}

// Draft returns a copy of the draft, or false when none is open.
func (e *editorBase[T]) Draft() (T, bool) {
	if e.draft == nil {
		var zero T
		return zero, false
	}
	return *e.draft, true
}

func (e *editorBase[T]) CancelDraft() {
	e.draft = nil
	e.notice = nil
}

func (e *editorBase[T]) succeeded(ctx context.Context, text string) {
	e.notice = &Notice{Level: NoticeSuccess, Text: text}
	if e.afterWrite != nil {
		e.afterWrite(ctx)
	}
}

func (e *editorBase[T]) failed(err error, text string) error {
	e.notice = &Notice{Level: NoticeError, Text: text}
	logrus.WithField("kind", e.kind).WithError(err).Error(text)
	return err
}

func (e *editorBase[T]) draftState() any {
	if e.draft == nil {
		return nil
	}
	return *e.draft
}

// SingletonEditor edits one fixed document in the content collection.
type SingletonEditor[T domain.Content] struct {
	editorBase[T]
	key   string
	def   func() T
	value T
}

func NewSingletonEditor[T domain.Content](kind domain.Kind, store ports.DocumentStore, def func() T) *SingletonEditor[T] {
	return &SingletonEditor[T]{
		editorBase: editorBase[T]{kind: kind, store: store},
		key:        string(kind),
		def:        def,
		value:      def(),
	}
}

// CurrentID is the id the admin API uses to address a singleton.
const CurrentID = "current"

func (e *SingletonEditor[T]) BeginCreate() error {
	return fmt.Errorf("%s: %w", e.kind, domain.ErrSingleton)
}

// BeginEdit opens a draft of the current value. id may be empty, "current"
// or the singleton key.
func (e *SingletonEditor[T]) BeginEdit(id string) error {
	if id != "" && id != CurrentID && id != e.key {
		return fmt.Errorf("%s %q: %w", e.kind, id, domain.ErrNotFound)
	}
	return e.setDraft(e.value)
}

// Commit upserts the one fixed document.
func (e *SingletonEditor[T]) Commit(ctx context.Context) error {
	if e.draft == nil {
		return domain.ErrNoDraft
	}
	if err := (*e.draft).Validate(); err != nil {
		return e.failed(err, "Error saving "+string(e.kind)+": "+err.Error())
	}
	fields, err := encode(*e.draft)
	if err != nil {
		return e.failed(err, "Error saving "+string(e.kind))
	}
	if err := e.store.SetDocument(ctx, domain.CollectionContent, e.key, fields); err != nil {
		return e.failed(err, "Error saving "+string(e.kind))
	}
	e.draft = nil
	e.succeeded(ctx, "Saved successfully!")
	return nil
}

func (e *SingletonEditor[T]) Remove(context.Context, string, bool) error {
	return fmt.Errorf("%s: %w", e.kind, domain.ErrSingleton)
}

// Reload reads through the fallback loader, so it never fails.
func (e *SingletonEditor[T]) Reload(ctx context.Context) error {
	e.value = loadSingleton(ctx, e.store, e.key, e.def())
	return nil
}

func (e *SingletonEditor[T]) Value() T { return e.value }

func (e *SingletonEditor[T]) Snapshot() EditorState {
	return EditorState{Kind: e.kind, Value: e.value, Draft: e.draftState(), Notice: e.notice}
}

// CollectionEditor edits the items of one collection. Its list is the raw
// store content: an empty collection shows as empty here, not as defaults.
type CollectionEditor[T domain.Item] struct {
	editorBase[T]
	collection string
	order      *ports.Order
	template   func(items []T) T
	sortItems  func([]T)
	check      func(T) error
	items      []T
}

// CollectionOption customizes a CollectionEditor.
type CollectionOption[T domain.Item] func(*CollectionEditor[T])

// WithSort orders the loaded list in memory after reading.
func WithSort[T domain.Item](sortItems func([]T)) CollectionOption[T] {
	return func(e *CollectionEditor[T]) { e.sortItems = sortItems }
}

// WithDraftCheck adds a check only drafts must pass before commit.
func WithDraftCheck[T domain.Item](check func(T) error) CollectionOption[T] {
	return func(e *CollectionEditor[T]) { e.check = check }
}

func NewCollectionEditor[T domain.Item](kind domain.Kind, store ports.DocumentStore, template func(items []T) T, opts ...CollectionOption[T]) *CollectionEditor[T] {
	e := &CollectionEditor[T]{
		editorBase: editorBase[T]{kind: kind, store: store},
		collection: kind.Collection(),
		order:      orderFor(kind),
		template:   template,
		items:      []T{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BeginCreate opens a draft from the kind's template. The draft has no id.
func (e *CollectionEditor[T]) BeginCreate() error {
	return e.setDraft(e.template(e.items))
}

func (e *CollectionEditor[T]) BeginEdit(id string) error {
	for _, item := range e.items {
		if item.DocumentID() == id {
			return e.setDraft(item)
		}
	}
	return fmt.Errorf("%s %q: %w", e.kind, id, domain.ErrNotFound)
}

// BeginEditItem opens a draft copied from item, id included.
func (e *CollectionEditor[T]) BeginEditItem(item T) error {
	return e.setDraft(item)
}

// Commit creates the draft when it has no id and updates the stored item
// otherwise. On failure the draft stays open.
func (e *CollectionEditor[T]) Commit(ctx context.Context) error {
	if e.draft == nil {
		return domain.ErrNoDraft
	}
	draft := *e.draft

	if err := draft.Validate(); err != nil {
		return e.failed(err, "Error saving: "+err.Error())
	}
	if e.check != nil {
		if err := e.check(draft); err != nil {
			return e.failed(err, "Error saving: "+err.Error())
		}
	}

	fields, err := encode(draft)
	if err != nil {
		return e.failed(err, "Error saving")
	}

	if id := draft.DocumentID(); id != "" {
		err = e.store.UpdateDocument(ctx, e.collection, id, fields)
	} else {
		_, err = e.store.AddDocument(ctx, e.collection, fields)
	}
	if err != nil {
		return e.failed(err, "Error saving")
	}

	e.draft = nil
	e.succeeded(ctx, "Saved successfully!")
	return nil
}

// Remove deletes exactly one item once the operator has confirmed. The list
// keeps showing the item until the next reload.
func (e *CollectionEditor[T]) Remove(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return domain.ErrNotConfirmed
	}
	if err := e.store.DeleteDocument(ctx, e.collection, id); err != nil {
		return e.failed(err, "Error deleting item")
	}
	e.succeeded(ctx, "Deleted")
	return nil
}

// Reload replaces the list with the store content. On failure the previous
// list is kept.
func (e *CollectionEditor[T]) Reload(ctx context.Context) error {
	docs, err := e.store.ListDocuments(ctx, e.collection, e.order)
	if err != nil {
		return fmt.Errorf("reload %s: %w", e.kind, err)
	}
	items := decodeAll[T](e.collection, docs)
	if e.sortItems != nil {
		e.sortItems(items)
	}
	e.items = items
	return nil
}

func (e *CollectionEditor[T]) Items() []T { return slices.Clone(e.items) }

func (e *CollectionEditor[T]) Snapshot() EditorState {
	return EditorState{Kind: e.kind, Items: e.Items(), Draft: e.draftState(), Notice: e.notice}
}

var (
	_ Editor = (*SingletonEditor[domain.Hero])(nil)
	_ Editor = (*CollectionEditor[domain.Project])(nil)
)
