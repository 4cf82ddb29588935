package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/core/domain"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/ports"
)

// ConsoleConfig is shared by every admin console.
type ConsoleConfig struct {
	Store       ports.DocumentStore
	Submissions ports.SubmissionService
	AccessCode  string
	Policy      ReloadPolicy
}

// Console is one open admin surface: a gate, one editor per content kind and
// the two submission lists. Its methods are safe for concurrent use.
type Console struct {
	ID string

	mu          sync.Mutex
	gate        *Gate
	policy      ReloadPolicy
	submissions ports.SubmissionService

	editors  map[domain.Kind]Editor
	projects *CollectionEditor[domain.Project]

	messages     []domain.Message
	appointments []domain.Appointment
}

// ConsoleState is the bulk view of everything the admin surface shows.
type ConsoleState struct {
	ID           string                      `json:"id"`
	State        string                      `json:"state"`
	Error        string                      `json:"error,omitempty"`
	Editors      map[domain.Kind]EditorState `json:"editors,omitempty"`
	Messages     []domain.Message            `json:"messages,omitempty"`
	Appointments []domain.Appointment        `json:"appointments,omitempty"`
}

type afterWriteSetter interface {
	setAfterWrite(fn func(ctx context.Context))
}

func NewConsole(id string, cfg ConsoleConfig) *Console {
	store := cfg.Store
	c := &Console{
		ID:           id,
		gate:         NewGate(cfg.AccessCode),
		policy:       cfg.Policy,
		submissions:  cfg.Submissions,
		messages:     []domain.Message{},
		appointments: []domain.Appointment{},
	}
	if c.policy == "" {
		c.policy = ReloadAll
	}

	c.projects = NewCollectionEditor(domain.KindProjects, store,
		func([]domain.Project) domain.Project { return domain.NewProject() })

	c.editors = map[domain.Kind]Editor{
		domain.KindHero:  NewSingletonEditor(domain.KindHero, store, domain.DefaultHero),
		domain.KindAbout: NewSingletonEditor(domain.KindAbout, store, domain.DefaultAbout),
		domain.KindServices: NewCollectionEditor(domain.KindServices, store,
			func([]domain.Service) domain.Service { return domain.NewService() },
			WithDraftCheck(domain.Service.CheckDraft)),
		domain.KindProjects: c.projects,
		domain.KindExperience: NewCollectionEditor(domain.KindExperience, store,
			func(items []domain.Experience) domain.Experience { return domain.NewExperience(len(items)) },
			WithSort(domain.SortExperience)),
		domain.KindSkills: NewCollectionEditor(domain.KindSkills, store,
			func([]domain.Skill) domain.Skill { return domain.NewSkill() },
			WithSort(domain.SortSkills)),
	}

	for kind, ed := range c.editors {
		ed.(afterWriteSetter).setAfterWrite(c.afterWrite(kind))
	}
	return c
}

// afterWrite runs with c.mu held.
func (c *Console) afterWrite(kind domain.Kind) func(ctx context.Context) {
	return func(ctx context.Context) {
		if c.policy == ReloadAffected {
			c.reloadKind(ctx, kind)
			return
		}
		c.reloadAll(ctx)
	}
}

func (c *Console) reloadKind(ctx context.Context, kind domain.Kind) {
	if err := c.editors[kind].Reload(ctx); err != nil {
		logrus.WithField("kind", kind).WithError(err).Warn("reload failed, keeping previous list")
	}
}

func (c *Console) reloadMessages(ctx context.Context) error {
	items, err := c.submissions.Messages(ctx)
	if err != nil {
		return err
	}
	c.messages = items
	return nil
}

func (c *Console) reloadAppointments(ctx context.Context) error {
	items, err := c.submissions.Appointments(ctx)
	if err != nil {
		return err
	}
	c.appointments = items
	return nil
}

// reloadAll refetches everything. A failing list keeps its previous content.
func (c *Console) reloadAll(ctx context.Context) error {
	var errs []error
	for _, kind := range domain.Kinds {
		if err := c.editors[kind].Reload(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := c.reloadMessages(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := c.reloadAppointments(ctx); err != nil {
		errs = append(errs, err)
	}
	err := errors.Join(errs...)
	if err != nil {
		logrus.WithField("console", c.ID).WithError(err).Warn("reload incomplete")
	}
	return err
}

// Unlock submits the access code and loads every list once the gate opens.
func (c *Console) Unlock(ctx context.Context, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gate.State() == Unlocked {
		return nil
	}
	if err := c.gate.Submit(code); err != nil {
		return err
	}
	c.reloadAll(ctx)
	return nil
}

func (c *Console) Unlocked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gate.State() == Unlocked
}

// do runs fn on the kind's editor once the gate is open.
func (c *Console) do(kind domain.Kind, fn func(Editor) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gate.State() != Unlocked {
		return domain.ErrLocked
	}
	ed, ok := c.editors[kind]
	if !ok {
		return fmt.Errorf("content kind %q: %w", kind, domain.ErrNotFound)
	}
	return fn(ed)
}

func (c *Console) Reload(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gate.State() != Unlocked {
		return domain.ErrLocked
	}
	return c.reloadAll(ctx)
}

func (c *Console) Snapshot() ConsoleState {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := ConsoleState{ID: c.ID, State: c.gate.State().String(), Error: c.gate.Message()}
	if c.gate.State() != Unlocked {
		return state
	}
	state.Editors = make(map[domain.Kind]EditorState, len(c.editors))
	for kind, ed := range c.editors {
		state.Editors[kind] = ed.Snapshot()
	}
	state.Messages = slices.Clone(c.messages)
	state.Appointments = slices.Clone(c.appointments)
	return state
}

func (c *Console) EditorState(kind domain.Kind) (EditorState, error) {
	var state EditorState
	err := c.do(kind, func(ed Editor) error {
		state = ed.Snapshot()
		return nil
	})
	return state, err
}

func (c *Console) BeginCreate(kind domain.Kind) error {
	return c.do(kind, func(ed Editor) error { return ed.BeginCreate() })
}

func (c *Console) BeginEdit(kind domain.Kind, id string) error {
	return c.do(kind, func(ed Editor) error { return ed.BeginEdit(id) })
}

func (c *Console) UpdateDraftField(kind domain.Kind, field string, value json.RawMessage) error {
	return c.do(kind, func(ed Editor) error { return ed.UpdateDraftField(field, value) })
}

func (c *Console) CancelDraft(kind domain.Kind) error {
	return c.do(kind, func(ed Editor) error {
		ed.CancelDraft()
		return nil
	})
}

func (c *Console) Commit(ctx context.Context, kind domain.Kind) error {
	return c.do(kind, func(ed Editor) error { return ed.Commit(ctx) })
}

func (c *Console) Remove(ctx context.Context, kind domain.Kind, id string, confirmed bool) error {
	return c.do(kind, func(ed Editor) error { return ed.Remove(ctx, id, confirmed) })
}

// AddGalleryURL appends url to the open project draft. A blank url changes
// nothing.
func (c *Console) AddGalleryURL(url string) error {
	return c.do(domain.KindProjects, func(Editor) error {
		return c.projects.MutateDraft(func(p *domain.Project) error {
			p.AddGalleryURL(url)
			return nil
		})
	})
}

func (c *Console) RemoveGalleryURL(index int) error {
	return c.do(domain.KindProjects, func(Editor) error {
		return c.projects.MutateDraft(func(p *domain.Project) error {
			return p.RemoveGalleryURL(index)
		})
	})
}

func (c *Console) Messages() ([]domain.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gate.State() != Unlocked {
		return nil, domain.ErrLocked
	}
	return slices.Clone(c.messages), nil
}

func (c *Console) Appointments() ([]domain.Appointment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gate.State() != Unlocked {
		return nil, domain.ErrLocked
	}
	return slices.Clone(c.appointments), nil
}

func (c *Console) DeleteMessage(ctx context.Context, id string, confirmed bool) error {
	return c.deleteSubmission(ctx, c.submissions.DeleteMessage, c.reloadMessages, id, confirmed)
}

func (c *Console) DeleteAppointment(ctx context.Context, id string, confirmed bool) error {
	return c.deleteSubmission(ctx, c.submissions.DeleteAppointment, c.reloadAppointments, id, confirmed)
}

func (c *Console) deleteSubmission(ctx context.Context,
	del func(ctx context.Context, id string, confirmed bool) error,
	reload func(ctx context.Context) error,
	id string, confirmed bool,
) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gate.State() != Unlocked {
		return domain.ErrLocked
	}
	if err := del(ctx, id, confirmed); err != nil {
		return err
	}
	if c.policy == ReloadAffected {
		if err := reload(ctx); err != nil {
			logrus.WithError(err).Warn("reload failed, keeping previous list")
		}
		return nil
	}
	c.reloadAll(ctx)
	return nil
}

// MaxLockedConsoles bounds how many consoles may wait at the gate. Opening
// one more evicts the oldest console that is still locked.
const MaxLockedConsoles = 64

// Sessions tracks every open console by id. Unlocked consoles never expire;
// they live as long as the process.
type Sessions struct {
	mu       sync.RWMutex
	cfg      ConsoleConfig
	consoles map[string]*Console
	// locked holds ids in opening order; entries that have since been
	// unlocked are pruned on the next Open.
	locked   []string
}

func NewSessions(cfg ConsoleConfig) *Sessions {
	return &Sessions{cfg: cfg, consoles: map[string]*Console{}}
}

// Open creates a new locked console.
func (s *Sessions) Open() *Console {
	c := NewConsole(uuid.NewString(), s.cfg)

	s.mu.Lock()
	defer s.mu.Unlock()

	pending := s.locked[:0]
	for _, id := range s.locked {
		if existing, ok := s.consoles[id]; ok && !existing.Unlocked() {
			pending = append(pending, id)
		}
	}
	for len(pending) >= MaxLockedConsoles {
		delete(s.consoles, pending[0])
		logrus.WithField("console", pending[0]).Debug("evicted locked console")
		pending = pending[1:]
	}
	s.locked = append(pending, c.ID)
	s.consoles[c.ID] = c
	return c
}

func (s *Sessions) Get(id string) (*Console, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.consoles[id]
	return c, ok
}

// Len reports how many consoles are held.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.consoles)
}
