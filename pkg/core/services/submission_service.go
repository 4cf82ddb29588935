package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/core/domain"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/ports"
)

var newestFirst = &ports.Order{Field: "createdAt", Direction: ports.Desc}

// notifyTimeout bounds one background notification.
const notifyTimeout = 15 * time.Second

// SubmissionService stores visitor messages and appointment requests. They
// are append-only: the operator may view and delete them, never edit them.
type SubmissionService struct {
	store    ports.DocumentStore
	notifier ports.Notifier
	now      func() time.Time
	pending  sync.WaitGroup
}

// NewSubmissionService creates the service. notifier may be nil.
func NewSubmissionService(store ports.DocumentStore, notifier ports.Notifier) *SubmissionService {
	return &SubmissionService{store: store, notifier: notifier, now: time.Now}
}

func (s *SubmissionService) SubmitMessage(ctx context.Context, msg domain.Message) (*domain.Message, error) {
	msg.ID = ""
	msg.CreatedAt = domain.NewTimestamp(s.now())
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	fields, err := encode(msg)
	if err != nil {
		return nil, err
	}
	id, err := s.store.AddDocument(ctx, domain.CollectionMessages, fields)
	if err != nil {
		return nil, fmt.Errorf("save message: %w", err)
	}
	msg.ID = id

	if s.notifier != nil {
		s.notify(ctx, "message", id, func(ctx context.Context) error {
			return s.notifier.NotifyMessage(ctx, msg)
		})
	}
	return &msg, nil
}

func (s *SubmissionService) SubmitAppointment(ctx context.Context, appt domain.Appointment) (*domain.Appointment, error) {
	appt.ID = ""
	appt.CreatedAt = domain.NewTimestamp(s.now())
	appt.Status = domain.StatusPending
	if err := appt.Validate(); err != nil {
		return nil, err
	}

	fields, err := encode(appt)
	if err != nil {
		return nil, err
	}
	id, err := s.store.AddDocument(ctx, domain.CollectionAppointments, fields)
	if err != nil {
		return nil, fmt.Errorf("save appointment: %w", err)
	}
	appt.ID = id

	if s.notifier != nil {
		s.notify(ctx, "appointment", id, func(ctx context.Context) error {
			return s.notifier.NotifyAppointment(ctx, appt)
		})
	}
	return &appt, nil
}

// notify sends in the background so the visitor's request does not wait on
// the notifier. The send outlives the request but not notifyTimeout.
func (s *SubmissionService) notify(ctx context.Context, what, id string, send func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer cancel()
		if err := send(ctx); err != nil {
			logrus.WithField("id", id).WithError(err).Warnf("%s notification failed", what)
		}
	}()
}

// Wait blocks until every notification already dispatched has finished.
func (s *SubmissionService) Wait() {
	s.pending.Wait()
}

// Messages lists messages newest first.
func (s *SubmissionService) Messages(ctx context.Context) ([]domain.Message, error) {
	docs, err := s.store.ListDocuments(ctx, domain.CollectionMessages, newestFirst)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	items := decodeAll[domain.Message](domain.CollectionMessages, docs)
	domain.SortMessages(items)
	return items, nil
}

// Appointments lists appointment requests newest first.
func (s *SubmissionService) Appointments(ctx context.Context) ([]domain.Appointment, error) {
	docs, err := s.store.ListDocuments(ctx, domain.CollectionAppointments, newestFirst)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	items := decodeAll[domain.Appointment](domain.CollectionAppointments, docs)
	domain.SortAppointments(items)
	return items, nil
}

func (s *SubmissionService) DeleteMessage(ctx context.Context, id string, confirmed bool) error {
	return s.remove(ctx, domain.CollectionMessages, id, confirmed)
}

func (s *SubmissionService) DeleteAppointment(ctx context.Context, id string, confirmed bool) error {
	return s.remove(ctx, domain.CollectionAppointments, id, confirmed)
}

func (s *SubmissionService) remove(ctx context.Context, collection, id string, confirmed bool) error {
	if !confirmed {
		return domain.ErrNotConfirmed
	}
	if err := s.store.DeleteDocument(ctx, collection, id); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

var _ ports.SubmissionService = (*SubmissionService)(nil)
