package ports

import (
	"context"
	"time"

	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/core/domain"
)

// Fields is the untyped body of a stored document.
type Fields map[string]any

// Document is one stored document and its store-assigned id.
type Document struct {
	ID     string `json:"id"`
	Fields Fields `json:"fields"`
}

// DumpedDocument carries a document with its collection for export/import.
type DumpedDocument struct {
	Collection string    `json:"collection"`
	ID         string    `json:"id"`
	Fields     Fields    `json:"fields"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Order asks the store to sort a listing by one top-level field.
type Order struct {
	Field     string
	Direction Direction
}

// DocumentStore defines the document database the content core talks to
type DocumentStore interface {
	GetDocument(ctx context.Context, collection, id string) (*Document, error) // nil, nil when absent
	SetDocument(ctx context.Context, collection, id string, fields Fields) error
	UpdateDocument(ctx context.Context, collection, id string, fields Fields) error // Merge; domain.ErrNotFound when absent
	AddDocument(ctx context.Context, collection string, fields Fields) (string, error)
	DeleteDocument(ctx context.Context, collection, id string) error
	ListDocuments(ctx context.Context, collection string, order *Order) ([]Document, error)
	Dump(ctx context.Context) ([]DumpedDocument, error) // For migration
	Close() error
}

// ContentService serves public sections, substituting built-in content
// whenever the store has nothing usable. Reads never fail.
type ContentService interface {
	Hero(ctx context.Context) domain.Hero
	About(ctx context.Context) domain.About
	Services(ctx context.Context) []domain.Service
	Projects(ctx context.Context, category string) []domain.Project
	Project(ctx context.Context, id string) (*domain.Project, error)
	Categories(ctx context.Context) []string
	Experience(ctx context.Context) []domain.Experience
	Skills(ctx context.Context) []domain.Skill
}

// SubmissionService accepts visitor submissions and lets the operator view
// and delete them.
type SubmissionService interface {
	SubmitMessage(ctx context.Context, msg domain.Message) (*domain.Message, error)
	SubmitAppointment(ctx context.Context, appt domain.Appointment) (*domain.Appointment, error)
	Messages(ctx context.Context) ([]domain.Message, error)
	Appointments(ctx context.Context) ([]domain.Appointment, error)
	DeleteMessage(ctx context.Context, id string, confirmed bool) error
	DeleteAppointment(ctx context.Context, id string, confirmed bool) error
}

// ChatSink receives one chat answer: fragments in order, or the fallback
// text when the completion service faults.
type ChatSink interface {
	Fragment(text string) error
	Fallback(text string) error
}

// ChatService answers visitor questions, streaming the answer into sink.
type ChatService interface {
	Ask(ctx context.Context, utterance string, sink ChatSink) error
}

// CompletionRequest is everything sent to the text completion service:
// only the latest utterance, never the prior turns.
type CompletionRequest struct {
	Model       string
	Instruction string
	Utterance   string
}

// TextCompleter is a hosted language model with incremental delivery.
type TextCompleter interface {
	Stream(ctx context.Context, req CompletionRequest, onFragment func(fragment string) error) error
}

// Notifier tells the site owner about new submissions.
type Notifier interface {
	NotifyMessage(ctx context.Context, msg domain.Message) error
	NotifyAppointment(ctx context.Context, appt domain.Appointment) error
}
