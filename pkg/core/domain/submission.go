package domain

import (
	"cmp"
	"encoding/json"
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"time"
)

// timestampLayout is fixed-width so the stored string sorts chronologically.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp is a server-assigned UTC instant with millisecond precision.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Millisecond)}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(timestampLayout))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	*t = NewTimestamp(parsed)
	return nil
}

// Message is a contact form submission. Append-only: the operator can view
// and delete it, never edit it.
type Message struct {
	ID        string    `json:"id,omitempty"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt Timestamp `json:"createdAt"`
}

func (m Message) DocumentID() string { return m.ID }

func (m Message) Validate() error {
	if strings.TrimSpace(m.FullName) == "" {
		return invalid("full name is required")
	}
	if err := validateEmail(m.Email); err != nil {
		return err
	}
	if strings.TrimSpace(m.Message) == "" {
		return invalid("message is required")
	}
	return nil
}

const StatusPending = "pending"

// Appointment is a booking request created by the public wizard.
type Appointment struct {
	ID        string    `json:"id,omitempty"`
	Service   string    `json:"service"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt Timestamp `json:"createdAt"`
	Status    string    `json:"status"`
}

func (a Appointment) DocumentID() string { return a.ID }

func (a Appointment) Validate() error {
	switch {
	case strings.TrimSpace(a.Service) == "":
		return invalid("service is required")
	case strings.TrimSpace(a.Date) == "":
		return invalid("date is required")
	case strings.TrimSpace(a.Time) == "":
		return invalid("time is required")
	case strings.TrimSpace(a.Name) == "":
		return invalid("name is required")
	}
	return validateEmail(a.Email)
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return invalid("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return invalid("email %q is not valid", email)
	}
	return nil
}

// SortMessages orders messages newest first.
func SortMessages(items []Message) {
	slices.SortStableFunc(items, func(a, b Message) int {
		return cmp.Compare(b.CreatedAt.UnixMilli(), a.CreatedAt.UnixMilli())
	})
}

// SortAppointments orders appointments newest first.
func SortAppointments(items []Appointment) {
	slices.SortStableFunc(items, func(a, b Appointment) int {
		return cmp.Compare(b.CreatedAt.UnixMilli(), a.CreatedAt.UnixMilli())
	})
}
