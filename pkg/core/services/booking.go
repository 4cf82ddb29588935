package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/core/domain"
)

type Step int

const (
	StepChooseService Step = iota + 1
	StepChooseDateTime
	StepEnterContact
	StepConfirmed
)

func (s Step) String() string {
	switch s {
	case StepChooseService:
		return "choose-service"
	case StepChooseDateTime:
		return "choose-date-time"
	case StepEnterContact:
		return "enter-contact"
	case StepConfirmed:
		return "confirmed"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// BookingFailedMessage is shown inline when the appointment cannot be saved.
const BookingFailedMessage = "Failed to book appointment. Please try again."

const dateLayout = "2006-01-02"

// AppointmentSubmitter saves a finished booking.
type AppointmentSubmitter interface {
	SubmitAppointment(ctx context.Context, appt domain.Appointment) (*domain.Appointment, error)
}

// Wizard is the four-step public booking flow. It moves strictly forward and
// backward one step at a time and keeps nothing across sessions.
type Wizard struct {
	Step    Step   `json:"step"`
	Service string `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Error   string `json:"error,omitempty"`

	Appointment *domain.Appointment `json:"appointment,omitempty"`
}

func NewWizard() *Wizard {
	return &Wizard{Step: StepChooseService}
}

func (w *Wizard) blocked(action string) error {
	return fmt.Errorf("%w: cannot %s on step %d", domain.ErrStepBlocked, action, w.Step)
}

// SelectService picks a catalog service by id or title and advances to the
// date and time step.
func (w *Wizard) SelectService(name string) error {
	if w.Step != StepChooseService {
		return w.blocked("select a service")
	}
	name = strings.TrimSpace(name)
	for _, s := range domain.BookingServices() {
		if strings.EqualFold(name, s.ID) || strings.EqualFold(name, s.Title) {
			w.Service = s.Title
			w.Step = StepChooseDateTime
			return nil
		}
	}
	return fmt.Errorf("%w: unknown service %q", domain.ErrInvalidContent, name)
}

func (w *Wizard) SetDate(date string) error {
	if w.Step != StepChooseDateTime {
		return w.blocked("pick a date")
	}
	date = strings.TrimSpace(date)
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("%w: date %q must look like %s", domain.ErrInvalidContent, date, dateLayout)
	}
	w.Date = date
	return nil
}

func (w *Wizard) SetTime(slot string) error {
	if w.Step != StepChooseDateTime {
		return w.blocked("pick a time")
	}
	if !domain.IsTimeSlot(slot) {
		return fmt.Errorf("%w: %q is not an available time slot", domain.ErrInvalidContent, slot)
	}
	w.Time = slot
	return nil
}

// CanContinue reports whether the date and time step may advance.
func (w *Wizard) CanContinue() bool {
	return w.Step == StepChooseDateTime && w.Date != "" && w.Time != ""
}

func (w *Wizard) Next() error {
	if !w.CanContinue() {
		return w.blocked("continue without a date and time")
	}
	w.Step = StepEnterContact
	return nil
}

// Back is allowed from the date and time step and the contact step only.
func (w *Wizard) Back() error {
	if w.Step != StepChooseDateTime && w.Step != StepEnterContact {
		return w.blocked("go back")
	}
	w.Step--
	w.Error = ""
	return nil
}

func (w *Wizard) SetContact(name, email string) error {
	if w.Step != StepEnterContact {
		return w.blocked("enter contact details")
	}
	w.Name = strings.TrimSpace(name)
	w.Email = strings.TrimSpace(email)
	return nil
}

// Submit saves the appointment. On failure the wizard stays on the contact
// step with Error set and every field intact.
func (w *Wizard) Submit(ctx context.Context, submitter AppointmentSubmitter) error {
	if w.Step != StepEnterContact {
		return w.blocked("submit")
	}
	if w.Name == "" || w.Email == "" {
		return w.blocked("submit without a name and email")
	}

	saved, err := submitter.SubmitAppointment(ctx, domain.Appointment{
		Service: w.Service,
		Date:    w.Date,
		Time:    w.Time,
		Name:    w.Name,
		Email:   w.Email,
	})
	if err != nil {
		w.Error = BookingFailedMessage
		return err
	}

	w.Error = ""
	w.Appointment = saved
	w.Step = StepConfirmed
	return nil
}

// StartOver clears every field and returns to the first step.
func (w *Wizard) StartOver() {
	*w = Wizard{Step: StepChooseService}
}
