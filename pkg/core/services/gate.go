package services

import (
	"crypto/subtle"

	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/core/domain"
)

type GateState int

const (
	Locked GateState = iota
	Unlocked
)

func (s GateState) String() string {
	if s == Unlocked {
		return "unlocked"
	}
	return "locked"
}

// InvalidCodeMessage is shown to the operator after a wrong code.
const InvalidCodeMessage = "Invalid Access Code"

// Gate is the shared access code check in front of the admin editors.
// It is a placeholder, not a security boundary: one code for everyone,
// no lockout, no expiry and no way back to Locked.
type Gate struct {
	secret  []byte
	state   GateState
	message string
}

func NewGate(secret string) *Gate {
	return &Gate{secret: []byte(secret)}
}

// Submit checks code against the configured secret. A gate with an empty
// secret never unlocks.
func (g *Gate) Submit(code string) error {
	if g.state == Unlocked {
		return nil
	}
	if len(g.secret) == 0 || subtle.ConstantTimeCompare([]byte(code), g.secret) != 1 {
		g.message = InvalidCodeMessage
		return domain.ErrInvalidAccessCode
	}
	g.state = Unlocked
	g.message = ""
	return nil
}

func (g *Gate) State() GateState { return g.state }

// Message is the inline error from the last failed submit.
func (g *Gate) Message() string { return g.message }
