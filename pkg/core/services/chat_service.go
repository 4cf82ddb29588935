package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/core/domain"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/ports"
)

// MaxUtteranceRunes caps what one question may send to the completion service.
const MaxUtteranceRunes = 2000

// ChatService relays one visitor question at a time to the completion
// service. Prior turns are never sent.
type ChatService struct {
	completer   ports.TextCompleter
	model       string
	instruction string
}

// NewChatService creates the service. A nil completer answers every
// question with the apology.
func NewChatService(completer ports.TextCompleter, model string) *ChatService {
	return &ChatService{
		completer:   completer,
		model:       model,
		instruction: domain.ChatInstruction(),
	}
}

// Ask streams the answer to utterance into sink. Any fault from the
// completion service ends with the fixed apology instead of an error.
func (s *ChatService) Ask(ctx context.Context, utterance string, sink ports.ChatSink) error {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return domain.ErrEmptyMessage
	}
	if utf8.RuneCountInString(utterance) > MaxUtteranceRunes {
		return domain.ErrMessageTooLong
	}
	if s.completer == nil {
		return sink.Fallback(domain.ChatApology)
	}

	var sinkErr error
	err := s.completer.Stream(ctx, ports.CompletionRequest{
		Model:       s.model,
		Instruction: s.instruction,
		Utterance:   utterance,
	}, func(fragment string) error {
		if fragment == "" {
			return nil
		}
		sinkErr = sink.Fragment(fragment)
		return sinkErr
	})
	if sinkErr != nil {
		return sinkErr
	}
	if err != nil {
		logrus.WithError(err).Warn("chat completion failed")
		return sink.Fallback(domain.ChatApology)
	}
	return nil
}

var _ ports.ChatService = (*ChatService)(nil)
