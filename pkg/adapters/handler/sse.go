package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

// eventSink writes a chat answer as server-sent events. Headers go out with
// the first event, so an error before any output can still be answered as
// plain JSON.
type eventSink struct {
	w       http.ResponseWriter
	rc      *http.ResponseController
	started bool
}

func newEventSink(w http.ResponseWriter) *eventSink {
	return &eventSink{w: w, rc: http.NewResponseController(w)}
}

func (s *eventSink) Fragment(text string) error {
	return s.send("fragment", text)
}

func (s *eventSink) Fallback(text string) error {
	return s.send("fallback", text)
}

func (s *eventSink) done() {
	if err := s.send("done", ""); err != nil {
		logrus.WithError(err).Debug("chat client went away before done")
	}
}

func (s *eventSink) send(event, text string) error {
	if !s.started {
		h := s.w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		s.w.WriteHeader(http.StatusOK)
		s.started = true
	}

	data, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	if err := s.rc.Flush(); err != nil {
		logrus.WithError(err).Debug("response does not support flushing")
	}
	return nil
}
