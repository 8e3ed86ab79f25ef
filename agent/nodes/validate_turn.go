package turnnode

import (
	"strings"
	"time"
)

func ValidateTurn(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return nil, ErrInvalidSession
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrInvalidMessage
	}

	history := strings.TrimSpace(in.History)
	line := "Candidate: " + text
	if history == "" {
		history = line
	} else {
		history = history + "\n" + line
	}

	return &GraphState{
		SessionID: sessionID,
		Text:      text,
		History:   history,
		Now:       nowFn().UTC(),
	}, nil
}
