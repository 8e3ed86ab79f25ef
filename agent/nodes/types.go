package turnnode

import (
	"errors"
	"time"

	contractx "github.com/Orlavan/TechFlow-AI-Recruiter/agent/contract"
	statex "github.com/Orlavan/TechFlow-AI-Recruiter/agent/state"
)

var (
	ErrInvalidMessage = errors.New("message is empty")
	ErrInvalidSession = errors.New("session id is empty")
)

type GraphInput struct {
	SessionID string
	Text      string
	History   string
}

type GraphOutput struct {
	Reply  string
	Action contractx.Action
}

// GraphState is threaded through the turn pipeline. History is the working
// transcript including the current candidate line; Tentative is the
// classifier's raw decision before the override rules run.
type GraphState struct {
	SessionID string
	Text      string
	History   string
	Now       time.Time

	State *statex.ConversationState

	Tentative contractx.Action
	Action    contractx.Action
	Reply     string
}
