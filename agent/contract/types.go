package contract

import (
	"strings"
	"time"
)

type AgentType string

const (
	AgentTypeMain     AgentType = "main"
	AgentTypeExit     AgentType = "exit"
	AgentTypeInfo     AgentType = "info"
	AgentTypeScreener AgentType = "screener"
	AgentTypeIntent   AgentType = "intent"
)

// Action is the orchestrator's per-turn decision.
type Action string

const (
	ActionContinue Action = "CONTINUE"
	ActionSchedule Action = "SCHEDULE"
	ActionEnd      Action = "END"
)

// ParseAction maps a raw model label to an Action. Exact match first, then
// case-insensitive substring containment, then the fallback. The containment
// pass means "I think CONTINUE" still resolves to CONTINUE.
func ParseAction(raw string, fallback Action) Action {
	label := strings.ToUpper(strings.TrimSpace(raw))
	switch Action(label) {
	case ActionContinue, ActionSchedule, ActionEnd:
		return Action(label)
	}
	for _, action := range []Action{ActionContinue, ActionSchedule, ActionEnd} {
		if strings.Contains(label, string(action)) {
			return action
		}
	}
	return fallback
}

// Intent classifies a scheduling utterance.
type Intent string

const (
	IntentRequestAvailability Intent = "REQUEST_AVAILABILITY"
	IntentProposeTime         Intent = "PROPOSE_TIME"
	IntentConfirmBooking      Intent = "CONFIRM_BOOKING"
	IntentOther               Intent = "OTHER"
)

// ParseIntent maps a raw model label to an Intent with the same containment
// contract as ParseAction. Spaces are normalized to underscores so
// "REQUEST AVAILABILITY" still parses. Unmatched labels fall back to OTHER.
func ParseIntent(raw string) Intent {
	label := strings.ToUpper(strings.TrimSpace(raw))
	label = strings.ReplaceAll(label, " ", "_")
	switch Intent(label) {
	case IntentRequestAvailability, IntentProposeTime, IntentConfirmBooking, IntentOther:
		return Intent(label)
	}
	for _, intent := range []Intent{IntentRequestAvailability, IntentProposeTime, IntentConfirmBooking} {
		if strings.Contains(label, string(intent)) {
			return intent
		}
	}
	return IntentOther
}

// ScheduleRequest carries one scheduling turn into the scheduling subsystem.
// ReferenceTime is the conversation's anchor timestamp, not wall-clock now,
// so relative dates ("next Tuesday") stay stable across a long conversation.
type ScheduleRequest struct {
	SessionID     string    `json:"session_id"`
	Message       string    `json:"message"`
	History       string    `json:"history"`
	ReferenceTime time.Time `json:"reference_time"`
}

type ScheduleResult struct {
	Reply  string `json:"reply"`
	Booked bool   `json:"booked"`
}
