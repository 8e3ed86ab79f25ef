package contract

import "context"

// ActionClassifier produces the tentative per-turn action from full history.
type ActionClassifier interface {
	DecideAction(ctx context.Context, history string) (Action, error)
}

// ExitAdvisor independently judges conversation termination and composes the
// closing message. Callers treat an Evaluate error as CONTINUE (fail-safe).
type ExitAdvisor interface {
	Evaluate(ctx context.Context, message string, history string) (Action, error)
	ExitMessage(ctx context.Context, history string, interviewBooked bool) (string, error)
}

// IntentClassifier labels a scheduling utterance.
type IntentClassifier interface {
	ClassifyIntent(ctx context.Context, message string, history string) (Intent, error)
}

// Responder generates a conversational reply.
type Responder interface {
	Respond(ctx context.Context, message string, history string) (string, error)
}

// InfoAdvisor answers candidate questions. NeedsRetrieval is the lexical
// question check the orchestrator uses to pick it over the screener.
type InfoAdvisor interface {
	Responder
	NeedsRetrieval(message string) bool
}

// Scheduler is the scheduling subsystem boundary.
type Scheduler interface {
	Handle(ctx context.Context, req ScheduleRequest) (ScheduleResult, error)
}

// Registry bundles the LLM-backed advisors.
type Registry interface {
	Main() ActionClassifier
	Exit() ExitAdvisor
	Intent() IntentClassifier
	Screener() Responder
	Info() InfoAdvisor
}
