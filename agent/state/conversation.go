package state

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// ConversationState is the per-conversation record owned by one orchestrator
// instance. It is never shared across conversations; the slot store is the
// only cross-conversation state in the system.
type ConversationState struct {
	SessionID string `json:"session_id"`

	// Screening progress. ScreeningComplete is monotonic: once true it stays
	// true until an explicit Reset.
	ScreeningSignals  int  `json:"screening_signals"`
	ScreeningComplete bool `json:"screening_complete"`

	InterviewBooked bool `json:"interview_booked"`

	// StartedAt anchors relative date resolution ("next Friday", "tomorrow")
	// for the whole conversation. Set at creation, replaced only by Reset.
	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// screeningTarget is the number of qualifying signals that completes screening.
const screeningTarget = 2

var (
	experienceKeywords = []string{"year", "experience", "worked for", "been working"}
	techKeywords       = []string{
		"python", "django", "flask", "aws", "docker", "sql",
		"fastapi", "react", "kubernetes", "cloud",
	}
	numeralPattern = regexp.MustCompile(`\d+`)
)

var ErrBookedBeforeScreening = errors.New("interview booked before screening completed")

func NewConversationState(sessionID string, now time.Time) *ConversationState {
	return &ConversationState{
		SessionID: sessionID,
		StartedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
}

func (s *ConversationState) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

// TrackScreening counts qualifying signals in one candidate utterance and
// returns how many were added. An experience-duration mention (keyword plus a
// numeral) and a tech-stack mention each count once, so a single utterance can
// contribute at most two. Completion at the target is monotonic.
func (s *ConversationState) TrackScreening(text string) int {
	lower := strings.ToLower(text)
	added := 0

	for _, kw := range experienceKeywords {
		if strings.Contains(lower, kw) {
			if numeralPattern.MatchString(text) {
				added++
			}
			break
		}
	}

	for _, kw := range techKeywords {
		if strings.Contains(lower, kw) {
			added++
			break
		}
	}

	s.ScreeningSignals += added
	if s.ScreeningSignals >= screeningTarget {
		s.ScreeningComplete = true
	}
	return added
}

// Reset restores initial values with a fresh conversation anchor. The
// conversation history is owned by the caller and is not touched here.
func (s *ConversationState) Reset(now time.Time) {
	s.ScreeningSignals = 0
	s.ScreeningComplete = false
	s.InterviewBooked = false
	s.StartedAt = now.UTC()
	s.UpdatedAt = now.UTC()
}

func (s *ConversationState) Validate() error {
	if s.InterviewBooked && !s.ScreeningComplete {
		return ErrBookedBeforeScreening
	}
	return nil
}
