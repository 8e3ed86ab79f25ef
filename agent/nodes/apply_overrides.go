package turnnode

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/Orlavan/TechFlow-AI-Recruiter/agent/contract"
)

var (
	negativeReplies = []string{
		"nope", "nah", "not interested", "stop",
		"leave me alone", "go away", "don't want",
	}
	refusalPhrases = []string{
		"don't want to tell", "won't tell", "not interested", "leave me alone",
	}
)

// ApplyOverrides turns the tentative action into the final one:
//
//  1. END needs a second opinion. Unless the exit advisor agrees or the
//     interview is already booked, the turn demotes to CONTINUE.
//  2. A disengaged candidate escalates CONTINUE to END when the exit advisor
//     agrees, so two independent signals are required to hang up.
//  3. SCHEDULE is gated on completed screening.
func ApplyOverrides(ctx context.Context, in *GraphState, exit contractx.ExitAdvisor) (*GraphState, error) {
	if in == nil || in.State == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	action := in.Tentative

	switch {
	case action == contractx.ActionEnd:
		verdict, err := exit.Evaluate(ctx, in.Text, in.History)
		if err != nil {
			log.Warn().Err(err).Str("session_id", in.SessionID).Msg("exit evaluation failed, treating as CONTINUE")
			verdict = contractx.ActionContinue
		}
		if verdict != contractx.ActionEnd && !in.State.InterviewBooked {
			action = contractx.ActionContinue
		}

	case action == contractx.ActionContinue && isDisengaged(in.Text, in.History):
		verdict, err := exit.Evaluate(ctx, in.Text, in.History)
		if err == nil && verdict == contractx.ActionEnd {
			action = contractx.ActionEnd
		}
	}

	if action == contractx.ActionSchedule && !in.State.ScreeningComplete {
		log.Debug().
			Str("session_id", in.SessionID).
			Int("signals", in.State.ScreeningSignals).
			Msg("scheduling requested before screening completed, continuing instead")
		action = contractx.ActionContinue
	}

	in.Action = action
	return in, nil
}

// isDisengaged is a cheap lexical check for a candidate who wants out. A hard
// refusal phrase counts alone; a bare negative only counts after repeated
// negative turns in the transcript.
func isDisengaged(message string, history string) bool {
	lower := strings.ToLower(strings.TrimSpace(message))

	for _, phrase := range refusalPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}

	negative := lower == "no"
	if !negative {
		for _, phrase := range negativeReplies {
			if strings.Contains(lower, phrase) {
				negative = true
				break
			}
		}
	}
	if !negative {
		return false
	}

	return strings.Count(strings.ToLower(history), "candidate: no") >= 2
}
