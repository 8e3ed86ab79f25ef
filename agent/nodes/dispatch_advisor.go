package turnnode

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/Orlavan/TechFlow-AI-Recruiter/agent/contract"
)

const (
	apologyReply = "I'm sorry, I encountered an error. Please try again."

	closingBooked  = "Great! Your interview is confirmed. You'll receive a calendar invite shortly. Good luck!"
	closingDefault = "Thank you for your time. We'll keep your information on file for future opportunities."
)

// DispatchAdvisor routes the final action to the advisor that produces the
// reply. A successful booking flips the turn to END on the spot so the
// closing state is saved with this turn.
func DispatchAdvisor(
	ctx context.Context,
	in *GraphState,
	models contractx.Registry,
	scheduler contractx.Scheduler,
) (*GraphState, error) {
	if in == nil || in.State == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	switch in.Action {
	case contractx.ActionSchedule:
		result, err := scheduler.Handle(ctx, contractx.ScheduleRequest{
			SessionID:     in.SessionID,
			Message:       in.Text,
			History:       in.History,
			ReferenceTime: in.State.StartedAt,
		})
		if err != nil {
			log.Error().Err(err).Str("session_id", in.SessionID).Msg("scheduling turn failed")
			in.Reply = apologyReply
			return in, nil
		}
		in.Reply = result.Reply
		if result.Booked {
			in.State.InterviewBooked = true
			in.Action = contractx.ActionEnd
		}

	case contractx.ActionEnd:
		msg, err := models.Exit().ExitMessage(ctx, in.History, in.State.InterviewBooked)
		if err != nil || strings.TrimSpace(msg) == "" {
			if err != nil {
				log.Warn().Err(err).Str("session_id", in.SessionID).Msg("exit message failed, using fixed closing")
			}
			msg = closingDefault
			if in.State.InterviewBooked {
				msg = closingBooked
			}
		}
		in.Reply = msg

	default:
		var responder contractx.Responder = models.Screener()
		if info := models.Info(); info != nil && info.NeedsRetrieval(in.Text) {
			responder = info
		}
		reply, err := responder.Respond(ctx, in.Text, in.History)
		if err != nil {
			log.Error().Err(err).Str("session_id", in.SessionID).Msg("responder failed")
			reply = apologyReply
		}
		in.Reply = reply
	}

	return in, nil
}
