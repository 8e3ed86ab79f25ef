package advisors

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	contractx "github.com/Orlavan/TechFlow-AI-Recruiter/agent/contract"
)

const (
	exitFallbackBooked  = "Great! Your interview is confirmed. You'll receive a calendar invite shortly. Good luck!"
	exitFallbackDefault = "Thank you for your time. We'll keep your information on file for future opportunities."
)

// exitAdvisor gives the second opinion on ending the conversation and writes
// the closing message.
type exitAdvisor struct {
	evaluateRunner compose.Runnable[map[string]any, *schema.Message]
	messageRunner  compose.Runnable[map[string]any, *schema.Message]
}

var _ contractx.ExitAdvisor = (*exitAdvisor)(nil)

func newExitAdvisor(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	evaluatePrompt string,
	messagePrompt string,
) (*exitAdvisor, error) {
	evaluateRunner, err := compileChatGraph(ctx, chatModel, evaluatePrompt, "advisor.exit_evaluate_graph")
	if err != nil {
		return nil, fmt.Errorf("%w: compile exit evaluate graph: %v", contractx.ErrModelInvoke, err)
	}
	messageRunner, err := compileChatGraph(ctx, chatModel, messagePrompt, "advisor.exit_message_graph")
	if err != nil {
		return nil, fmt.Errorf("%w: compile exit message graph: %v", contractx.ErrModelInvoke, err)
	}
	return &exitAdvisor{
		evaluateRunner: evaluateRunner,
		messageRunner:  messageRunner,
	}, nil
}

func (a *exitAdvisor) Evaluate(ctx context.Context, message string, history string) (contractx.Action, error) {
	input := "Latest message: " + message + "\n\nConversation:\n" + history + "\n\nVerdict:"

	msg, err := a.evaluateRunner.Invoke(ctx, map[string]any{"input": input})
	if err != nil {
		return contractx.ActionContinue, fmt.Errorf("%w: exit advisor invoke: %v", contractx.ErrModelInvoke, err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return contractx.ActionContinue, fmt.Errorf("%w: exit advisor returned empty content", contractx.ErrSchemaViolation)
	}

	return contractx.ParseAction(msg.Content, contractx.ActionContinue), nil
}

// ExitMessage composes the closing line. A model failure degrades to a fixed
// farewell instead of failing the turn.
func (a *exitAdvisor) ExitMessage(ctx context.Context, history string, interviewBooked bool) (string, error) {
	outcome := "candidate is leaving without booking"
	if interviewBooked {
		outcome = "interview was booked"
	}
	input := "Outcome: " + outcome + "\n\nConversation:\n" + history + "\n\nClosing message:"

	msg, err := a.messageRunner.Invoke(ctx, map[string]any{"input": input})
	if err != nil {
		log.Warn().Err(err).Msg("exit message generation failed, using fallback")
		return fallbackExitMessage(interviewBooked), nil
	}

	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return fallbackExitMessage(interviewBooked), nil
	}
	return strings.TrimSpace(msg.Content), nil
}

func fallbackExitMessage(interviewBooked bool) string {
	if interviewBooked {
		return exitFallbackBooked
	}
	return exitFallbackDefault
}
