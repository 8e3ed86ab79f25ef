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

// questionIndicators is the lexical check for "the candidate is asking us
// something" as opposed to answering a screening question.
var questionIndicators = []string{
	"?",
	"what", "how", "which", "when", "where", "who", "why",
	"tell me", "explain", "describe",
	"requirements", "salary", "benefits", "stack", "technology",
	"company", "team", "responsibilities", "experience needed",
}

// infoAdvisor answers candidate questions from the job description context
// and always pivots back to screening.
type infoAdvisor struct {
	runner     compose.Runnable[map[string]any, *schema.Message]
	jobContext string
}

var _ contractx.InfoAdvisor = (*infoAdvisor)(nil)

func newInfoAdvisor(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
	jobContext string,
) (*infoAdvisor, error) {
	runner, err := compileChatGraph(ctx, chatModel, systemPrompt, "advisor.info_graph")
	if err != nil {
		return nil, fmt.Errorf("%w: compile info advisor graph: %v", contractx.ErrModelInvoke, err)
	}
	return &infoAdvisor{
		runner:     runner,
		jobContext: jobContext,
	}, nil
}

func (a *infoAdvisor) NeedsRetrieval(message string) bool {
	lowered := strings.ToLower(message)
	for _, indicator := range questionIndicators {
		if strings.Contains(lowered, indicator) {
			return true
		}
	}
	return false
}

func (a *infoAdvisor) Respond(ctx context.Context, message string, history string) (string, error) {
	input := "Context:\n" + a.jobContext +
		"\n\nConversation:\n" + history +
		"\nCandidate: " + message +
		"\n\nAlex:"

	msg, err := a.runner.Invoke(ctx, map[string]any{"input": input})
	if err != nil {
		log.Warn().Err(err).Msg("info advisor invoke failed, using fallback answer")
		return fallbackAnswer(message), nil
	}

	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return fallbackAnswer(message), nil
	}
	return strings.TrimSpace(msg.Content), nil
}

// fallbackAnswer routes the most common questions to canned answers so a
// model outage never leaves the candidate hanging.
func fallbackAnswer(message string) string {
	lowered := strings.ToLower(message)
	switch {
	case strings.Contains(lowered, "salary") || strings.Contains(lowered, "compensation") || strings.Contains(lowered, "pay"):
		return "We offer a competitive salary based on experience, plus stock options. Speaking of experience, how many years have you worked with Python?"
	case strings.Contains(lowered, "remote") || strings.Contains(lowered, "location") || strings.Contains(lowered, "office"):
		return "The role is hybrid from our Tel Aviv office, two days a week on site. Does that work for you? And have you worked with Django or Flask?"
	case strings.Contains(lowered, "stack") || strings.Contains(lowered, "technolog") || strings.Contains(lowered, "tools"):
		return "Our stack is Python with Django and FastAPI on AWS, backed by PostgreSQL and Docker. Which of those have you used in production?"
	case strings.Contains(lowered, "requirement") || strings.Contains(lowered, "experience"):
		return "We're looking for 3+ years of Python plus web framework and cloud experience. How does your background line up with that?"
	default:
		return "That's a great question. Let me get you the full details, but first, could you tell me about your experience with Python?"
	}
}
