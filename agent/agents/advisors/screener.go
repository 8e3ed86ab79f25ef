package advisors

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/Orlavan/TechFlow-AI-Recruiter/agent/contract"
)

// screenerAdvisor keeps the qualification conversation moving, always ending
// on a screening question.
type screenerAdvisor struct {
	runner compose.Runnable[map[string]any, *schema.Message]
}

var _ contractx.Responder = (*screenerAdvisor)(nil)

func newScreenerAdvisor(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
) (*screenerAdvisor, error) {
	runner, err := compileChatGraph(ctx, chatModel, systemPrompt, "advisor.screener_graph")
	if err != nil {
		return nil, fmt.Errorf("%w: compile screener graph: %v", contractx.ErrModelInvoke, err)
	}
	return &screenerAdvisor{runner: runner}, nil
}

func (a *screenerAdvisor) Respond(ctx context.Context, message string, history string) (string, error) {
	input := "Conversation:\n" + history + "\nCandidate: " + message + "\n\nAlex:"

	msg, err := a.runner.Invoke(ctx, map[string]any{"input": input})
	if err != nil {
		return "", fmt.Errorf("%w: screener invoke: %v", contractx.ErrModelInvoke, err)
	}

	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return "", fmt.Errorf("%w: screener returned empty content", contractx.ErrSchemaViolation)
	}
	return strings.TrimSpace(msg.Content), nil
}
