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

type intentAdvisor struct {
	runner compose.Runnable[map[string]any, *schema.Message]
}

var _ contractx.IntentClassifier = (*intentAdvisor)(nil)

func newIntentAdvisor(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
) (*intentAdvisor, error) {
	runner, err := compileChatGraph(ctx, chatModel, systemPrompt, "advisor.intent_graph",
		schema.UserMessage("Latest message: What times do you have open next week?\n\nCategory:"),
		schema.AssistantMessage("REQUEST_AVAILABILITY", nil),
		schema.UserMessage("Latest message: How about next Tuesday at 10am?\n\nCategory:"),
		schema.AssistantMessage("PROPOSE_TIME", nil),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: compile intent advisor graph: %v", contractx.ErrModelInvoke, err)
	}
	return &intentAdvisor{runner: runner}, nil
}

func (a *intentAdvisor) ClassifyIntent(ctx context.Context, message string, history string) (contractx.Intent, error) {
	input := "Latest message: " + message + "\n\nRecent conversation:\n" + history + "\n\nCategory:"

	msg, err := a.runner.Invoke(ctx, map[string]any{"input": input})
	if err != nil {
		return contractx.IntentOther, fmt.Errorf("%w: intent advisor invoke: %v", contractx.ErrModelInvoke, err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return contractx.IntentOther, fmt.Errorf("%w: intent advisor returned empty content", contractx.ErrSchemaViolation)
	}

	return contractx.ParseIntent(msg.Content), nil
}
