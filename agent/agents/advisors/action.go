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

// mainAdvisor decides CONTINUE, SCHEDULE, or END from the full conversation.
type mainAdvisor struct {
	runner compose.Runnable[map[string]any, *schema.Message]
}

var _ contractx.ActionClassifier = (*mainAdvisor)(nil)

func newMainAdvisor(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
) (*mainAdvisor, error) {
	runner, err := compileChatGraph(ctx, chatModel, systemPrompt, "advisor.main_graph",
		schema.UserMessage("Conversation:\nRecruiter: Can you tell me about your Python experience?\nCandidate: I have 5 years with Django and Flask.\n\nAction:"),
		schema.AssistantMessage("CONTINUE", nil),
		schema.UserMessage("Conversation:\nRecruiter: Would you like to set up an interview?\nCandidate: No thanks, I already accepted another offer.\n\nAction:"),
		schema.AssistantMessage("END", nil),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: compile main advisor graph: %v", contractx.ErrModelInvoke, err)
	}
	return &mainAdvisor{runner: runner}, nil
}

func (a *mainAdvisor) DecideAction(ctx context.Context, history string) (contractx.Action, error) {
	input := "Conversation:\n" + history + "\n\nAction:"

	msg, err := a.runner.Invoke(ctx, map[string]any{"input": input})
	if err != nil {
		return contractx.ActionContinue, fmt.Errorf("%w: main advisor invoke: %v", contractx.ErrModelInvoke, err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return contractx.ActionContinue, fmt.Errorf("%w: main advisor returned empty content", contractx.ErrSchemaViolation)
	}

	return contractx.ParseAction(msg.Content, contractx.ActionContinue), nil
}
