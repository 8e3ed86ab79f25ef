package advisors

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

// compileChatGraph builds the shared prompt -> model pipeline every advisor
// runs on. Extra messages slot between the system prompt and the user turn,
// which is how few-shot examples are wired in.
func compileChatGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
	graphName string,
	examples ...schema.MessagesTemplate,
) (compose.Runnable[map[string]any, *schema.Message], error) {
	messages := make([]schema.MessagesTemplate, 0, len(examples)+2)
	messages = append(messages, schema.SystemMessage(systemPrompt))
	messages = append(messages, examples...)
	messages = append(messages, schema.UserMessage("{input}"))

	template := einoprompt.FromMessages(schema.FString, messages...)

	graph := compose.NewGraph[map[string]any, *schema.Message]()
	if err := graph.AddChatTemplateNode("prompt", template); err != nil {
		return nil, fmt.Errorf("add advisor prompt node: %w", err)
	}
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add advisor model node: %w", err)
	}
	if err := graph.AddEdge(compose.START, "prompt"); err != nil {
		return nil, fmt.Errorf("add advisor edge start->prompt: %w", err)
	}
	if err := graph.AddEdge("prompt", "model"); err != nil {
		return nil, fmt.Errorf("add advisor edge prompt->model: %w", err)
	}
	if err := graph.AddEdge("model", compose.END); err != nil {
		return nil, fmt.Errorf("add advisor edge model->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName(graphName))
	if err != nil {
		return nil, fmt.Errorf("compile advisor graph %s: %w", graphName, err)
	}
	return runner, nil
}
