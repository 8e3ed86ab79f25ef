package scheduling

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

const slotLookupPrompt = `You are a scheduling assistant for recruiter interviews.
Pick exactly one slot lookup tool and call it.
Use get_slots_near_date when the candidate names a day ("Friday", "tomorrow"), otherwise get_available_slots.
Do not answer in prose.`

func compileSlotLookupGraph(
	ctx context.Context,
	toolModel einomodel.BaseChatModel,
) (compose.Runnable[map[string]any, *schema.Message], error) {
	template := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(slotLookupPrompt),
		schema.UserMessage("{input}"),
	)

	graph := compose.NewGraph[map[string]any, *schema.Message]()
	if err := graph.AddChatTemplateNode("prompt", template); err != nil {
		return nil, fmt.Errorf("add slot lookup prompt node: %w", err)
	}
	if err := graph.AddChatModelNode("model", toolModel); err != nil {
		return nil, fmt.Errorf("add slot lookup model node: %w", err)
	}
	if err := graph.AddEdge(compose.START, "prompt"); err != nil {
		return nil, fmt.Errorf("add slot lookup edge start->prompt: %w", err)
	}
	if err := graph.AddEdge("prompt", "model"); err != nil {
		return nil, fmt.Errorf("add slot lookup edge prompt->model: %w", err)
	}
	if err := graph.AddEdge("model", compose.END); err != nil {
		return nil, fmt.Errorf("add slot lookup edge model->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("scheduling.slot_lookup_graph"))
	if err != nil {
		return nil, fmt.Errorf("compile slot lookup graph: %w", err)
	}
	return runner, nil
}
