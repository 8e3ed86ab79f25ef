package turnnode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/Orlavan/TechFlow-AI-Recruiter/agent/contract"
)

// DecideAction asks the main classifier for the tentative turn action. A
// classifier failure degrades to CONTINUE so the conversation never dies on
// a model error.
func DecideAction(ctx context.Context, in *GraphState, classifier contractx.ActionClassifier) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	action, err := classifier.DecideAction(ctx, in.History)
	if err != nil {
		log.Warn().Err(err).Str("session_id", in.SessionID).Msg("action classification failed, defaulting to CONTINUE")
		action = contractx.ActionContinue
	}

	in.Tentative = action
	return in, nil
}
