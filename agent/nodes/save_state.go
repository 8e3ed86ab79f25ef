package turnnode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/Orlavan/TechFlow-AI-Recruiter/agent/contract"
	statex "github.com/Orlavan/TechFlow-AI-Recruiter/agent/state"
)

// SaveState persists the turn's state changes. A save failure is logged but
// does not fail the turn; the reply has already been produced and losing one
// state write is recoverable on the next turn.
func SaveState(ctx context.Context, in *GraphState, store statex.Store) (*GraphState, error) {
	if in == nil || in.State == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	in.State.Touch(in.Now)
	if err := in.State.Validate(); err != nil {
		return nil, fmt.Errorf("state validation failed: %w", err)
	}
	if err := store.Save(ctx, in.State); err != nil {
		log.Warn().Err(err).Str("session_id", in.SessionID).Msg("state save failed")
	}

	return in, nil
}
