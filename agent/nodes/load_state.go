package turnnode

import (
	"context"
	"errors"
	"fmt"

	contractx "github.com/Orlavan/TechFlow-AI-Recruiter/agent/contract"
	statex "github.com/Orlavan/TechFlow-AI-Recruiter/agent/state"
)

func LoadState(ctx context.Context, in *GraphState, store statex.Store) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	st, err := store.Load(ctx, in.SessionID)
	if err != nil {
		if !errors.Is(err, statex.ErrStateNotFound) {
			return nil, err
		}
		st = statex.NewConversationState(in.SessionID, in.Now)
	}

	in.State = st
	return in, nil
}
