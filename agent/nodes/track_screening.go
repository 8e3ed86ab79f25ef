package turnnode

import (
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/Orlavan/TechFlow-AI-Recruiter/agent/contract"
)

func TrackScreening(in *GraphState) (*GraphState, error) {
	if in == nil || in.State == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	added := in.State.TrackScreening(in.Text)
	if added > 0 {
		log.Debug().
			Str("session_id", in.SessionID).
			Int("added", added).
			Int("signals", in.State.ScreeningSignals).
			Bool("complete", in.State.ScreeningComplete).
			Msg("screening signals updated")
	}

	return in, nil
}
