package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/Orlavan/TechFlow-AI-Recruiter/agent/contract"
	nodex "github.com/Orlavan/TechFlow-AI-Recruiter/agent/nodes"
	statex "github.com/Orlavan/TechFlow-AI-Recruiter/agent/state"
)

var (
	ErrInvalidMessage = nodex.ErrInvalidMessage
	ErrInvalidSession = nodex.ErrInvalidSession
)

// Orchestrator drives one conversation turn through the decision pipeline:
// screening bookkeeping, action classification, override rules, and advisor
// dispatch.
type Orchestrator struct {
	store     statex.Store
	models    contractx.Registry
	scheduler contractx.Scheduler

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	now func() time.Time
}

func New(
	store statex.Store,
	models contractx.Registry,
	scheduler contractx.Scheduler,
) (*Orchestrator, error) {
	if store == nil {
		return nil, errors.New("state store is required")
	}
	if models == nil {
		return nil, errors.New("advisor registry is required")
	}
	if scheduler == nil {
		return nil, errors.New("scheduler is required")
	}

	o := &Orchestrator{
		store:     store,
		models:    models,
		scheduler: scheduler,
		now:       time.Now,
	}

	graphRunner, err := o.compileTurnGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// ProcessTurn runs one candidate message through the pipeline and returns the
// recruiter's reply together with the action the turn resolved to.
func (o *Orchestrator) ProcessTurn(ctx context.Context, sessionID string, text string, history string) (string, contractx.Action, error) {
	out, err := o.graphRunner.Invoke(ctx, nodex.GraphInput{
		SessionID: sessionID,
		Text:      text,
		History:   history,
	})
	if err != nil {
		return "", "", err
	}
	return out.Reply, out.Action, nil
}

// Reset clears the conversation's screening and booking progress and re-anchors
// relative date resolution at the current time.
func (o *Orchestrator) Reset(ctx context.Context, sessionID string) error {
	st, err := o.store.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, statex.ErrStateNotFound) {
			return nil
		}
		return err
	}

	st.Reset(o.now())
	return o.store.Save(ctx, st)
}
