package advisors

import (
	"context"
	"fmt"

	contractx "github.com/Orlavan/TechFlow-AI-Recruiter/agent/contract"
	llmx "github.com/Orlavan/TechFlow-AI-Recruiter/agent/llm"
	promptx "github.com/Orlavan/TechFlow-AI-Recruiter/agent/prompt"
)

type registryImpl struct {
	main     contractx.ActionClassifier
	exit     contractx.ExitAdvisor
	intent   contractx.IntentClassifier
	screener contractx.Responder
	info     contractx.InfoAdvisor
}

func (r *registryImpl) Main() contractx.ActionClassifier {
	return r.main
}

func (r *registryImpl) Exit() contractx.ExitAdvisor {
	return r.exit
}

func (r *registryImpl) Intent() contractx.IntentClassifier {
	return r.intent
}

func (r *registryImpl) Screener() contractx.Responder {
	return r.screener
}

func (r *registryImpl) Info() contractx.InfoAdvisor {
	return r.info
}

// NewRegistry builds every advisor, each on its own model configuration.
func NewRegistry(ctx context.Context, cfg llmx.Config) (contractx.Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	prompts := promptx.LoadPromptSet()

	mainModelCfg := cfg.OpenRouterFor(contractx.AgentTypeMain)
	mainModel, err := mainModelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create main model: %v", contractx.ErrModelInvoke, err)
	}
	exitModelCfg := cfg.OpenRouterFor(contractx.AgentTypeExit)
	exitModel, err := exitModelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create exit model: %v", contractx.ErrModelInvoke, err)
	}
	intentModelCfg := cfg.OpenRouterFor(contractx.AgentTypeIntent)
	intentModel, err := intentModelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create intent model: %v", contractx.ErrModelInvoke, err)
	}
	screenerModelCfg := cfg.OpenRouterFor(contractx.AgentTypeScreener)
	screenerModel, err := screenerModelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create screener model: %v", contractx.ErrModelInvoke, err)
	}
	infoModelCfg := cfg.OpenRouterFor(contractx.AgentTypeInfo)
	infoModel, err := infoModelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create info model: %v", contractx.ErrModelInvoke, err)
	}

	main, err := newMainAdvisor(ctx, mainModel, prompts.MainAgent)
	if err != nil {
		return nil, err
	}
	exit, err := newExitAdvisor(ctx, exitModel, prompts.ExitAdvisor, prompts.ExitMessage)
	if err != nil {
		return nil, err
	}
	intent, err := newIntentAdvisor(ctx, intentModel, prompts.SchedulingIntent)
	if err != nil {
		return nil, err
	}
	screener, err := newScreenerAdvisor(ctx, screenerModel, prompts.Screener)
	if err != nil {
		return nil, err
	}
	info, err := newInfoAdvisor(ctx, infoModel, prompts.InfoAdvisor, prompts.JobDescription)
	if err != nil {
		return nil, err
	}

	return &registryImpl{
		main:     main,
		exit:     exit,
		intent:   intent,
		screener: screener,
		info:     info,
	}, nil
}
