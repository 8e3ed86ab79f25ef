package main

import (
	"bufio"
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	advisorsx "github.com/Orlavan/TechFlow-AI-Recruiter/agent/agents/advisors"
	orchestratorx "github.com/Orlavan/TechFlow-AI-Recruiter/agent/agents/orchestrator"
	schedulingx "github.com/Orlavan/TechFlow-AI-Recruiter/agent/agents/scheduling"
	contractx "github.com/Orlavan/TechFlow-AI-Recruiter/agent/contract"
	llmx "github.com/Orlavan/TechFlow-AI-Recruiter/agent/llm"
	schedulex "github.com/Orlavan/TechFlow-AI-Recruiter/agent/schedule"
	statex "github.com/Orlavan/TechFlow-AI-Recruiter/agent/state"
	configx "github.com/Orlavan/TechFlow-AI-Recruiter/pkg/config"
	_ "github.com/Orlavan/TechFlow-AI-Recruiter/pkg/logger/autoload"
	notifyx "github.com/Orlavan/TechFlow-AI-Recruiter/pkg/notify"
	openrouterx "github.com/Orlavan/TechFlow-AI-Recruiter/pkg/openrouter"
)

const greeting = "Hi! I'm Alex from TechFlow Solutions. Thanks for your interest in our Python Developer position. Can you tell me about your experience with Python?"

type AppConfig struct {
	SessionID   string `envconfig:"SESSION_ID" default:"console-session"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	SeedDays    int    `envconfig:"SEED_DAYS" default:"14"`
}

func main() {
	ctx := context.Background()

	appCfg := configx.MustNew[AppConfig]("")
	llmCfg := configx.MustNew[llmx.Config]("OPENROUTER")

	registry, err := advisorsx.NewRegistry(ctx, *llmCfg)
	if err != nil {
		panic(err)
	}

	slotStore, err := newSlotStore(ctx, appCfg.DatabaseURL, appCfg.SeedDays)
	if err != nil {
		panic(err)
	}

	schedulerOpts := []schedulingx.Option{}
	if notifyCfg, err := configx.New[notifyx.Config]("NOTIFY"); err == nil {
		if client, err := notifyx.NewClient(*notifyCfg); err == nil {
			schedulerOpts = append(schedulerOpts, schedulingx.WithNotifier(client))
		}
	}
	toolModelCfg := llmCfg.OpenRouterFor(contractx.AgentTypeIntent)
	if toolModel, err := toolModelCfg.New(ctx); err == nil {
		schedulerOpts = append(schedulerOpts, schedulingx.WithToolModel(toolModel))
	} else {
		log.Warn().Err(err).Msg("tool model unavailable, scheduling falls back to the raw sdk client")
	}
	if sdkClient := openrouterx.NewClient(toolModelCfg); sdkClient != nil {
		schedulerOpts = append(schedulerOpts, schedulingx.WithSDKClient(sdkClient, toolModelCfg.Model))
	}

	scheduler, err := schedulingx.NewAdvisor(ctx, registry.Intent(), slotStore, schedulerOpts...)
	if err != nil {
		panic(err)
	}

	orch, err := orchestratorx.New(newStateStore(), registry, scheduler)
	if err != nil {
		panic(err)
	}

	runConsole(ctx, orch, appCfg.SessionID)
}

func newStateStore() statex.Store {
	cfg, err := configx.New[statex.UpstashRedisConfig]("UPSTASH_REDIS")
	if err != nil {
		log.Info().Msg("using in-memory conversation store")
		return statex.NewMemoryStore()
	}

	store, err := statex.NewUpstashRedisStore(*cfg)
	if err != nil {
		log.Warn().Err(err).Msg("upstash store unavailable, using in-memory conversation store")
		return statex.NewMemoryStore()
	}
	return store
}

func newSlotStore(ctx context.Context, databaseURL string, seedDays int) (schedulex.SlotStore, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if strings.TrimSpace(databaseURL) == "" {
		log.Info().Msg("using in-memory slot store")
		mem := schedulex.NewMemorySlotStore()
		if err := schedulex.Seed(ctx, mem, time.Now(), seedDays, rng); err != nil {
			return nil, err
		}
		return mem, nil
	}

	db := schedulex.OpenDB(databaseURL)
	store, err := schedulex.NewBunStore(db)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, err
	}

	count, err := store.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		if err := schedulex.Seed(ctx, store, time.Now(), seedDays, rng); err != nil {
			return nil, err
		}
		log.Info().Int("days", seedDays).Msg("seeded slot table")
	}

	return store, nil
}

func runConsole(ctx context.Context, orch *orchestratorx.Orchestrator, sessionID string) {
	fmt.Println("Recruiter:", greeting)
	history := "Recruiter: " + greeting

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		switch strings.ToLower(text) {
		case "quit", "exit":
			fmt.Println("Recruiter: Thanks for stopping by. Goodbye!")
			return
		case "reset":
			if err := orch.Reset(ctx, sessionID); err != nil {
				log.Warn().Err(err).Msg("reset failed")
			}
			fmt.Println("--- conversation reset ---")
			fmt.Println("Recruiter:", greeting)
			history = "Recruiter: " + greeting
			continue
		}

		reply, action, err := orch.ProcessTurn(ctx, sessionID, text, history)
		if err != nil {
			log.Error().Err(err).Msg("turn failed")
			fmt.Println("Recruiter: I'm sorry, I encountered an error. Please try again.")
			continue
		}

		fmt.Println("Recruiter:", reply)
		history = history + "\nCandidate: " + text + "\nRecruiter: " + reply

		if action == contractx.ActionEnd {
			return
		}
	}
}
