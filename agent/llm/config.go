package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/Orlavan/TechFlow-AI-Recruiter/agent/contract"
	openrouterx "github.com/Orlavan/TechFlow-AI-Recruiter/pkg/openrouter"
)

// Config holds the shared OpenRouter settings plus optional per-advisor
// model and temperature overrides. An override temperature below zero means
// "use the shared default".
type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.5"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`

	MainModel     string `envconfig:"MAIN_MODEL" split_words:"true"`
	ExitModel     string `envconfig:"EXIT_MODEL" split_words:"true"`
	InfoModel     string `envconfig:"INFO_MODEL" split_words:"true"`
	ScreenerModel string `envconfig:"SCREENER_MODEL" split_words:"true"`
	IntentModel   string `envconfig:"INTENT_MODEL" split_words:"true"`

	MainTemperature     float32 `envconfig:"MAIN_TEMPERATURE" split_words:"true" default:"-1"`
	ExitTemperature     float32 `envconfig:"EXIT_TEMPERATURE" split_words:"true" default:"-1"`
	InfoTemperature     float32 `envconfig:"INFO_TEMPERATURE" split_words:"true" default:"-1"`
	ScreenerTemperature float32 `envconfig:"SCREENER_TEMPERATURE" split_words:"true" default:"-1"`
	IntentTemperature   float32 `envconfig:"INTENT_TEMPERATURE" split_words:"true" default:"-1"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: openrouter api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	return nil
}

// OpenRouterFor resolves the effective model settings for one advisor.
func (c Config) OpenRouterFor(agentType contractx.AgentType) openrouterx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	override := func(model string, temperature float32) {
		if v := strings.TrimSpace(model); v != "" {
			modelName = v
		}
		if temperature >= 0 {
			temp = temperature
		}
	}

	switch agentType {
	case contractx.AgentTypeMain:
		override(c.MainModel, c.MainTemperature)
	case contractx.AgentTypeExit:
		override(c.ExitModel, c.ExitTemperature)
	case contractx.AgentTypeInfo:
		override(c.InfoModel, c.InfoTemperature)
	case contractx.AgentTypeScreener:
		override(c.ScreenerModel, c.ScreenerTemperature)
	case contractx.AgentTypeIntent:
		override(c.IntentModel, c.IntentTemperature)
	}

	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}
