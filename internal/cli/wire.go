package cli

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/psellars/fnolgate/internal/convstore"
	"github.com/psellars/fnolgate/internal/extract"
	"github.com/psellars/fnolgate/internal/guidewire"
	"github.com/psellars/fnolgate/internal/intake"
	"github.com/psellars/fnolgate/internal/llm"
	"github.com/psellars/fnolgate/internal/model"
)

// loadConfig merges defaults, the config file and FNOLGATE_* env vars.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}

	// API keys come from the conventional env vars when not configured.
	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}
	if cfg.LLM.Provider == "ollama" && cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = os.Getenv("OLLAMA_BASE_URL")
	}

	return cfg, nil
}

// buildService wires the decision engine from configuration.
func buildService(cfg *model.Config) (*intake.Service, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("configure provider: %w", err)
	}
	if provider == nil {
		return nil, fmt.Errorf("no generative-text provider configured")
	}

	extractor := extract.NewExtractor(provider, cfg.LLM.MaxRetries)

	synthesizer, err := extract.NewSynthesizer(provider, cfg.Intake.TemplatePath, cfg.LLM.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("load claim template: %w", err)
	}

	store := convstore.NewLayeredStore(
		cfg.Conversations.MemoryTTL,
		cfg.Conversations.Dir,
		cfg.Conversations.DiskTTL,
	)
	conversations := convstore.NewConversations(store, cfg.Conversations.DiskTTL)

	claims := guidewire.NewClaimClient(cfg.ClaimAPI)

	return intake.NewService(intake.Deps{
		Policies:      guidewire.NewPolicyClient(cfg.PolicyAPI),
		Claims:        claims,
		Submitter:     claims,
		Extractor:     extractor,
		Synthesizer:   synthesizer,
		Conversations: conversations,
	}, cfg.Intake), nil
}
