package model

import "time"

// Config holds the complete service configuration.
type Config struct {
	Server        ServerConfig       `yaml:"server" mapstructure:"server"`
	Log           LogConfig          `yaml:"log" mapstructure:"log"`
	LLM           LLMConfig          `yaml:"llm" mapstructure:"llm"`
	PolicyAPI     PolicyAPIConfig    `yaml:"policy_api" mapstructure:"policy_api"`
	ClaimAPI      ClaimAPIConfig     `yaml:"claim_api" mapstructure:"claim_api"`
	Intake        IntakeConfig       `yaml:"intake" mapstructure:"intake"`
	Conversations ConversationConfig `yaml:"conversations" mapstructure:"conversations"`
}

// ServerConfig configures the HTTP intake server.
type ServerConfig struct {
	Port            int           `yaml:"port" mapstructure:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json, text
}

// LLMConfig configures the generative-text provider used for extraction,
// intent classification and claim synthesis.
type LLMConfig struct {
	Provider    string  `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama
	Model       string  `yaml:"model" mapstructure:"model"`
	APIKey      string  `yaml:"api_key" mapstructure:"api_key"`
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	Timeout     int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	MaxRetries  int     `yaml:"max_retries" mapstructure:"max_retries"`
	Temperature float32 `yaml:"temperature" mapstructure:"temperature"`
}

// PolicyAPIConfig configures the policy-management REST endpoint.
type PolicyAPIConfig struct {
	BaseURL           string        `yaml:"base_url" mapstructure:"base_url"`
	Username          string        `yaml:"username" mapstructure:"username"`
	Password          string        `yaml:"password" mapstructure:"password"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// ClaimAPIConfig configures the claim-management REST endpoint.
type ClaimAPIConfig struct {
	BaseURL           string        `yaml:"base_url" mapstructure:"base_url"`
	Username          string        `yaml:"username" mapstructure:"username"`
	Password          string        `yaml:"password" mapstructure:"password"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// IntakeConfig tunes the decision engine.
type IntakeConfig struct {
	ToleranceHours float64 `yaml:"tolerance_hours" mapstructure:"tolerance_hours"`
	SubmitAttempts int     `yaml:"submit_attempts" mapstructure:"submit_attempts"`
	TemplatePath   string  `yaml:"template_path" mapstructure:"template_path"`
}

// ConversationConfig configures the follow-up conversation store.
type ConversationConfig struct {
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     60 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		LLM: LLMConfig{
			Provider:   "openai",
			Timeout:    30,
			MaxTokens:  2000,
			MaxRetries: 3,
		},
		PolicyAPI: PolicyAPIConfig{
			Timeout:           10 * time.Second,
			RequestsPerSecond: 5,
		},
		ClaimAPI: ClaimAPIConfig{
			Timeout:           10 * time.Second,
			RequestsPerSecond: 5,
		},
		Intake: IntakeConfig{
			ToleranceHours: 24,
			SubmitAttempts: 3,
			TemplatePath:   "claim_template.json",
		},
		Conversations: ConversationConfig{
			Dir:       ".fnolgate/conversations",
			MemoryTTL: 1 * time.Hour,
			DiskTTL:   30 * 24 * time.Hour,
		},
	}
}
