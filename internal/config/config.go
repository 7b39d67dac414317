package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/smsledger/smsledger/internal/classify"
	"github.com/smsledger/smsledger/internal/importer"
)

// FileName is the config file init writes and classify looks for.
const FileName = "smsledger.yaml"

// EnvPrefix prefixes environment overrides, e.g. SMSLEDGER_RULES_MIN_AMOUNT.
const EnvPrefix = "SMSLEDGER"

// Config represents the top-level smsledger.yaml configuration.
type Config struct {
	Rules           RulesConfig `yaml:"rules" mapstructure:"rules"`
	Input           InputConfig `yaml:"input" mapstructure:"input"`
	TimestampPolicy string      `yaml:"timestamp_policy" mapstructure:"timestamp_policy"`
	CreditsOnly     bool        `yaml:"credits_only" mapstructure:"credits_only"`
	LegitimateOnly  bool        `yaml:"legitimate_only" mapstructure:"legitimate_only"`
}

// RulesConfig holds the keyword sets and bank registry.
type RulesConfig struct {
	DebitKeywords  []string `yaml:"debit_keywords" mapstructure:"debit_keywords"`
	CreditKeywords []string `yaml:"credit_keywords" mapstructure:"credit_keywords"`
	SpamKeywords   []string `yaml:"spam_keywords" mapstructure:"spam_keywords"`
	Banks          []string `yaml:"banks" mapstructure:"banks"`
	EntityVariant  string   `yaml:"entity_variant" mapstructure:"entity_variant"` // standard, transfer or extended
	MinAmount      string   `yaml:"min_amount" mapstructure:"min_amount"`
}

// InputConfig names the columns (or JSON keys) of the SMS export.
type InputConfig struct {
	TextColumn       string   `yaml:"text_column" mapstructure:"text_column"`
	SenderColumn     string   `yaml:"sender_column" mapstructure:"sender_column"`
	TimestampColumns []string `yaml:"timestamp_columns" mapstructure:"timestamp_columns"`
}

// Load reads configuration from path, falling back to Default for anything
// the file leaves out. Environment variables prefixed with SMSLEDGER_
// override both. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		v.SetConfigFile(path)
		if filepath.Ext(path) == "" {
			v.SetConfigType("yaml")
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("rules.debit_keywords", d.Rules.DebitKeywords)
	v.SetDefault("rules.credit_keywords", d.Rules.CreditKeywords)
	v.SetDefault("rules.spam_keywords", d.Rules.SpamKeywords)
	v.SetDefault("rules.banks", d.Rules.Banks)
	v.SetDefault("rules.entity_variant", d.Rules.EntityVariant)
	v.SetDefault("rules.min_amount", d.Rules.MinAmount)
	v.SetDefault("input.text_column", d.Input.TextColumn)
	v.SetDefault("input.sender_column", d.Input.SenderColumn)
	v.SetDefault("input.timestamp_columns", d.Input.TimestampColumns)
	v.SetDefault("timestamp_policy", d.TimestampPolicy)
	v.SetDefault("credits_only", d.CreditsOnly)
	v.SetDefault("legitimate_only", d.LegitimateOnly)
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config carrying the built-in rules.
func Default() *Config {
	rules := classify.DefaultRules()
	cols := importer.DefaultColumns()
	return &Config{
		Rules: RulesConfig{
			DebitKeywords:  rules.DebitKeywords,
			CreditKeywords: rules.CreditKeywords,
			SpamKeywords:   rules.SpamKeywords,
			Banks:          rules.Banks,
			EntityVariant:  string(rules.Variant),
			MinAmount:      rules.MinAmount.String(),
		},
		Input: InputConfig{
			TextColumn:       cols.Text,
			SenderColumn:     cols.Sender,
			TimestampColumns: cols.Timestamp,
		},
		TimestampPolicy: string(classify.PolicyFail),
	}
}

// ClassifyRules converts the rules section into classify.Rules.
func (c *Config) ClassifyRules() (classify.Rules, error) {
	minAmount := decimal.NewFromInt(1)
	if s := strings.TrimSpace(c.Rules.MinAmount); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return classify.Rules{}, fmt.Errorf("parsing min_amount %q: %w", s, err)
		}
		minAmount = d
	}
	return classify.Rules{
		DebitKeywords:  c.Rules.DebitKeywords,
		CreditKeywords: c.Rules.CreditKeywords,
		SpamKeywords:   c.Rules.SpamKeywords,
		Banks:          c.Rules.Banks,
		Variant:        classify.EntityVariant(strings.ToLower(strings.TrimSpace(c.Rules.EntityVariant))),
		MinAmount:      minAmount,
	}, nil
}

// Columns converts the input section into importer.Columns.
func (c *Config) Columns() importer.Columns {
	cols := importer.DefaultColumns()
	if c.Input.TextColumn != "" {
		cols.Text = c.Input.TextColumn
	}
	if c.Input.SenderColumn != "" {
		cols.Sender = c.Input.SenderColumn
	}
	if len(c.Input.TimestampColumns) > 0 {
		cols.Timestamp = c.Input.TimestampColumns
	}
	return cols
}

// Policy validates the timestamp_policy setting.
func (c *Config) Policy() (classify.TimestampPolicy, error) {
	return classify.ParseTimestampPolicy(c.TimestampPolicy)
}
