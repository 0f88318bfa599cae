package config

import (
	"fmt"
	"time"

	"github.com/Veraticus/what-have-i-done/internal/common"
	"github.com/Veraticus/what-have-i-done/internal/model"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyLedgerFolder   = "ledger.folder"
	KeyRecoverCorrupt = "ledger.recover_corrupt"
	KeyPollInterval   = "tracking.poll_interval"
	KeyManualStep     = "tracking.manual_step"
	KeyIdleProcesses  = "tracking.idle_processes"
	KeyThreshold      = "summary.threshold"
	KeyProcesses      = "processes"
	KeyLogLevel       = "logging.level"
	KeyLogFormat      = "logging.format"
	KeyLogFile        = "logging.file"
)

// Settings is the immutable configuration read once at startup.
type Settings struct {
	Rules          model.RuleSet
	LedgerFolder   string
	LogLevel       string
	LogFormat      string
	LogFile        string
	IdleProcesses  []string
	PollInterval   time.Duration
	ManualStep     time.Duration
	Threshold      float64
	RecoverCorrupt bool
}

// rawRule mirrors a processes.<name> block. Pointers distinguish unset keys from
// explicit false or empty values.
type rawRule struct {
	DoSeparations        *bool    `mapstructure:"do_separations"`
	Separator            *string  `mapstructure:"separator"`
	EntriesByWindowTitle *bool    `mapstructure:"entries_by_window_title"`
	KeepParts            []int    `mapstructure:"keep_parts"`
	RemoveParts          []int    `mapstructure:"remove_parts"`
	TrimCharacters       []string `mapstructure:"trim_characters"`
	GroupBySeparators    []string `mapstructure:"group_by_separators"`
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLedgerFolder, "logs")
	v.SetDefault(KeyRecoverCorrupt, false)
	v.SetDefault(KeyPollInterval, "1.1s")
	v.SetDefault(KeyManualStep, "15m")
	v.SetDefault(KeyIdleProcesses, []string{})
	v.SetDefault(KeyThreshold, 1.0)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyLogFile, "")
}

// Load reads and validates the settings held by v.
func Load(v *viper.Viper) (*Settings, error) {
	SetDefaults(v)

	s := &Settings{
		LedgerFolder:   ExpandPath(v.GetString(KeyLedgerFolder)),
		RecoverCorrupt: v.GetBool(KeyRecoverCorrupt),
		PollInterval:   v.GetDuration(KeyPollInterval),
		ManualStep:     v.GetDuration(KeyManualStep),
		IdleProcesses:  v.GetStringSlice(KeyIdleProcesses),
		Threshold:      v.GetFloat64(KeyThreshold),
		LogLevel:       v.GetString(KeyLogLevel),
		LogFormat:      v.GetString(KeyLogFormat),
		LogFile:        ExpandPath(v.GetString(KeyLogFile)),
	}

	rules, err := loadRules(v)
	if err != nil {
		return nil, err
	}
	s.Rules = rules

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func loadRules(v *viper.Viper) (model.RuleSet, error) {
	raw := map[string]rawRule{}
	if err := v.UnmarshalKey(KeyProcesses, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrInvalidConfig, KeyProcesses, err)
	}

	rules := make(model.RuleSet, len(raw))
	for name, r := range raw {
		rule := model.DefaultProcessRule()
		if r.DoSeparations != nil {
			rule.DoSeparations = *r.DoSeparations
		}
		if r.Separator != nil {
			rule.Separator = *r.Separator
		}
		if r.EntriesByWindowTitle != nil {
			rule.EntriesByWindowTitle = *r.EntriesByWindowTitle
		}
		rule.KeepParts = r.KeepParts
		rule.RemoveParts = r.RemoveParts
		rule.TrimCharacters = r.TrimCharacters
		rule.GroupBySeparators = r.GroupBySeparators
		rules[name] = rule
	}

	return rules, nil
}

// Validate checks value ranges.
func (s *Settings) Validate() error {
	if s.LedgerFolder == "" {
		return fmt.Errorf("%w: %s must not be empty", common.ErrInvalidConfig, KeyLedgerFolder)
	}
	if s.PollInterval <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %v", common.ErrInvalidConfig, KeyPollInterval, s.PollInterval)
	}
	if s.ManualStep <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %v", common.ErrInvalidConfig, KeyManualStep, s.ManualStep)
	}
	if s.Threshold < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %v", common.ErrInvalidConfig, KeyThreshold, s.Threshold)
	}

	for name, rule := range s.Rules {
		for _, idx := range append(append([]int(nil), rule.KeepParts...), rule.RemoveParts...) {
			if idx < 0 {
				return fmt.Errorf("%w: processes.%s: negative part index %d", common.ErrInvalidConfig, name, idx)
			}
		}
	}

	return nil
}
