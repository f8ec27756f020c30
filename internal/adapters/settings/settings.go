// Package settings assembles the tool options from defaults, STRATA_ environment variables and flags.
package settings

import (
	"errors"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/zerr"
)

// EnvPrefix is the prefix of environment variables read as settings.
const EnvPrefix = "STRATA_"

// Load merges defaults, environment and the flags that were set, in increasing precedence.
func Load(flags *pflag.FlagSet) (domain.Settings, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"format":      string(domain.ReportText),
		"cache_dir":   domain.DefaultCachePath(),
		"no_cache":    false,
		"parallelism": 0,
		"log_json":    false,
		"watch":       false,
	}, "."), nil); err != nil {
		return domain.Settings{}, loadFailed(err, "failed to load defaults")
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return domain.Settings{}, loadFailed(err, "failed to load environment")
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return domain.Settings{}, loadFailed(err, "failed to load flags")
		}
	}

	var s domain.Settings
	if err := k.Unmarshal("", &s); err != nil {
		return domain.Settings{}, loadFailed(err, "failed to decode settings")
	}

	if s.Parallelism < 0 {
		return domain.Settings{}, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "parallelism must not be negative"),
			"parallelism", s.Parallelism)
	}
	return s, nil
}

func loadFailed(err error, msg string) error {
	return errors.Join(domain.ErrSettingsLoadFailed, zerr.Wrap(err, msg))
}
