package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// envPrefix namespaces environment overrides: FAIRALLOC_ALGORITHM,
// FAIRALLOC_NO_MAX_CARDINALITY and so on.
const envPrefix = "FAIRALLOC"

// allocateConfig is the resolved allocate configuration. Precedence, highest
// first: explicit flag, FAIRALLOC_* environment, config file, flag default.
type allocateConfig struct {
	Algorithm        string
	Order            []string
	Items            []string
	Agents           []string
	Trace            string
	NoMaxCardinality bool
}

// loadConfig layers the config file and environment under cmd's flags.
// Without --config, a fairalloc.yaml in the working directory is used when
// present.
func loadConfig(cmd *cobra.Command) (*allocateConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName("fairalloc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	return &allocateConfig{
		Algorithm:        v.GetString("algorithm"),
		Order:            labels(v.GetStringSlice("order")),
		Items:            labels(v.GetStringSlice("items")),
		Agents:           labels(v.GetStringSlice("agents")),
		Trace:            v.GetString("trace"),
		NoMaxCardinality: v.GetBool("no-max-cardinality"),
	}, nil
}

// labels splits comma-joined entries, as they arrive from the environment,
// and drops empty ones.
func labels(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, l := range strings.Split(r, ",") {
			if l = strings.TrimSpace(l); l != "" {
				out = append(out, l)
			}
		}
	}

	return out
}
