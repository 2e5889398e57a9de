package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"penguins/game"
	"penguins/meta"
)

var ErrHelp = pflag.ErrHelp

type Config struct {
	Mode        string  `mapstructure:"mode" yaml:"mode"`
	Listen      string  `mapstructure:"listen" yaml:"listen"`
	ServerURL   string  `mapstructure:"server-url" yaml:"server-url"`
	Team        string  `mapstructure:"team" yaml:"team"`
	Policy      string  `mapstructure:"policy" yaml:"policy"`
	Opponent    string  `mapstructure:"opponent" yaml:"opponent"`
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
	Seed        uint64  `mapstructure:"seed" yaml:"seed"`
	Stream      bool    `mapstructure:"stream" yaml:"stream"`
	MaxTurns    int     `mapstructure:"max-turns" yaml:"max-turns"`
	Games       int     `mapstructure:"games" yaml:"games"`
	Out         string  `mapstructure:"out" yaml:"out"`
	LogLevel    string  `mapstructure:"log-level" yaml:"log-level"`
	Pretty      bool    `mapstructure:"pretty" yaml:"pretty"`
	PrintConfig bool    `mapstructure:"print-config" yaml:"-"`
}

var (
	modes    = []string{"serve", "play", "selfplay"}
	policies = []string{"random", "greedy", "weighted"}
)

// Load reads flags from args, then PENGUINS_* environment variables, then the
// file named by --config. Flags win over the environment, which wins over the file.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("penguins", pflag.ContinueOnError)
	fs.String("config", "", "config file (yaml, toml or json)")
	fs.String("mode", "selfplay", "one of serve, play, selfplay")
	fs.String("listen", ":8080", "address the game server listens on")
	fs.String("server-url", "http://localhost:8080", "game server the player connects to")
	fs.String("team", "ONE", "team the player plays, or the starting team when serving (ONE or TWO)")
	fs.String("policy", "random", "move policy: random, greedy or weighted")
	fs.String("opponent", "greedy", "policy of team TWO in selfplay")
	fs.Float64("temperature", 1.0, "temperature of the weighted policy")
	fs.Uint64("seed", 0, "random seed, 0 picks one")
	fs.Bool("stream", true, "receive states over the websocket stream instead of polling")
	fs.Int("max-turns", meta.MAX_TURNS, "turn limit enforced by the game server")
	fs.Int("games", 10, "number of selfplay games")
	fs.String("out", "", "directory for selfplay csv records, empty to skip")
	fs.String("log-level", "info", "zerolog level")
	fs.Bool("pretty", false, "human readable console logs")
	fs.Bool("print-config", false, "print the resolved config and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	v.SetEnvPrefix("PENGUINS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	var errs []error
	if !lo.Contains(modes, c.Mode) {
		errs = append(errs, fmt.Errorf("mode %q must be one of %v", c.Mode, modes))
	}
	if _, err := game.ParseTeam(c.Team); err != nil {
		errs = append(errs, fmt.Errorf("team: %w", err))
	}
	for _, p := range []string{c.Policy, c.Opponent} {
		if !lo.Contains(policies, p) {
			errs = append(errs, fmt.Errorf("policy %q must be one of %v", p, policies))
		}
	}
	if c.Temperature <= 0 {
		errs = append(errs, fmt.Errorf("temperature must be positive, got %v", c.Temperature))
	}
	if c.MaxTurns <= 0 {
		errs = append(errs, fmt.Errorf("max-turns must be positive, got %d", c.MaxTurns))
	}
	if c.Games <= 0 {
		errs = append(errs, fmt.Errorf("games must be positive, got %d", c.Games))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log-level: %w", err))
	}
	return errors.Join(errs...)
}

func (c *Config) TeamEnum() game.TeamEnum {
	team, _ := game.ParseTeam(c.Team)
	return team
}

func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func (c *Config) Dump() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
