// Package config loads training configuration from defaults, an optional
// YAML file, and GOMOKUZERO_* environment overrides.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	// Board geometry.
	BoardWidth  int `mapstructure:"board_width"`
	BoardHeight int `mapstructure:"board_height"`
	NInRow      int `mapstructure:"n_in_row"`

	// Self-play.
	Temperature    float64 `mapstructure:"temp"`
	Playouts       int     `mapstructure:"n_playout"`
	CPuct          float64 `mapstructure:"c_puct"`
	PlayBatchSize  int     `mapstructure:"play_batch_size"`
	CollectWorkers int     `mapstructure:"collect_workers"`
	OpeningDir     string  `mapstructure:"opening_dir"`

	// Policy updates.
	LearnRate    float64 `mapstructure:"learn_rate"`
	LRMultiplier float64 `mapstructure:"lr_multiplier"`
	BufferSize   int     `mapstructure:"buffer_size"`
	BatchSize    int     `mapstructure:"batch_size"`
	Epochs       int     `mapstructure:"epochs"`
	KLTarget     float64 `mapstructure:"kl_targ"`

	// Scheduling.
	GameBatchNum int `mapstructure:"game_batch_num"`
	CheckFreq    int `mapstructure:"check_freq"`
	SaveFreq     int `mapstructure:"save_freq"`

	// Evaluation and baseline escalation.
	EvalGames          int     `mapstructure:"eval_games"`
	BaselinePlayouts   int     `mapstructure:"pure_mcts_playout_num"`
	BaselineCeiling    int     `mapstructure:"pure_mcts_playout_ceiling"`
	BaselineStep       int     `mapstructure:"pure_mcts_playout_step"`
	WinRatioToEscalate float64 `mapstructure:"win_ratio_to_escalate"`

	// Output.
	ModelDir   string `mapstructure:"model_dir"`
	MetricsDir string `mapstructure:"metrics_dir"`
}

// Load reads the configuration. path may be empty, in which case only a
// train.yaml in the working directory (if present) overrides the defaults.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("gomokuzero")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("train")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("board_width", 8)
	v.SetDefault("board_height", 8)
	v.SetDefault("n_in_row", 5)

	v.SetDefault("temp", 1.0)
	v.SetDefault("n_playout", 400)
	v.SetDefault("c_puct", 5.0)
	v.SetDefault("play_batch_size", 1)
	v.SetDefault("collect_workers", 1)
	v.SetDefault("opening_dir", "")

	v.SetDefault("learn_rate", 2e-3)
	v.SetDefault("lr_multiplier", 1.0)
	v.SetDefault("buffer_size", 10000)
	v.SetDefault("batch_size", 512)
	v.SetDefault("epochs", 5)
	v.SetDefault("kl_targ", 0.02)

	v.SetDefault("game_batch_num", 1500)
	v.SetDefault("check_freq", 100)
	v.SetDefault("save_freq", 50)

	v.SetDefault("eval_games", 10)
	v.SetDefault("pure_mcts_playout_num", 1000)
	v.SetDefault("pure_mcts_playout_ceiling", 8000)
	v.SetDefault("pure_mcts_playout_step", 1000)
	v.SetDefault("win_ratio_to_escalate", 0.98)

	v.SetDefault("model_dir", "logs")
	v.SetDefault("metrics_dir", "experiments")
}

func (c Config) validate() error {
	if c.BoardWidth < c.NInRow && c.BoardHeight < c.NInRow {
		return fmt.Errorf("board %dx%d cannot fit %d in a row", c.BoardWidth, c.BoardHeight, c.NInRow)
	}
	if c.BatchSize <= 0 || c.BufferSize < c.BatchSize {
		return fmt.Errorf("buffer size %d must be at least batch size %d", c.BufferSize, c.BatchSize)
	}
	if c.KLTarget <= 0 {
		return fmt.Errorf("kl_targ must be positive, got %g", c.KLTarget)
	}
	if c.BaselineStep <= 0 || c.BaselineCeiling < c.BaselinePlayouts {
		return fmt.Errorf("baseline escalation misconfigured: start %d, step %d, ceiling %d",
			c.BaselinePlayouts, c.BaselineStep, c.BaselineCeiling)
	}
	return nil
}
