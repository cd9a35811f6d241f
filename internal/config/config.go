package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Game   GameConfig   `mapstructure:"game"`
}

type ServerConfig struct {
	Address            string        `mapstructure:"address"`
	MetricsAddress     string        `mapstructure:"metrics_address"`
	RateLimitPerSecond int           `mapstructure:"rate_limit_per_second"`
	IdleRoomTimeout    time.Duration `mapstructure:"idle_room_timeout"`
}

// GameConfig holds every tunable of the board game itself. Rooms get a copy
// at creation so a reload never changes a game mid-flight.
type GameConfig struct {
	MinPlayersToStart     int           `mapstructure:"min_players_to_start"`
	MaxPlayersPerRoom     int           `mapstructure:"max_players_per_room"`
	StartingCoins         int           `mapstructure:"starting_coins"`
	StartingGems          int           `mapstructure:"starting_gems"`
	StartingEnergy        int           `mapstructure:"starting_energy"`
	MaxEnergy             int           `mapstructure:"max_energy"`
	EnergyCostPerRoll     int           `mapstructure:"energy_cost_per_roll"`
	EnergyRegenInterval   time.Duration `mapstructure:"energy_regen_interval"`
	MoveAnimationDuration time.Duration `mapstructure:"move_animation_duration"`
	MinigameTimeLimit     time.Duration `mapstructure:"minigame_time_limit"`
	BlueSpaceReward       int           `mapstructure:"blue_space_reward"`
	RedSpacePenalty       int           `mapstructure:"red_space_penalty"`
	StarSpaceReward       int           `mapstructure:"star_space_reward"`
	MinigameWinReward     int           `mapstructure:"minigame_win_reward"`
	ChatMaxLength         int           `mapstructure:"chat_max_length"`
}

func setDefaults() {
	viper.SetDefault("server.address", ":3001")
	viper.SetDefault("server.metrics_address", ":9091")
	viper.SetDefault("server.rate_limit_per_second", 10)
	viper.SetDefault("server.idle_room_timeout", 30*time.Minute)

	viper.SetDefault("game.min_players_to_start", 2)
	viper.SetDefault("game.max_players_per_room", 8)
	viper.SetDefault("game.starting_coins", 10)
	viper.SetDefault("game.starting_gems", 0)
	viper.SetDefault("game.starting_energy", 5)
	viper.SetDefault("game.max_energy", 5)
	viper.SetDefault("game.energy_cost_per_roll", 1)
	// Demo pacing. The production value is 20m.
	viper.SetDefault("game.energy_regen_interval", 20*time.Second)
	viper.SetDefault("game.move_animation_duration", 300*time.Millisecond)
	viper.SetDefault("game.minigame_time_limit", 30*time.Second)
	viper.SetDefault("game.blue_space_reward", 3)
	viper.SetDefault("game.red_space_penalty", 3)
	viper.SetDefault("game.star_space_reward", 20)
	viper.SetDefault("game.minigame_win_reward", 10)
	viper.SetDefault("game.chat_max_length", 200)
}

// LoadConfig reads config.yaml from path. A missing file is fine: every key
// has a default, and environment variables still override.
func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	setDefaults()
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// Default returns the configuration with no file or environment applied.
func Default() *Config {
	setDefaults()
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic("config defaults failed to unmarshal: " + err.Error())
	}
	return &config
}
