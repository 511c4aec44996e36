package sablebot

import (
	"fmt"
	"os"

	"github.com/disgoorg/snowflake/v2"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// LoadConfig reads the TOML config. A .env file, when present, supplies the
// token via DISCORD_TOKEN so the config file can stay secret-free.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Bot.Token == "" {
		cfg.Bot.Token = os.Getenv("DISCORD_TOKEN")
	}
	if cfg.Game.ProfilesPath == "" {
		cfg.Game.ProfilesPath = "joueurs.json"
	}
	if cfg.Game.TicketsPath == "" {
		cfg.Game.TicketsPath = "tickets.json"
	}
	return &cfg, nil
}

type Config struct {
	Bot  BotConfig  `toml:"bot"`
	Game GameConfig `toml:"game"`
}

type BotConfig struct {
	DevGuilds []snowflake.ID `toml:"dev_guilds"`
	Token     string         `toml:"token"`
}

type GameConfig struct {
	// FondateurID gates the season reset and setup commands.
	FondateurID       snowflake.ID `toml:"fondateur_id"`
	TicketsCategoryID snowflake.ID `toml:"tickets_category_id"`
	LogChannelID      snowflake.ID `toml:"log_channel_id"`

	ProfilesPath string `toml:"profiles_path"`
	TicketsPath  string `toml:"tickets_path"`
}
