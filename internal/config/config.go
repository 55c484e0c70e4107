package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Addr       string `mapstructure:"addr"`
	OpsAddr    string `mapstructure:"ops_addr"`
	ServerName string `mapstructure:"server_name"`
	EventBuf   int    `mapstructure:"event_buffer"`
	OutBuf     int    `mapstructure:"out_buffer"`
	Debug      bool   `mapstructure:"debug"`
}

// Load builds the runtime configuration from defaults, an optional
// config.yaml, CHAT_* environment variables, and finally the command-line
// flags, in increasing precedence. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("addr", ":5005")
	v.SetDefault("ops_addr", ":9090")
	v.SetDefault("server_name", "TestChat")
	v.SetDefault("event_buffer", 128)
	v.SetDefault("out_buffer", 32)
	v.SetDefault("debug", false)

	v.SetEnvPrefix("CHAT")
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range map[string]string{
			"addr":        "addr",
			"ops_addr":    "ops-addr",
			"server_name": "name",
			"debug":       "debug",
		} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
