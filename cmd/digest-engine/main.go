// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the digest-engine CLI. It fetches
// news from configured sources, filters and ranks articles by topic,
// summarizes them with a local language model, and delivers a daily digest
// email. Subcommands manage sources, topics, and the blocklist, run the
// pipeline once, or start the scheduler with the admin API.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/digest-engine/internal/secrets"
	"github.com/pdiddy/digest-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when non-empty, else the named secret.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the digest-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "digest-engine",
	Short: "Daily news digest: fetch, rank, summarize, deliver",
	Long: `digest-engine assembles a daily news digest. It fetches articles from
RSS feeds, subreddits, and web pages, filters them through a keyword
blocklist, matches and ranks them against configured topics, summarizes
them with a local Ollama model, and emails the result.

Manage sources, topics, and the blocklist with their subcommands; use
"run" for a one-off digest and "serve" for the daily scheduler plus the
admin HTTP API.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./digest-engine.yaml or ~/.config/digest-engine/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "SQLite database path (default: ./digest.db)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("digest-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "digest-engine"))
		}
	}

	viper.SetEnvPrefix("DIGEST_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("store.path", "./digest.db")
	viper.SetDefault("fetch.timeout", "30s")
	viper.SetDefault("fetch.user_agent", "digest-engine/0.1 (news digest bot)")
	viper.SetDefault("extract.timeout", "15s")
	viper.SetDefault("extract.min_words", 20)
	viper.SetDefault("summarizer.host", "http://localhost:11434")
	viper.SetDefault("summarizer.model", "qwen2.5:1.5b-instruct")
	viper.SetDefault("summarizer.timeout", "2m")
	viper.SetDefault("email.port", 587)
	viper.SetDefault("schedule.hour", 6)
	viper.SetDefault("schedule.minute", 0)
	viper.SetDefault("schedule.timezone", "UTC")
	viper.SetDefault("server.addr", ":8020")
	viper.SetDefault("log_level", "info")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the full configuration from viper, flags, and
// secrets.
func loadConfig() types.Config {
	cfg := types.Config{
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("fetch.timeout"),
				UserAgent: viper.GetString("fetch.user_agent"),
			},
		},
		Extract: types.ExtractConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("extract.timeout"),
				UserAgent: viper.GetString("fetch.user_agent"),
			},
			MinWords: viper.GetInt("extract.min_words"),
		},
		Summarizer: types.SummarizerConfig{
			Host:    viper.GetString("summarizer.host"),
			Model:   viper.GetString("summarizer.model"),
			Timeout: viper.GetDuration("summarizer.timeout"),
		},
		Email: types.EmailConfig{
			Host:      viper.GetString("email.host"),
			Port:      viper.GetInt("email.port"),
			Username:  secretDefault("smtp-username", viper.GetString("email.username")),
			Password:  secretDefault("smtp-password", viper.GetString("email.password")),
			Recipient: viper.GetString("email.recipient"),
		},
		Schedule: types.ScheduleConfig{
			Hour:     viper.GetInt("schedule.hour"),
			Minute:   viper.GetInt("schedule.minute"),
			Timezone: viper.GetString("schedule.timezone"),
		},
		Store: types.StoreConfig{
			Path: viper.GetString("store.path"),
		},
		Server: types.ServerConfig{
			Addr: viper.GetString("server.addr"),
		},
		LogLevel: viper.GetString("log_level"),
	}

	if db, _ := rootCmd.PersistentFlags().GetString("db"); db != "" {
		cfg.Store.Path = db
	}
	return cfg
}

// newLogger builds the process logger at the configured level.
func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

func formatFetched(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
