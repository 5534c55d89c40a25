// Package cli implements the notekeeper commands.
package cli

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	configPath string
	dataDir    string
	memoryFlag bool
	logLevel   string
)

// RootCmd is the top-level command. Without a subcommand it starts the chat loop.
var RootCmd = &cobra.Command{
	Use:   "notekeeper",
	Short: "Voice-note assistant for belongings and appointments",
	Long:  "Tell it where you put things and what you need to do. It files item and schedule notes, answers queries, and chats about everything else.",
	RunE:  runChat,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config/config.toml", "Config file (TOML)")
	RootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "Directory for items.json and schedules.json (default: $NOTEKEEPER_DATA_DIR or ~/.notekeeper)")
	RootCmd.PersistentFlags().BoolVarP(&memoryFlag, "memory", "m", false, "Remember the chat across turns and runs")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
}

func newLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(logLevel))); err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
