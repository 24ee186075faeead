// message-store CLI
//
// Reads batches of messages from a Message DB style PostgreSQL message
// store, by individual stream or by category.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kpricorn/message-store-postgres/postgres"
	"github.com/kpricorn/message-store-postgres/settings"
)

var (
	settingsPath string
	logLevel     string

	position      int64
	batchSize     int64
	correlation   string
	groupMember   int64
	groupSize     int64
	condition     string
	positionGiven bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "message-store",
		Short: "message-store - read messages from a PostgreSQL message store",
	}

	rootCmd.PersistentFlags().StringVarP(&settingsPath, "settings", "s", "", "settings file (default: $"+settings.EnvPathVar+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	getCmd := &cobra.Command{
		Use:   "get <stream-name>",
		Short: "Retrieve a batch of messages from a stream or category",
		Long: `Retrieve a batch of messages starting at a position.

A stream name without the identifier separator ("-") reads a whole
category in global order; any other name reads that individual stream.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			positionGiven = cmd.Flags().Changed("position")
			return runGet(cmd.Context(), args[0])
		},
	}

	getCmd.Flags().Int64VarP(&position, "position", "p", 0, "starting position (default: start of stream)")
	getCmd.Flags().Int64VarP(&batchSize, "batch-size", "b", postgres.DefaultBatchSize, "maximum number of messages to return")
	getCmd.Flags().StringVar(&correlation, "correlation", "", "correlation category filter (category retrieval only)")
	getCmd.Flags().Int64Var(&groupMember, "consumer-group-member", 0, "consumer group member index (category retrieval only)")
	getCmd.Flags().Int64Var(&groupSize, "consumer-group-size", 0, "consumer group size (category retrieval only)")
	getCmd.Flags().StringVar(&condition, "condition", "", "SQL condition (requires condition support)")

	rootCmd.AddCommand(getCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runGet(ctx context.Context, streamName string) error {
	log := newLogger(logLevel)

	config, err := settings.Load(settingsPath)
	if err != nil {
		return err
	}

	session, err := postgres.NewSession(postgres.Config{ConnectionString: config.ConnectionString()})
	if err != nil {
		return err
	}
	defer session.Close()

	opts := []postgres.Option{
		postgres.WithSession(session),
		postgres.WithBatchSize(batchSize),
		postgres.WithLogger(log),
	}
	if correlation != "" {
		opts = append(opts, postgres.WithCorrelation(correlation))
	}
	if groupSize != 0 {
		opts = append(opts, postgres.WithConsumerGroup(groupMember, groupSize))
	}
	if condition != "" {
		opts = append(opts, postgres.WithCondition(condition))
	}

	get, err := postgres.New(streamName, opts...)
	if err != nil {
		return err
	}

	var pos *int64
	if positionGiven {
		pos = postgres.Position(position)
	}

	messages, err := get.Execute(ctx, pos)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	for _, message := range messages {
		if err := encoder.Encode(message); err != nil {
			return err
		}
	}

	log.Info("retrieved messages", "stream_name", streamName, "count", len(messages))

	return nil
}

func newLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo

	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}

	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(log)
	return log
}
