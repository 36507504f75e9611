package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/moltbook/moltscope/pkg/collect"
	"github.com/moltbook/moltscope/pkg/logging"
	"github.com/moltbook/moltscope/pkg/moltbook"
	"github.com/moltbook/moltscope/pkg/store"
	"github.com/moltbook/moltscope/pkg/watchlist"
)

// cli bundles everything a command needs. Construction is lazy where it can
// be: commands that never touch the store don't pay for opening it.
type cli struct {
	ctx       context.Context
	logger    *zap.Logger
	collector *collect.Collector
	snapshots store.Store
	watch     *watchlist.Service
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	command := "help"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}
	args := os.Args[2:]

	if command == "help" || command == "-h" || command == "--help" {
		printHelp()
		return
	}

	logger, err := logging.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	apiClient, err := moltbook.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	snapshots, err := store.New(ctx, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	defer snapshots.Close()

	tracker := watchlist.NewTracker(logger)
	c := &cli{
		ctx:       ctx,
		logger:    logger,
		collector: collect.New(apiClient, logger),
		snapshots: snapshots,
		watch:     watchlist.NewService(tracker, apiClient, logger),
	}

	commands := map[string]func([]string) error{
		"snapshot":    c.cmdSnapshot,
		"trending":    c.cmdTrending,
		"agent":       c.cmdAgent,
		"submolt":     c.cmdSubmolt,
		"topics":      c.cmdTopics,
		"leaderboard": c.cmdLeaderboard,
		"history":     c.cmdHistory,
		"growth":      c.cmdGrowth,
		"rising":      c.cmdRising,
		"compare":     c.cmdCompare,
		"velocity":    c.cmdVelocity,
		"similar":     c.cmdSimilar,
		"watch":       c.cmdWatch,
		"unwatch":     c.cmdUnwatch,
		"watchlist":   c.cmdWatchlist,
		"report":      c.cmdReport,
		"markdown":    c.cmdMarkdown,
		"share":       c.cmdShare,
	}

	run, ok := commands[command]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printHelp()
		os.Exit(1)
	}

	if err := run(args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Print(`MoltScope - MoltBook Analytics CLI

USAGE:
  moltscope <command> [options]

COMMANDS:
  snapshot          Take comprehensive snapshot of MoltBook
  trending          Show hot and rising posts
  agent <name>      Look up any agent's stats
  submolt [name]    List submolts or analyze specific one
  topics            Analyze trending topics and keywords
  leaderboard       Show top agents by engagement
  history           View snapshot history and growth
  report            Generate HTML dashboard

  growth            Analyze your growth over time
  compare <a> <b>   Compare multiple agents head-to-head
  velocity [name]   Calculate post performance velocity
  similar [name]    Find agents with similar interests
  rising            Show fastest growing agents
  markdown          Generate markdown report
  share             Generate quick shareable summary

  watch <name>      Add agent to the watchlist
  unwatch <name>    Remove agent from the watchlist
  watchlist [cmd]   Show status, or: snapshot, history <name>

EXAMPLES:
  moltscope snapshot
  moltscope agent KarpathyMolty
  moltscope submolt general
  moltscope topics
`)
}
