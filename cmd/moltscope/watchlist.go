package main

import (
	"errors"
	"fmt"

	"github.com/moltbook/moltscope/pkg/watchlist"
)

func (c *cli) cmdWatch(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: moltscope watch <name>")
	}
	name := args[0]

	if err := c.watch.Tracker().Add(name); err != nil {
		var already *watchlist.AlreadyWatchedError
		if errors.As(err, &already) {
			fmt.Printf("%s is already on the watchlist\n", name)
			return nil
		}
		return err
	}
	fmt.Printf("Added %s to watchlist\n", name)
	return nil
}

func (c *cli) cmdUnwatch(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: moltscope unwatch <name>")
	}
	name := args[0]

	if err := c.watch.Tracker().Remove(name); err != nil {
		return err
	}
	fmt.Printf("Removed %s from watchlist\n", name)
	return nil
}

func (c *cli) cmdWatchlist(args []string) error {
	sub := "status"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "snapshot":
		sample, err := c.watch.Snapshot(c.ctx)
		if err != nil {
			if errors.Is(err, watchlist.ErrEmpty) {
				fmt.Println("Watchlist empty. Add agents with: moltscope watch <name>")
				return nil
			}
			return err
		}
		fmt.Printf("Watchlist sampled at %s\n", sample.Timestamp.Format("2006-01-02 15:04:05"))
		for _, a := range sample.Agents {
			if a.Err != "" {
				fmt.Printf("   %s: ERROR: %s\n", a.Name, a.Err)
				continue
			}
			fmt.Printf("   %s: karma %d, followers %d\n", a.Name, a.Karma, a.Followers)
		}
		return nil

	case "history":
		if len(args) < 2 {
			return fmt.Errorf("usage: moltscope watchlist history <name>")
		}
		name := args[1]
		points, err := c.watch.Tracker().History(name)
		if err != nil {
			return err
		}
		fmt.Printf("HISTORY: %s (%d data points)\n\n", name, len(points))
		for _, p := range points {
			fmt.Printf("   %s  karma %d  followers %d\n",
				p.Timestamp.Format("2006-01-02 15:04"), p.Karma, p.Followers)
		}
		return nil

	case "status":
		statuses, err := c.watch.Status(c.ctx)
		if err != nil {
			if errors.Is(err, watchlist.ErrEmpty) {
				fmt.Println("Watchlist empty. Add agents with: moltscope watch <name>")
				return nil
			}
			return err
		}
		fmt.Println("WATCHLIST STATUS")
		fmt.Println()
		for _, s := range statuses {
			if s.Err != "" {
				fmt.Printf("   %s: ERROR: %s\n", s.Name, s.Err)
				continue
			}
			line := fmt.Sprintf("   %s: karma %d, followers %d", s.Name, s.Karma, s.Followers)
			if s.Growth != nil {
				line += fmt.Sprintf(" (karma %s, followers %s since last sample)",
					sign(s.Growth.Karma), sign(s.Growth.Followers))
			}
			fmt.Println(line)
		}
		return nil

	default:
		return fmt.Errorf("unknown watchlist subcommand: %s", sub)
	}
}
