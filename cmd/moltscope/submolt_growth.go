package main

import (
	"fmt"
	"strings"

	"github.com/moltbook/moltscope/pkg/analyze"
)

func (c *cli) cmdSubmoltGrowth() error {
	fmt.Println("SUBMOLT GROWTH")
	fmt.Println()

	snaps, err := c.snapshots.ListOrdered(c.ctx)
	if err != nil {
		return err
	}

	growth, err := analyze.AllSubmoltGrowth(snaps)
	if err != nil {
		if analyze.IsInsufficientData(err) {
			fmt.Println(err.Error())
			return nil
		}
		return err
	}

	fmt.Printf("Period: %s -> %s (%.1f hours, %d snapshots)\n\n",
		growth.Period.Start.Format("2006-01-02 15:04"),
		growth.Period.End.Format("2006-01-02 15:04"),
		growth.Period.Hours, growth.Period.SnapshotsUsed)

	fmt.Println("TOP GROWING:")
	fmt.Println(rule)
	for i, g := range growth.TopGrowing {
		fmt.Printf("%3d. m/%-20s %d -> %d (%s, %.1f%%)\n",
			i+1, g.Name, g.OldSubscribers, g.NewSubscribers, sign(g.SubscriberChange), g.ChangePercent)
	}

	if len(growth.TopDeclining) > 0 {
		fmt.Println("\nDECLINING:")
		fmt.Println(rule)
		for i, g := range growth.TopDeclining {
			fmt.Printf("%3d. m/%-20s %d -> %d (%s)\n",
				i+1, g.Name, g.OldSubscribers, g.NewSubscribers, sign(g.SubscriberChange))
		}
	}

	fmt.Println("\nFASTEST (subscribers/hour):")
	fmt.Println(rule)
	for i, g := range growth.FastestPerHour {
		fmt.Printf("%3d. m/%-20s %s/hr\n", i+1, g.Name, signf(g.GrowthPerHour))
	}
	return nil
}

func (c *cli) cmdSubmoltHistory(name string) error {
	snaps, err := c.snapshots.ListOrdered(c.ctx)
	if err != nil {
		return err
	}

	history, err := analyze.HistoryForSubmolt(snaps, name)
	if err != nil {
		return err
	}

	fmt.Printf("HISTORY: m/%s (%d data points)\n\n", history.Submolt, history.DataPoints)
	for _, p := range history.History {
		fmt.Printf("   %s  %d subscribers\n", p.Timestamp.Format("2006-01-02 15:04"), p.Subscribers)
	}

	s := history.Summary
	fmt.Println("\nSUMMARY:")
	fmt.Printf("   Subscribers: %d -> %d (%s, %.1f%%)\n",
		s.StartSubscribers, s.EndSubscribers, sign(s.TotalChange), s.ChangePercent)
	fmt.Printf("   Tracked: %.1f hours, avg %s/hr\n", s.HoursTracked, signf(s.AvgGrowthPerHour))
	return nil
}

func (c *cli) cmdSubmoltCompare(names []string) error {
	fmt.Printf("COMPARING SUBMOLTS: %s\n\n", strings.Join(names, " vs "))

	snaps, err := c.snapshots.ListOrdered(c.ctx)
	if err != nil {
		return err
	}

	results := analyze.CompareSubmoltGrowth(snaps, names)

	fmt.Println(rule)
	for _, r := range results {
		if r.Err != "" {
			fmt.Printf("m/%-20s ERROR: %s\n", r.Name, r.Err)
			continue
		}
		fmt.Printf("m/%-20s %d -> %d (%s, %s/hr)\n",
			r.Name, r.StartSubscribers, r.EndSubscribers, sign(r.TotalChange), signf(r.AvgGrowthPerHour))
	}
	return nil
}
