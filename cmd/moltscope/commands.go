package main

import (
	"fmt"
	"strings"

	"github.com/moltbook/moltscope/pkg/analyze"
	"github.com/moltbook/moltscope/pkg/report"
	"github.com/moltbook/moltscope/pkg/store"
)

const rule = "--------------------------------------------------"

func sign(n int) string {
	if n >= 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}

func signf(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.1f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func (c *cli) cmdSnapshot(_ []string) error {
	fmt.Println("Taking comprehensive snapshot...")
	fmt.Println()

	snap, err := c.collector.TakeSnapshot(c.ctx)
	if err != nil {
		return err
	}
	if err := c.snapshots.Append(c.ctx, snap); err != nil {
		return err
	}
	if err := c.snapshots.EvictOldest(c.ctx, store.MaxSnapshots()); err != nil {
		return err
	}

	fmt.Println("MOLTBOOK ANALYTICS SNAPSHOT")
	fmt.Println("   " + snap.Timestamp.Format("2006-01-02 15:04:05 MST"))
	fmt.Println(rule)

	fmt.Printf("\nMY PROFILE: u/%s\n", snap.Profile.Name)
	fmt.Printf("   Karma: %d | Posts: %d | Comments: %d\n",
		snap.Profile.Karma, snap.Profile.Posts, snap.Profile.Comments)

	fmt.Println("\nSITE ACTIVITY:")
	fmt.Printf("   Posts (24h): ~%d\n", snap.Site.PostsLast24h)
	fmt.Printf("   Avg upvotes: %d | Avg comments: %d\n", snap.Site.AvgUpvotes, snap.Site.AvgComments)
	fmt.Printf("   Active submolts: %d\n", snap.Site.SubmoltsCount)

	fmt.Println("\nTOP AGENTS (by upvotes):")
	for i, a := range snap.TopAgents {
		if i >= 5 {
			break
		}
		fmt.Printf("   %d. %s - %d upvotes (%d posts)\n", i+1, a.Name, a.TotalUpvotes, a.Posts)
	}

	fmt.Println("\nTRENDING TOPICS:")
	fmt.Printf("   Dominant: %s\n", strings.ToUpper(snap.Topics.DominantCategory))
	for i, t := range snap.Topics.TrackedTopics {
		if i >= 8 {
			break
		}
		fmt.Printf("   - %s: %d\n", t.Topic, t.Count)
	}

	fmt.Println("\nSnapshot saved.")
	return nil
}

func (c *cli) cmdTrending(_ []string) error {
	fmt.Println("TRENDING ON MOLTBOOK")
	fmt.Println()

	hot, err := c.collector.API().HotPosts(c.ctx, 15)
	if err != nil {
		return err
	}
	rising, err := c.collector.API().RisingPosts(c.ctx, 10)
	if err != nil {
		return err
	}

	fmt.Println("HOT POSTS:")
	fmt.Println(rule)
	for i, p := range hot {
		fmt.Printf("%d. [%d up %d comments] %s\n", i+1, p.Upvotes, p.CommentCount, truncate(p.Title, 45))
		fmt.Printf("   by %s in m/%s\n", p.AuthorName(), p.SubmoltName())
	}

	fmt.Println("\nRISING:")
	fmt.Println(rule)
	for i, p := range rising {
		if i >= 5 {
			break
		}
		fmt.Printf("%d. [%d up] %s\n", i+1, p.Upvotes, truncate(p.Title, 50))
	}
	return nil
}

func (c *cli) cmdAgent(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: moltscope agent <username>")
	}
	name := args[0]

	agent, err := c.collector.GetAgent(c.ctx, name)
	if err != nil {
		return err
	}

	fmt.Println(rule)
	fmt.Printf("   u/%s\n", agent.Name)
	fmt.Println(rule)
	description := agent.Description
	if description == "" {
		description = "None"
	}
	fmt.Printf("Description: %s\n", description)
	fmt.Printf("Karma: %d\n", agent.Karma)
	fmt.Printf("Followers: %d | Following: %d\n", agent.FollowerCount, agent.FollowingCount)
	fmt.Printf("Created: %s\n", agent.CreatedAt.Format("2006-01-02"))
	fmt.Printf("Last active: %s\n", agent.LastActive.Format("2006-01-02 15:04"))
	claimed := "No"
	if agent.IsClaimed {
		claimed = "Yes"
	}
	fmt.Printf("Claimed: %s\n", claimed)

	if agent.Owner != nil {
		fmt.Printf("\nOwner: @%s (%d followers)\n", agent.Owner.Handle, agent.Owner.Followers)
	}

	if len(agent.RecentPosts) > 0 {
		fmt.Println("\nRecent posts:")
		for _, p := range agent.RecentPosts {
			fmt.Printf("   - %q (%d up)\n", truncate(p.Title, 40), p.Upvotes)
		}
	}
	return nil
}

func (c *cli) cmdSubmolt(args []string) error {
	if len(args) < 1 {
		fmt.Println("ALL SUBMOLTS")
		fmt.Println()
		submolts, err := c.collector.CollectSubmolts(c.ctx)
		if err != nil {
			return err
		}
		for _, s := range submolts {
			fmt.Printf("   m/%s - %s (%d subs)\n", s.Name, s.DisplayName, s.SubscriberCount)
		}
		return nil
	}

	// subcommands operate on stored snapshots rather than the live API
	switch args[0] {
	case "growth":
		return c.cmdSubmoltGrowth()
	case "history":
		if len(args) < 2 {
			return fmt.Errorf("usage: moltscope submolt history <name>")
		}
		return c.cmdSubmoltHistory(args[1])
	case "compare":
		if len(args) < 3 {
			return fmt.Errorf("usage: moltscope submolt compare <name1> <name2> [name3...]")
		}
		return c.cmdSubmoltCompare(args[1:])
	}

	name := args[0]
	details, err := c.collector.GetSubmoltDetails(c.ctx, name)
	if err != nil {
		return err
	}

	fmt.Println(rule)
	fmt.Printf("   m/%s - %s\n", details.Name, details.DisplayName)
	fmt.Println(rule)
	fmt.Printf("Subscribers: %d\n", details.SubscriberCount)
	fmt.Printf("Avg upvotes: %d\n", details.AvgUpvotes)
	fmt.Printf("Total engagement: %d up %d comments\n", details.TotalUpvotes, details.TotalComments)

	fmt.Println("\nTop posts:")
	for i, p := range details.TopPosts {
		fmt.Printf("   %d. %q by %s (%d up)\n", i+1, truncate(p.Title, 40), p.Author, p.Upvotes)
	}

	fmt.Println("\nTop contributors:")
	for _, contributor := range details.TopContributors {
		fmt.Printf("   - %s: %d posts\n", contributor.Name, contributor.Posts)
	}
	return nil
}

func (c *cli) cmdTopics(_ []string) error {
	fmt.Println("TOPIC ANALYSIS")
	fmt.Println()

	analysis, err := c.collector.AnalyzeTopics(c.ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Posts analyzed: %d\n", analysis.PostsAnalyzed)
	fmt.Printf("Dominant category: %s\n\n", strings.ToUpper(analysis.DominantCategory))

	fmt.Println("Category breakdown:")
	for _, cat := range analyze.CategoryNames() {
		score := analysis.CategoryScores[cat]
		barLen := score / 5
		if barLen > 20 {
			barLen = 20
		}
		fmt.Printf("   %-15s %s %d\n", cat, strings.Repeat("#", barLen), score)
	}

	fmt.Println("\nTop tracked keywords:")
	for i, t := range analysis.TrackedTopics {
		if i >= 15 {
			break
		}
		fmt.Printf("   %-20s %d\n", t.Topic, t.Count)
	}

	fmt.Println("\nTop words overall:")
	for i, w := range analysis.TopWords {
		if i >= 10 {
			break
		}
		fmt.Printf("   %-20s %d\n", w.Word, w.Count)
	}
	return nil
}

func (c *cli) cmdLeaderboard(_ []string) error {
	fmt.Println("AGENT LEADERBOARD")
	fmt.Println()

	agents, err := c.collector.CollectTopAgents(c.ctx)
	if err != nil {
		return err
	}

	fmt.Println("TOP AGENTS BY UPVOTES:")
	fmt.Println(rule)
	for i, a := range agents {
		if i >= 20 {
			break
		}
		fmt.Printf("%3d. %-25s %d up (%d posts)\n", i+1, a.Name, a.TotalUpvotes, a.Posts)
	}
	return nil
}

func (c *cli) cmdHistory(_ []string) error {
	fmt.Println("SNAPSHOT HISTORY")
	fmt.Println()

	snaps, err := c.snapshots.ListOrdered(c.ctx)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Println("No snapshots yet. Run: moltscope snapshot")
		return nil
	}

	// newest first, last ten
	if len(snaps) > 10 {
		snaps = snaps[len(snaps)-10:]
	}
	fmt.Printf("Found %d snapshots\n\n", len(snaps))
	for i := len(snaps) - 1; i >= 0; i-- {
		s := snaps[i]
		fmt.Printf("%d. %s\n", len(snaps)-i, s.Timestamp.Format("2006-01-02 15:04:05"))
		fmt.Printf("   Karma: %d | Posts: %d | Comments: %d\n",
			s.Profile.Karma, s.Profile.Posts, s.Profile.Comments)
		fmt.Printf("   Dominant topic: %s\n", s.Topics.DominantCategory)
	}

	if len(snaps) >= 2 {
		oldest, latest := snaps[0].Profile, snaps[len(snaps)-1].Profile
		fmt.Println("\nGROWTH:")
		fmt.Printf("   Karma: %d -> %d (%s)\n", oldest.Karma, latest.Karma, sign(latest.Karma-oldest.Karma))
		fmt.Printf("   Posts: %d -> %d (%s)\n", oldest.Posts, latest.Posts, sign(latest.Posts-oldest.Posts))
		fmt.Printf("   Comments: %d -> %d (%s)\n", oldest.Comments, latest.Comments, sign(latest.Comments-oldest.Comments))
	}
	return nil
}

func (c *cli) cmdGrowth(_ []string) error {
	fmt.Println("GROWTH ANALYSIS")
	fmt.Println()

	snaps, err := c.snapshots.ListOrdered(c.ctx)
	if err != nil {
		return err
	}

	analysis, err := analyze.Growth(snaps)
	if err != nil {
		if analyze.IsInsufficientData(err) {
			fmt.Println(err.Error())
			fmt.Println("Run more snapshots first: moltscope snapshot")
			return nil
		}
		return err
	}

	fmt.Printf("Snapshots analyzed: %d\n", analysis.SnapshotsCount)
	fmt.Printf("Period: %s -> %s\n",
		analysis.Overall.Period.From.Format("2006-01-02"),
		analysis.Overall.Period.To.Format("2006-01-02"))
	fmt.Printf("Duration: %.1f hours\n\n", analysis.Overall.Period.Hours)

	fmt.Println("MY PROFILE GROWTH:")
	fmt.Println(rule)
	p := analysis.Overall.Profile
	fmt.Printf("   Karma:    %d -> %d (%s)\n", p.Karma.Old, p.Karma.New, sign(p.Karma.Delta))
	fmt.Printf("   Posts:    %d -> %d (%s)\n", p.Posts.Old, p.Posts.New, sign(p.Posts.Delta))
	fmt.Printf("   Comments: %d -> %d (%s)\n", p.Comments.Old, p.Comments.New, sign(p.Comments.Delta))

	fmt.Println("\nVELOCITY (per hour):")
	fmt.Println(rule)
	v := analysis.Overall.Velocity
	fmt.Printf("   Karma:    %.2f/hr\n", v.KarmaPerHour)
	fmt.Printf("   Posts:    %.2f/hr\n", v.PostsPerHour)
	fmt.Printf("   Comments: %.2f/hr\n", v.CommentsPerHour)

	if len(analysis.TopicMomentum) > 0 {
		fmt.Println("\nTOPIC MOMENTUM:")
		fmt.Println(rule)
		for _, cat := range analyze.CategoryNames() {
			momentum, ok := analysis.TopicMomentum[cat]
			if !ok {
				continue
			}
			fmt.Printf("   %-15s %s\n", cat, signf(momentum))
		}
	}
	return nil
}

func (c *cli) cmdRising(_ []string) error {
	fmt.Println("RISING AGENTS")
	fmt.Println()

	snaps, err := c.snapshots.ListOrdered(c.ctx)
	if err != nil {
		return err
	}

	growth, err := analyze.AgentGrowthRanking(snaps)
	if err != nil {
		if analyze.IsInsufficientData(err) {
			fmt.Println(err.Error())
			return nil
		}
		return err
	}

	fmt.Println("TOP GAINERS (by upvote growth):")
	fmt.Println(rule)
	for i, a := range growth {
		if i >= 15 {
			break
		}
		badge := ""
		if a.IsNew {
			badge = " [new]"
		}
		fmt.Printf("%3d. %-25s %s%s\n", i+1, a.Name, sign(a.Growth), badge)
	}
	return nil
}

func (c *cli) cmdCompare(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: moltscope compare <agent1> <agent2> [agent3...]")
	}

	fmt.Printf("COMPARING: %s\n\n", strings.Join(args, " vs "))

	result, err := c.collector.CompareAgents(c.ctx, args)
	if err != nil {
		return err
	}

	fmt.Println(rule)
	fmt.Printf("%-20s%-10s%-12s%s\n", "Agent", "Karma", "Followers", "Owner Followers")
	fmt.Println(rule)
	for _, row := range result.Table {
		if row.Err != "" {
			fmt.Printf("%-20s ERROR: %s\n", row.Name, row.Err)
			continue
		}
		fmt.Printf("%-20s%-10d%-12d%d\n", row.Name, row.Karma, row.Followers, row.OwnerFollowers)
	}
	fmt.Println(rule)

	orNA := func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	}
	fmt.Println("\nWINNERS:")
	fmt.Printf("   Most Karma:     %s\n", orNA(result.Winners.Karma))
	fmt.Printf("   Most Followers: %s\n", orNA(result.Winners.Followers))
	fmt.Printf("   Most Active:    %s\n", orNA(result.Winners.RecentActivity))
	return nil
}

// selfOrArg resolves the target name, falling back to the authenticated agent.
func (c *cli) selfOrArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	me, err := c.collector.API().MyProfile(c.ctx)
	if err != nil {
		return "", err
	}
	return me.Agent.Name, nil
}

func (c *cli) cmdVelocity(args []string) error {
	name, err := c.selfOrArg(args)
	if err != nil {
		return err
	}

	fmt.Printf("VELOCITY ANALYSIS: %s\n\n", name)

	stats, err := c.collector.Velocity(c.ctx, name)
	if err != nil {
		return err
	}

	fmt.Println(rule)
	fmt.Printf("Posts found:     %d\n", stats.PostsFound)
	fmt.Printf("Total upvotes:   %d\n", stats.TotalUpvotes)
	fmt.Printf("Total comments:  %d\n", stats.TotalComments)
	fmt.Printf("Avg upvotes:     %d/post\n", stats.AvgUpvotes)
	fmt.Printf("Avg comments:    %d/post\n", stats.AvgComments)
	fmt.Printf("Avg post age:    %.1f hours\n", stats.AvgPostAgeHours)
	fmt.Printf("Upvote velocity: %.1f/hour\n", stats.UpvotesPerHour)

	if stats.TopPost != nil {
		fmt.Println("\nTop Post:")
		fmt.Printf("   %q\n", truncate(stats.TopPost.Title, 50))
		fmt.Printf("   %d up %d comments\n", stats.TopPost.Upvotes, stats.TopPost.CommentCount)
	}
	return nil
}

func (c *cli) cmdSimilar(args []string) error {
	name, err := c.selfOrArg(args)
	if err != nil {
		return err
	}

	fmt.Printf("AGENTS SIMILAR TO: %s\n\n", name)

	similar, err := c.collector.FindSimilarAgents(c.ctx, name)
	if err != nil {
		return err
	}
	if len(similar) == 0 {
		fmt.Println("No similar agents found in recent posts.")
		return nil
	}

	fmt.Println(rule)
	for i, a := range similar {
		fmt.Printf("%d. %s\n", i+1, a.Name)
		fmt.Printf("   Shared submolts: %s\n", strings.Join(a.SharedSubmolts, ", "))
		fmt.Printf("   Posts in shared: %d\n", a.PostsInShared)
	}
	return nil
}

func (c *cli) cmdReport(_ []string) error {
	fmt.Println("Generating HTML report...")
	fmt.Println()

	snap, err := c.collector.TakeSnapshot(c.ctx)
	if err != nil {
		return err
	}

	path, err := report.SaveHTML(*snap)
	if err != nil {
		return err
	}

	fmt.Println("Report generated.")
	fmt.Printf("   File: %s\n", path)
	fmt.Println("   Also: reports/index.html")
	fmt.Println("\nOpen in browser to view the dashboard.")
	return nil
}

func (c *cli) cmdMarkdown(_ []string) error {
	fmt.Println("Generating Markdown report...")
	fmt.Println()

	snap, err := c.collector.TakeSnapshot(c.ctx)
	if err != nil {
		return err
	}

	path, err := report.SaveMarkdown(*snap)
	if err != nil {
		return err
	}

	fmt.Println("Markdown report generated.")
	fmt.Printf("   File: %s\n", path)
	fmt.Println("   Also: reports/latest.md")
	return nil
}

func (c *cli) cmdShare(_ []string) error {
	fmt.Println("Generating shareable summary...")
	fmt.Println()

	snap, err := c.collector.TakeSnapshot(c.ctx)
	if err != nil {
		return err
	}

	fmt.Println(rule)
	fmt.Println(report.QuickSummary(*snap))
	fmt.Println(rule)
	fmt.Println("\nCopy the above to share on MoltBook.")
	return nil
}
