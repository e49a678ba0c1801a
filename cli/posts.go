// ABOUTME: Content calendar CLI commands
// ABOUTME: Posts, the month grid, AI campaigns and AI content ideas with quick-date scheduling
package cli

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/harperreed/lifehub/calendar"
	"github.com/harperreed/lifehub/gateway"
	"github.com/harperreed/lifehub/hub"
	"github.com/harperreed/lifehub/models"
)

const monthLayout = "2006-01"

// scheduleDate resolves --date or --when into a scheduledDate. --date wins.
// A space between date and time is accepted in place of the T.
func scheduleDate(h *hub.Hub, date, when string) (string, error) {
	date = strings.TrimSpace(date)
	if date != "" {
		date = strings.Replace(date, " ", "T", 1)
		if _, ok := models.ParseSchedule(date); !ok {
			return "", fmt.Errorf("invalid date %q: want YYYY-MM-DDTHH:MM", date)
		}
		return date, nil
	}
	if when == "" {
		return "", nil
	}
	preset, err := calendar.ParsePreset(when)
	if err != nil {
		return "", err
	}
	return calendar.QuickDate(preset, h.Now())
}

func (a *App) scoreRNG() calendar.Intner {
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // display-only score
	}
	return a.rng
}

func findPost(h *hub.Hub, ref string) (models.SocialPost, error) {
	return resolve(h.Posts(), func(p models.SocialPost) string { return p.ID }, ref, "post")
}

func (a *App) postsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "posts",
		Aliases: []string{"post"},
		Short:   "Manage scheduled social posts",
	}

	var status, platform, month string
	list := &cobra.Command{
		Use:   "list",
		Short: "List posts in schedule order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPostsList(cmd, status, platform, month)
		},
	}
	list.Flags().StringVar(&status, "status", "", "draft, scheduled or published")
	list.Flags().StringVar(&platform, "platform", "", "facebook, linkedin, instagram or twitter")
	list.Flags().StringVar(&month, "month", "", "only posts in this month (YYYY-MM)")

	var content, addPlatform, date, when string
	var draft bool
	add := &cobra.Command{
		Use:   "add",
		Short: "Schedule a post, or save a draft with --draft",
		Long: `Schedule a post for a date and time, or pick a quick date:

  tomorrow  tomorrow at 09:30
  weekend   next Saturday at 11:00
  prime     two days out at 19:45`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPostsAdd(cmd, content, addPlatform, date, when, draft)
		},
	}
	add.Flags().StringVar(&content, "content", "", "post text (required)")
	add.Flags().StringVar(&addPlatform, "platform", "", "facebook, linkedin, instagram or twitter (required)")
	add.Flags().StringVar(&date, "date", "", "local date and time, YYYY-MM-DDTHH:MM")
	add.Flags().StringVar(&when, "when", "", "quick date: tomorrow, weekend or prime")
	add.Flags().BoolVar(&draft, "draft", false, "save as a draft")

	var days int
	upcoming := &cobra.Command{
		Use:   "upcoming",
		Short: "Scheduled posts in the next few days",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPostsUpcoming(cmd, days)
		},
	}
	upcoming.Flags().IntVar(&days, "days", 7, "window in days")

	cmd.AddCommand(list, add, upcoming, &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPostsRemove(cmd, args[0])
		},
	})
	return cmd
}

func writePosts(cmd *cobra.Command, posts []models.SocialPost) {
	out := cmd.OutOrStdout()
	if len(posts) == 0 {
		fmt.Fprintln(out, "No posts found")
		return
	}
	tw := newTable(out, "WHEN", "PLATFORM", "STATUS", "CONTENT", "ID")
	for _, p := range posts {
		row(tw, dash(p.ScheduledDate), string(p.Platform), string(p.Status), truncate(p.Content, 50), shortID(p.ID))
	}
	_ = tw.Flush()
	fmt.Fprintf(out, "\nTotal: %d post(s)\n", len(posts))
}

func (a *App) runPostsList(cmd *cobra.Command, status, platform, month string) error {
	h, err := a.UnlockedHub()
	if err != nil {
		return err
	}
	var plat models.Platform
	if platform != "" {
		p, ok := models.ParsePlatform(platform)
		if !ok {
			return fmt.Errorf("unknown platform %q", platform)
		}
		plat = p
	}
	if month != "" {
		if _, err := time.Parse(monthLayout, month); err != nil {
			return fmt.Errorf("invalid month %q: want YYYY-MM", month)
		}
	}

	var posts []models.SocialPost
	for _, p := range h.SortedPosts() {
		if status != "" && !strings.EqualFold(string(p.Status), status) {
			continue
		}
		if plat != "" && p.Platform != plat {
			continue
		}
		if month != "" && !strings.HasPrefix(p.ScheduledDate, month) {
			continue
		}
		posts = append(posts, p)
	}
	writePosts(cmd, posts)
	return nil
}

func (a *App) runPostsAdd(cmd *cobra.Command, content, platform, date, when string, draft bool) error {
	h, err := a.UnlockedHub()
	if err != nil {
		return err
	}
	scheduled, err := scheduleDate(h, date, when)
	if err != nil {
		return err
	}

	d := calendar.PostDraft{Content: content, Platform: platform, ScheduledDate: scheduled}
	var post models.SocialPost
	if draft {
		post, err = h.AddPost(d)
	} else {
		post, err = h.SchedulePost(d)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if post.Status == models.PostDraft {
		fmt.Fprintf(out, "✓ Draft saved for %s (ID: %s)\n", post.Platform, shortID(post.ID))
		return nil
	}
	score := calendar.EngagementScore(post.ScheduledDate, 0, a.scoreRNG())
	fmt.Fprintf(out, "✓ Scheduled for %s on %s (ID: %s)\n", post.ScheduledDate, post.Platform, shortID(post.ID))
	fmt.Fprintf(out, "  Predicted engagement: %d\n", score)
	return nil
}

func (a *App) runPostsUpcoming(cmd *cobra.Command, days int) error {
	h, err := a.UnlockedHub()
	if err != nil {
		return err
	}
	writePosts(cmd, h.UpcomingPosts(time.Duration(days)*24*time.Hour))
	return nil
}

func (a *App) runPostsRemove(cmd *cobra.Command, ref string) error {
	h, err := a.UnlockedHub()
	if err != nil {
		return err
	}
	p, err := findPost(h, ref)
	if err != nil {
		return err
	}
	h.RemovePost(p.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Post removed: %s\n", truncate(p.Content, 40))
	return nil
}

func (a *App) calendarCommand() *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show the month grid of scheduled posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCalendar(cmd, month)
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "month to show (YYYY-MM, default this month)")
	return cmd
}

func (a *App) runCalendar(cmd *cobra.Command, month string) error {
	h, err := a.UnlockedHub()
	if err != nil {
		return err
	}
	ref := h.Now()
	if month != "" {
		if ref, err = time.ParseInLocation(monthLayout, month, time.Local); err != nil {
			return fmt.Errorf("invalid month %q: want YYYY-MM", month)
		}
	}
	grid := h.MonthGrid(ref)
	today := h.Now().Format(models.DateKeyLayout)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%s\n\n", grid.Label())
	fmt.Fprintln(out, "  Sun    Mon    Tue    Wed    Thu    Fri    Sat")
	for _, week := range grid.Weeks() {
		var line strings.Builder
		for _, cell := range week {
			switch {
			case !cell.Schedulable():
				line.WriteString("       ")
			default:
				mark := " "
				if cell.DateKey == today {
					mark = "*"
				}
				dots := ""
				if n := len(cell.Posts); n > 0 {
					dots = fmt.Sprintf("•%d", n)
				}
				line.WriteString(fmt.Sprintf("%s%2d%-4s", mark, cell.Day, dots))
			}
		}
		fmt.Fprintln(out, strings.TrimRight(line.String(), " "))
	}

	var posts []models.SocialPost
	for _, cell := range grid.Cells {
		posts = append(posts, cell.Posts...)
	}
	fmt.Fprintln(out)
	writePosts(cmd, posts)
	return nil
}

func (a *App) campaignCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Plan multi-week campaigns with AI",
	}

	var goal, persona string
	var schedule bool
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Draft a campaign sequence and optionally schedule every step",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCampaignGenerate(cmd, goal, persona, schedule)
		},
	}
	generate.Flags().StringVar(&goal, "goal", "", "campaign goal (required)")
	generate.Flags().StringVar(&persona, "persona", "", "target persona")
	generate.Flags().BoolVar(&schedule, "schedule", false, "schedule each step at 10:00 on its sequence day")
	_ = generate.MarkFlagRequired("goal")

	cmd.AddCommand(generate)
	return cmd
}

func (a *App) runCampaignGenerate(cmd *cobra.Command, goal, persona string, schedule bool) error {
	h, err := a.UnlockedHub()
	if err != nil {
		return err
	}
	steps, err := h.AI().GenerateBulkCampaign(ctxOf(cmd), goal, persona)
	if err != nil {
		return aiError{err}
	}

	out := cmd.OutOrStdout()
	tw := newTable(out, "DAY", "PLATFORM", "TITLE")
	for _, s := range steps {
		row(tw, fmt.Sprintf("%d", s.SequenceDay), s.Platform, s.Title)
	}
	_ = tw.Flush()

	if !schedule {
		fmt.Fprintln(out, "\nRun again with --schedule to put these on the calendar.")
		return nil
	}
	added, skipped := h.ScheduleCampaign(steps)
	fmt.Fprintf(out, "\n✓ Scheduled %d post(s)\n", len(added))
	for _, s := range skipped {
		fmt.Fprintf(out, "  skipped %q (platform %q)\n", s.Title, s.Platform)
	}
	return nil
}

func (a *App) contentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Generate social content with AI",
	}

	var topic, platform, when string
	var pick int
	ideas := &cobra.Command{
		Use:   "ideas",
		Short: "Draft post ideas for a topic",
		Long: `Draft post ideas for a topic. Pass --pick N with --when to schedule one of
the returned ideas straight onto the calendar.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runContentIdeas(cmd, topic, platform, pick, when)
		},
	}
	ideas.Flags().StringVar(&topic, "topic", "", "topic (required)")
	ideas.Flags().StringVar(&platform, "platform", "linkedin", "target platform")
	ideas.Flags().IntVar(&pick, "pick", 0, "schedule idea N (1-based)")
	ideas.Flags().StringVar(&when, "when", "tomorrow", "quick date for --pick")
	_ = ideas.MarkFlagRequired("topic")

	var assetPlatform string
	fromAsset := &cobra.Command{
		Use:   "asset <asset-id>",
		Short: "Draft posts from an uploaded carrier asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runContentAsset(cmd, args[0], assetPlatform)
		},
	}
	fromAsset.Flags().StringVar(&assetPlatform, "platform", "facebook", "target platform")

	var req gateway.CanvaRequest
	canva := &cobra.Command{
		Use:   "canva",
		Short: "Write a design brief for a creative asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runContentCanva(cmd, req)
		},
	}
	canva.Flags().StringVar(&req.Goal, "goal", "", "what the asset should achieve (required)")
	canva.Flags().StringVar(&req.Audience, "audience", "", "who it is for")
	canva.Flags().StringVar(&req.Platform, "platform", "Instagram", "where it will run")
	canva.Flags().StringVar(&req.AssetType, "type", "Carousel", "asset type")
	_ = canva.MarkFlagRequired("goal")

	cmd.AddCommand(ideas, fromAsset, canva)
	return cmd
}

func (a *App) writeIdeas(cmd *cobra.Command, ideas []models.ContentIdea) {
	out := cmd.OutOrStdout()
	for i, idea := range ideas {
		score := idea.EngagementScore
		if score == 0 {
			score = calendar.InitialScore(a.scoreRNG())
		}
		fmt.Fprintf(out, "%d. %s [%s] · predicted engagement %d\n", i+1, idea.Title, idea.Platform, score)
		fmt.Fprintf(out, "   %s\n\n", strings.ReplaceAll(strings.TrimSpace(idea.Draft), "\n", "\n   "))
	}
}

func (a *App) runContentIdeas(cmd *cobra.Command, topic, platform string, pick int, when string) error {
	h, err := a.UnlockedHub()
	if err != nil {
		return err
	}
	ideas, err := h.AI().GenerateSocialContent(ctxOf(cmd), topic, platform)
	if err != nil {
		return aiError{err}
	}
	a.writeIdeas(cmd, ideas)

	if pick == 0 {
		return nil
	}
	if pick < 1 || pick > len(ideas) {
		return fmt.Errorf("--pick must be between 1 and %d", len(ideas))
	}
	date, err := scheduleDate(h, "", when)
	if err != nil {
		return err
	}
	idea := ideas[pick-1]
	ideaPlatform := idea.Platform
	if _, ok := models.ParsePlatform(ideaPlatform); !ok {
		ideaPlatform = platform
	}
	post, err := h.SchedulePost(calendar.PostDraft{Content: idea.Draft, Platform: ideaPlatform, ScheduledDate: date})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Scheduled %q for %s\n", idea.Title, post.ScheduledDate)
	return nil
}

func (a *App) runContentAsset(cmd *cobra.Command, ref, platform string) error {
	h, err := a.UnlockedHub()
	if err != nil {
		return err
	}
	asset, err := resolve(h.Assets.List(), func(x models.CarrierAsset) string { return x.ID }, ref, "asset")
	if err != nil {
		return err
	}
	ideas, err := h.AnalyzeAsset(ctxOf(cmd), asset.ID, platform)
	if err != nil {
		return aiError{err}
	}
	a.writeIdeas(cmd, ideas)
	return nil
}

func (a *App) runContentCanva(cmd *cobra.Command, req gateway.CanvaRequest) error {
	h, err := a.UnlockedHub()
	if err != nil {
		return err
	}
	brief, err := h.AI().GenerateCanvaSpec(ctxOf(cmd), req)
	if err != nil {
		return aiError{err}
	}
	return printMarkdown(cmd.OutOrStdout(), brief)
}

