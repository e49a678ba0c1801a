// ABOUTME: Tests for the calendar view-model
// ABOUTME: Grid shape, day bucketing, post ordering, quick dates and campaigns
package calendar

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/harperreed/lifehub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.Local)
}

func TestMonthGridShape(t *testing.T) {
	tests := []struct {
		name      string
		ref       time.Time
		startDay  int
		totalDays int
	}{
		{"february starts sunday", day(2026, time.February, 14, 0, 0), 0, 28},
		{"may starts friday", day(2026, time.May, 31, 0, 0), 5, 31},
		{"leap february", day(2028, time.February, 1, 0, 0), 2, 29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := MonthGrid(tt.ref, nil)
			assert.Equal(t, tt.startDay, g.StartDay)
			assert.Equal(t, tt.totalDays, g.TotalDays)
			require.Len(t, g.Cells, tt.startDay+tt.totalDays)

			for i := 0; i < tt.startDay; i++ {
				assert.False(t, g.Cells[i].Schedulable(), "padding cell %d must not be schedulable", i)
				assert.Empty(t, g.Cells[i].DateKey)
			}
			for i, c := range g.Cells[tt.startDay:] {
				assert.Equal(t, i+1, c.Day)
				assert.True(t, c.Schedulable())
			}
		})
	}
}

func TestMonthGridBucketsPostsByDatePrefix(t *testing.T) {
	posts := []models.SocialPost{
		{ID: "a", ScheduledDate: "2026-05-03T09:30"},
		{ID: "b", ScheduledDate: "2026-05-03T23:59"},
		{ID: "c", ScheduledDate: "2026-05-04T00:00"},
		{ID: "d", ScheduledDate: "2026-06-03T09:30"},
		{ID: "e"},
	}

	g := MonthGrid(day(2026, time.May, 1, 0, 0), posts)

	want := map[string][]string{
		"2026-05-03": {"a", "b"},
		"2026-05-04": {"c"},
	}
	got := map[string][]string{}
	for _, c := range g.Cells {
		for _, p := range c.Posts {
			got[c.DateKey] = append(got[c.DateKey], p.ID)
		}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("bucketed posts mismatch (-want +got):\n%s", diff)
	}
}

func TestGridWeeksPadsLastRow(t *testing.T) {
	g := MonthGrid(day(2026, time.May, 1, 0, 0), nil)
	weeks := g.Weeks()
	require.Len(t, weeks, 6)
	assert.Equal(t, 1, weeks[0][5].Day)
	assert.Equal(t, 31, weeks[5][0].Day)
	assert.False(t, weeks[5][1].Schedulable())
	assert.Equal(t, "May 2026", g.Label())
}

func TestMonthPaging(t *testing.T) {
	assert.Equal(t, day(2027, time.January, 1, 0, 0), NextMonth(day(2026, time.December, 31, 15, 0)))
	assert.Equal(t, day(2026, time.February, 1, 0, 0), PrevMonth(day(2026, time.March, 31, 0, 0)))
}

func TestAddPost(t *testing.T) {
	posts, post, err := AddPost(nil, PostDraft{Content: "  Hello PA  ", Platform: "LinkedIn"})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "Hello PA", post.Content)
	assert.Equal(t, models.PlatformLinkedIn, post.Platform)
	assert.Equal(t, models.PostDraft, post.Status)
	assert.Equal(t, models.Engagement{}, post.Engagement)

	posts, second, err := AddPost(posts, PostDraft{Content: "Next", Platform: "facebook"})
	require.NoError(t, err)
	assert.Equal(t, second.ID, posts[1].ID, "posts are appended")
	assert.NotEqual(t, post.ID, second.ID)
}

func TestAddPostValidation(t *testing.T) {
	tests := []struct {
		name  string
		draft PostDraft
		field string
	}{
		{"blank content", PostDraft{Content: " ", Platform: "facebook"}, "content"},
		{"unknown platform", PostDraft{Content: "x", Platform: "myspace"}, "platform"},
		{"bad status", PostDraft{Content: "x", Platform: "facebook", Status: "queued"}, "status"},
		{"scheduled without date", PostDraft{Content: "x", Platform: "facebook", Status: models.PostScheduled}, "scheduledDate"},
	}

	existing := []models.SocialPost{{ID: "keep"}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := AddPost(existing, tt.draft)
			var verr *models.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, existing, got)
		})
	}
}

func TestAddThenRemoveLeavesEmpty(t *testing.T) {
	posts, post, err := AddPost(nil, PostDraft{Content: "Hello", Platform: "facebook", ScheduledDate: "2024-06-10T09:00"})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, models.PlatformFacebook, post.Platform)
	assert.Equal(t, "2024-06-10T09:00", post.ScheduledDate)

	assert.Empty(t, RemovePost(posts, post.ID))
}

func TestAddPostWithDateStaysDraft(t *testing.T) {
	_, post, err := AddPost(nil, PostDraft{Content: "Hello", Platform: "facebook", ScheduledDate: "2024-06-10T09:00"})
	require.NoError(t, err)
	assert.Equal(t, models.PostDraft, post.Status)
	assert.Equal(t, "2024-06-10T09:00", post.ScheduledDate)

	_, scheduled, err := SchedulePost(nil, PostDraft{Content: "Hello", Platform: "facebook", ScheduledDate: "2024-06-10T09:00"})
	require.NoError(t, err)
	assert.Equal(t, models.PostScheduled, scheduled.Status)
}

func TestSchedulePostNormalizesDate(t *testing.T) {
	_, post, err := SchedulePost(nil, PostDraft{Content: "Review day", Platform: "facebook", ScheduledDate: "2026-05-03T09:30:00"})
	require.NoError(t, err)
	assert.Equal(t, models.PostScheduled, post.Status)
	assert.Equal(t, "2026-05-03T09:30", post.ScheduledDate)

	_, _, err = SchedulePost(nil, PostDraft{Content: "Review day", Platform: "facebook"})
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "scheduledDate", verr.Field)
}

func TestRemovePost(t *testing.T) {
	posts := []models.SocialPost{{ID: "a"}, {ID: "b"}}
	assert.Equal(t, []models.SocialPost{{ID: "b"}}, RemovePost(posts, "a"))
	assert.Equal(t, posts, RemovePost(posts, "zzz"))
}

func TestSortedByDate(t *testing.T) {
	posts := []models.SocialPost{
		{ID: "late", ScheduledDate: "2026-05-10T10:00"},
		{ID: "missing"},
		{ID: "early", ScheduledDate: "2026-05-01T08:00"},
		{ID: "garbage", ScheduledDate: "soon"},
		{ID: "mid", ScheduledDate: "2026-05-05T12:00"},
	}

	got := SortedByDate(posts)
	ids := make([]string, len(got))
	for i, p := range got {
		ids[i] = p.ID
	}
	if diff := cmp.Diff([]string{"missing", "garbage", "early", "mid", "late"}, ids); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "late", posts[0].ID, "input must not be reordered")
}

func TestQuickDate(t *testing.T) {
	tests := []struct {
		name   string
		preset Preset
		now    time.Time
		want   string
	}{
		{"tomorrow", PresetTomorrow, day(2026, time.January, 31, 22, 10), "2026-02-01T09:30"},
		{"prime", PresetPrime, day(2026, time.January, 2, 7, 0), "2026-01-04T19:45"},
		{"weekend from friday", PresetWeekend, day(2026, time.January, 2, 12, 0), "2026-01-03T11:00"},
		{"weekend from sunday", PresetWeekend, day(2026, time.January, 4, 12, 0), "2026-01-10T11:00"},
		// On a Saturday the preset skips to the following Saturday, even before 11:00.
		{"weekend from saturday morning", PresetWeekend, day(2026, time.January, 3, 6, 0), "2026-01-10T11:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := QuickDate(tt.preset, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWeekendAlwaysInFuture(t *testing.T) {
	start := day(2026, time.March, 1, 0, 0)
	for i := 0; i < 14*24; i++ {
		now := start.Add(time.Duration(i) * time.Hour)
		got, err := QuickTime(PresetWeekend, now)
		require.NoError(t, err)
		assert.True(t, got.After(now), "weekend from %s resolved to %s", now, got)
		assert.Equal(t, time.Saturday, got.Weekday())
	}
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset(" Weekend ")
	require.NoError(t, err)
	assert.Equal(t, PresetWeekend, p)

	_, err = ParsePreset("someday")
	assert.Error(t, err)
	_, err = QuickDate("someday", time.Now())
	assert.Error(t, err)
}

type fixedRand int

func (f fixedRand) Intn(n int) int {
	if int(f) >= n {
		return n - 1
	}
	return int(f)
}

func TestEngagementScore(t *testing.T) {
	tests := []struct {
		name string
		date string
		rng  fixedRand
		want int
	}{
		{"off-peak low", "2026-05-03T13:00", 0, 78},
		{"off-peak high", "2026-05-03T13:00", 9, 87},
		{"morning bonus", "2026-05-03T09:30", 0, 90},
		{"evening bonus capped", "2026-05-03T19:45", 9, 99},
		{"unparseable keeps current", "", 5, 81},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EngagementScore(tt.date, 81, tt.rng))
		})
	}
}

func TestInitialScoreRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		s := InitialScore(rng)
		assert.GreaterOrEqual(t, s, 75)
		assert.LessOrEqual(t, s, 94)
	}
}

func TestScheduleCampaign(t *testing.T) {
	now := day(2026, time.January, 1, 16, 20)
	campaign := []models.CampaignPost{
		{Title: "Kickoff", Draft: "Week one", Platform: "LinkedIn", SequenceDay: 1},
		{Title: "Bad", Draft: "Nope", Platform: "Fax", SequenceDay: 7},
		{Title: "Follow", Draft: "Week three", Platform: "Facebook", SequenceDay: 14},
	}

	existing := []models.SocialPost{{ID: "old", ScheduledDate: "2025-12-31T10:00"}}
	out, added, skipped := ScheduleCampaign(existing, campaign, now)

	require.Len(t, out, 3)
	require.Len(t, added, 2)
	require.Len(t, skipped, 1)
	assert.Equal(t, "Bad", skipped[0].Title)

	want := []models.SocialPost{
		{Content: "Week one", Platform: models.PlatformLinkedIn, Status: models.PostScheduled, ScheduledDate: "2026-01-02T10:00"},
		{Content: "Week three", Platform: models.PlatformFacebook, Status: models.PostScheduled, ScheduledDate: "2026-01-15T10:00"},
	}
	if diff := cmp.Diff(want, added, cmpopts.IgnoreFields(models.SocialPost{}, "ID")); diff != "" {
		t.Errorf("campaign posts mismatch (-want +got):\n%s", diff)
	}
}

func TestUpcoming(t *testing.T) {
	now := day(2026, time.May, 1, 12, 0)
	posts := []models.SocialPost{
		{ID: "past", Status: models.PostScheduled, ScheduledDate: "2026-04-30T10:00"},
		{ID: "soon", Status: models.PostScheduled, ScheduledDate: "2026-05-03T10:00"},
		{ID: "draft", Status: models.PostDraft, ScheduledDate: "2026-05-03T10:00"},
		{ID: "later", Status: models.PostScheduled, ScheduledDate: "2026-05-20T10:00"},
	}
	got := Upcoming(posts, now, 7*24*time.Hour)
	require.Len(t, got, 1)
	assert.Equal(t, "soon", got[0].ID)
}
