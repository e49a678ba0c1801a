// ABOUTME: Social post collection operations for the scheduler
// ABOUTME: Add, quick-schedule, remove, date ordering and campaign commits
package calendar

import (
	"sort"
	"strings"
	"time"

	"github.com/harperreed/lifehub/models"
	"github.com/oklog/ulid/v2"
)

// PostDraft is the input for a new post. An empty Status means draft.
type PostDraft struct {
	Content       string
	Platform      string
	Status        models.PostStatus
	ScheduledDate string
}

func newPost(draft PostDraft) (models.SocialPost, error) {
	content := strings.TrimSpace(draft.Content)
	if content == "" {
		return models.SocialPost{}, models.Required("content")
	}
	platform, ok := models.ParsePlatform(draft.Platform)
	if !ok {
		return models.SocialPost{}, &models.ValidationError{Field: "platform", Message: "unknown platform " + draft.Platform}
	}
	status := draft.Status
	if status == "" {
		status = models.PostDraft
	}
	if !status.Valid() {
		return models.SocialPost{}, &models.ValidationError{Field: "status", Message: "unknown post status " + string(status)}
	}
	return models.SocialPost{
		ID:            ulid.Make().String(),
		Content:       content,
		Platform:      platform,
		Status:        status,
		ScheduledDate: strings.TrimSpace(draft.ScheduledDate),
	}, nil
}

// AddPost appends a new post with a fresh id and zero engagement. A draft
// without a status is stored as a draft even when it carries a scheduledDate;
// use SchedulePost to commit it to the calendar.
func AddPost(posts []models.SocialPost, draft PostDraft) ([]models.SocialPost, models.SocialPost, error) {
	post, err := newPost(draft)
	if err != nil {
		return posts, models.SocialPost{}, err
	}
	if post.Status == models.PostScheduled {
		if _, ok := models.ParseSchedule(post.ScheduledDate); !ok {
			return posts, models.SocialPost{}, &models.ValidationError{Field: "scheduledDate", Message: "a scheduled post needs a date and time"}
		}
	}
	return appendPost(posts, post), post, nil
}

// SchedulePost commits a quick-schedule post. The date is normalized to the
// minute-precision layout.
func SchedulePost(posts []models.SocialPost, draft PostDraft) ([]models.SocialPost, models.SocialPost, error) {
	when, ok := models.ParseSchedule(draft.ScheduledDate)
	if !ok {
		if strings.TrimSpace(draft.Content) == "" {
			return posts, models.SocialPost{}, models.Required("content")
		}
		return posts, models.SocialPost{}, &models.ValidationError{Field: "scheduledDate", Message: "pick a date and time before scheduling"}
	}
	draft.Status = models.PostScheduled
	draft.ScheduledDate = when.Format(models.ScheduleLayout)
	return AddPost(posts, draft)
}

func appendPost(posts []models.SocialPost, post models.SocialPost) []models.SocialPost {
	out := make([]models.SocialPost, 0, len(posts)+1)
	out = append(out, posts...)
	return append(out, post)
}

// RemovePost drops the post with id. Unknown ids are a no-op.
func RemovePost(posts []models.SocialPost, id string) []models.SocialPost {
	out := make([]models.SocialPost, 0, len(posts))
	for _, p := range posts {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

// SortedByDate orders posts by scheduledDate ascending. Missing or unparseable
// dates sort as the epoch; ties keep collection order.
func SortedByDate(posts []models.SocialPost) []models.SocialPost {
	out := make([]models.SocialPost, len(posts))
	copy(out, posts)
	sort.SliceStable(out, func(i, j int) bool {
		return sortKey(out[i]).Before(sortKey(out[j]))
	})
	return out
}

func sortKey(p models.SocialPost) time.Time {
	if t, ok := p.ScheduledTime(); ok {
		return t
	}
	return time.Unix(0, 0)
}

// Upcoming returns scheduled posts whose time falls in [now, now+window).
func Upcoming(posts []models.SocialPost, now time.Time, window time.Duration) []models.SocialPost {
	var out []models.SocialPost
	for _, p := range SortedByDate(posts) {
		if p.Status != models.PostScheduled {
			continue
		}
		t, ok := p.ScheduledTime()
		if ok && !t.Before(now) && t.Before(now.Add(window)) {
			out = append(out, p)
		}
	}
	return out
}

// ScheduleCampaign appends one scheduled post per campaign step at
// now+sequenceDay days, 10:00 local. Steps with an unknown platform or empty
// draft are skipped and returned in skipped.
func ScheduleCampaign(posts []models.SocialPost, campaign []models.CampaignPost, now time.Time) (out []models.SocialPost, added []models.SocialPost, skipped []models.CampaignPost) {
	out = posts
	for _, step := range campaign {
		day := now.AddDate(0, 0, step.SequenceDay)
		when := time.Date(day.Year(), day.Month(), day.Day(), 10, 0, 0, 0, now.Location())
		var post models.SocialPost
		var err error
		out, post, err = AddPost(out, PostDraft{
			Content:       step.Draft,
			Platform:      step.Platform,
			Status:        models.PostScheduled,
			ScheduledDate: when.Format(models.ScheduleLayout),
		})
		if err != nil {
			skipped = append(skipped, step)
			continue
		}
		added = append(added, post)
	}
	return out, added, skipped
}
