// ABOUTME: Data models for social content and scheduled posts
// ABOUTME: Defines SocialPost, Engagement, ContentIdea and CampaignPost
package models

import (
	"strings"
	"time"
)

// ScheduleLayout is the minute-precision local datetime used by scheduledDate.
const ScheduleLayout = "2006-01-02T15:04"

// DateKeyLayout is the calendar-day prefix of a scheduledDate.
const DateKeyLayout = "2006-01-02"

type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformInstagram Platform = "instagram"
	PlatformTwitter   Platform = "twitter"
)

func Platforms() []Platform {
	return []Platform{PlatformFacebook, PlatformLinkedIn, PlatformInstagram, PlatformTwitter}
}

// ParsePlatform normalizes display names such as "LinkedIn" to the stored form.
func ParsePlatform(input string) (Platform, bool) {
	p := Platform(strings.ToLower(strings.TrimSpace(input)))
	for _, v := range Platforms() {
		if v == p {
			return p, true
		}
	}
	return "", false
}

type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostScheduled PostStatus = "scheduled"
	PostPublished PostStatus = "published"
)

func (s PostStatus) Valid() bool {
	return s == PostDraft || s == PostScheduled || s == PostPublished
}

// Engagement holds non-negative interaction counters.
type Engagement struct {
	Likes    int `json:"likes"`
	Shares   int `json:"shares"`
	Comments int `json:"comments"`
	Clicks   int `json:"clicks"`
}

// SocialPost is a draft, scheduled, or published content unit.
type SocialPost struct {
	ID            string     `json:"id"`
	Content       string     `json:"content"`
	Platform      Platform   `json:"platform"`
	Status        PostStatus `json:"status"`
	ScheduledDate string     `json:"scheduledDate,omitempty"`
	PublishedDate string     `json:"publishedDate,omitempty"`
	Engagement    Engagement `json:"engagement"`
}

// ScheduledTime parses ScheduledDate in local time. Full RFC 3339 values are
// accepted as well as the minute-precision form.
func (p SocialPost) ScheduledTime() (time.Time, bool) {
	return ParseSchedule(p.ScheduledDate)
}

// ParseSchedule parses a scheduledDate string.
func ParseSchedule(value string) (time.Time, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{ScheduleLayout, "2006-01-02T15:04:05", time.RFC3339, DateKeyLayout} {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ContentIdea is a generated post draft awaiting review.
type ContentIdea struct {
	Title           string `json:"title"`
	Draft           string `json:"draft"`
	Platform        string `json:"platform"`
	ScheduledDate   string `json:"scheduledDate,omitempty"`
	IsScheduled     bool   `json:"isScheduled,omitempty"`
	EngagementScore int    `json:"engagementScore,omitempty"`
}

// CampaignPost is one step of a generated multi-week campaign.
type CampaignPost struct {
	Title       string `json:"title"`
	Draft       string `json:"draft"`
	Platform    string `json:"platform"`
	SequenceDay int    `json:"sequenceDay"`
}
