// ABOUTME: Month grid construction for the campaign calendar
// ABOUTME: Buckets scheduled posts into local calendar days by date prefix
package calendar

import (
	"strings"
	"time"

	"github.com/harperreed/lifehub/models"
)

// Cell is one square of the month grid. Leading padding cells have Day 0 and
// no DateKey.
type Cell struct {
	Day     int
	DateKey string
	Posts   []models.SocialPost
}

// Schedulable reports whether the cell represents a real day that can take a
// quick-schedule post.
func (c Cell) Schedulable() bool {
	return c.Day > 0 && c.DateKey != ""
}

// Grid is a rendered month.
type Grid struct {
	Year      int
	Month     time.Month
	StartDay  int
	TotalDays int
	Cells     []Cell
}

// Label is the "January 2026" style heading.
func (g Grid) Label() string {
	return time.Date(g.Year, g.Month, 1, 0, 0, 0, 0, time.Local).Format("January 2006")
}

// Weeks splits the cells into rows of seven, padding the last row.
func (g Grid) Weeks() [][]Cell {
	var weeks [][]Cell
	for i := 0; i < len(g.Cells); i += 7 {
		end := i + 7
		row := make([]Cell, 7)
		if end > len(g.Cells) {
			end = len(g.Cells)
		}
		copy(row, g.Cells[i:end])
		weeks = append(weeks, row)
	}
	return weeks
}

// DaysIn returns the number of days in month of year.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthGrid builds the grid for the month containing ref. Each day collects
// the posts whose scheduledDate starts with that day's date key.
func MonthGrid(ref time.Time, posts []models.SocialPost) Grid {
	year, month := ref.Year(), ref.Month()
	first := time.Date(year, month, 1, 0, 0, 0, 0, ref.Location())
	startDay := int(first.Weekday())
	total := DaysIn(year, month)

	cells := make([]Cell, 0, startDay+total)
	for i := 0; i < startDay; i++ {
		cells = append(cells, Cell{})
	}
	for d := 1; d <= total; d++ {
		key := time.Date(year, month, d, 0, 0, 0, 0, ref.Location()).Format(models.DateKeyLayout)
		cells = append(cells, Cell{Day: d, DateKey: key, Posts: PostsOn(posts, key)})
	}

	return Grid{Year: year, Month: month, StartDay: startDay, TotalDays: total, Cells: cells}
}

// PostsOn returns the posts scheduled on dateKey ("YYYY-MM-DD").
func PostsOn(posts []models.SocialPost, dateKey string) []models.SocialPost {
	var out []models.SocialPost
	if dateKey == "" {
		return out
	}
	for _, p := range posts {
		if p.ScheduledDate != "" && strings.HasPrefix(p.ScheduledDate, dateKey) {
			out = append(out, p)
		}
	}
	return out
}

// NextMonth returns day 1 of the month after ref.
func NextMonth(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month()+1, 1, 0, 0, 0, 0, ref.Location())
}

// PrevMonth returns day 1 of the month before ref.
func PrevMonth(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month()-1, 1, 0, 0, 0, 0, ref.Location())
}
