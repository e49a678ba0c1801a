// ABOUTME: Quick-date presets and engagement scoring for scheduling
// ABOUTME: tomorrow, weekend and prime map "now" to a suggested post time
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/lifehub/models"
)

type Preset string

const (
	PresetTomorrow Preset = "tomorrow"
	PresetWeekend  Preset = "weekend"
	PresetPrime    Preset = "prime"
)

func Presets() []Preset {
	return []Preset{PresetTomorrow, PresetWeekend, PresetPrime}
}

func ParsePreset(input string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(input)))
	for _, v := range Presets() {
		if v == p {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown quick date %q (want tomorrow, weekend or prime)", input)
}

// QuickTime resolves preset relative to now in now's location.
//
// weekend is the next Saturday at 11:00. On a Saturday it jumps a full week
// ahead rather than returning today.
func QuickTime(preset Preset, now time.Time) (time.Time, error) {
	at := func(days, hour, minute int) time.Time {
		d := now.AddDate(0, 0, days)
		return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, now.Location())
	}

	switch preset {
	case PresetTomorrow:
		return at(1, 9, 30), nil
	case PresetWeekend:
		diff := (6 - int(now.Weekday()) + 7) % 7
		if diff == 0 {
			diff = 7
		}
		return at(diff, 11, 0), nil
	case PresetPrime:
		return at(2, 19, 45), nil
	default:
		return time.Time{}, fmt.Errorf("unknown quick date %q", preset)
	}
}

// QuickDate is QuickTime formatted as a scheduledDate.
func QuickDate(preset Preset, now time.Time) (string, error) {
	t, err := QuickTime(preset, now)
	if err != nil {
		return "", err
	}
	return t.Format(models.ScheduleLayout), nil
}

// Intner is satisfied by *math/rand.Rand.
type Intner interface {
	Intn(n int) int
}

// MaxEngagementScore caps the predicted score.
const MaxEngagementScore = 99

// InitialScore is the score shown on a freshly generated idea, 75-94.
func InitialScore(rng Intner) int {
	return rng.Intn(20) + 75
}

// EngagementScore predicts engagement for a scheduledDate: 78-87, plus 12 when
// the hour falls in the 8-10 morning or 18-20 evening windows. An unparseable
// date keeps current.
func EngagementScore(scheduledDate string, current int, rng Intner) int {
	t, ok := models.ParseSchedule(scheduledDate)
	if !ok {
		return current
	}
	score := rng.Intn(10) + 78
	if h := t.Hour(); (h >= 8 && h <= 10) || (h >= 18 && h <= 20) {
		score += 12
	}
	if score > MaxEngagementScore {
		score = MaxEngagementScore
	}
	return score
}
