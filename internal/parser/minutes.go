package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DayFractionLimit 数值 <= 该值时按 Excel 日小数（一天的比例）解释，否则视为分钟
const DayFractionLimit = 2.5

var (
	reHourMinute   = regexp.MustCompile(`^(\d{1,2})\s*h\s*(\d{1,2})\s*(?:minutos|mins|min|ms|m)?$`)
	reHourDecimal  = regexp.MustCompile(`^(\d{1,2})([.,]\d+)?\s*h$`)
	reMinutesOnly  = regexp.MustCompile(`^(\d{1,4})\s*(?:minutos|mins|min|ms|m|s)$`)
	reClock        = regexp.MustCompile(`^(\d{1,2}):([0-5]\d)(?::([0-5]\d))?\s*(am|pm)?$`)
	reDecimalHours = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
)

// dateLayouts 通用日期时间兜底格式；只取时分秒，日期部分不参与计算
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"Jan 2, 2006 15:04:05",
	"Jan 2, 2006 3:04:05 PM",
	"Jan 2 2006 15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	time.ANSIC,
}

// ParseMinutes 将任意单元格值解析为分钟数，无法解析时返回 false
//
// 解析顺序：时间值 -> 数值（日小数或分钟）-> 文本（3h50 / 3,5h / 45min / 15:30 / 3:15pm
// / 通用日期时间 / 小数小时）。
func ParseMinutes(v any) (int, bool) {
	if v == nil {
		return 0, false
	}

	if t, ok := v.(time.Time); ok {
		if t.IsZero() {
			return 0, false
		}
		return wallClockMinutes(t), true
	}

	if f, ok := asNumber(v); ok {
		if !finite(f) {
			return 0, false
		}
		var m int
		if f <= DayFractionLimit {
			m = roundHalfUp(f * 24 * 60)
		} else {
			m = roundHalfUp(f)
		}
		return nonNegative(m)
	}

	raw, ok := v.(string)
	if !ok {
		raw = CellString(v)
	}
	return parseMinutesText(raw)
}

func parseMinutesText(raw string) (int, bool) {
	orig := strings.TrimSpace(strings.ReplaceAll(raw, "\u00a0", " "))
	s := strings.ToLower(orig)
	if s == "" {
		return 0, false
	}

	if m := reHourMinute.FindStringSubmatch(s); m != nil {
		return atoi(m[1])*60 + atoi(m[2]), true
	}

	if m := reHourDecimal.FindStringSubmatch(s); m != nil {
		h, err := strconv.ParseFloat(strings.Replace(m[1]+m[2], ",", ".", 1), 64)
		if err == nil {
			return roundHalfUp(h * 60), true
		}
	}

	if m := reMinutesOnly.FindStringSubmatch(s); m != nil {
		return atoi(m[1]), true
	}

	if m := reClock.FindStringSubmatch(s); m != nil {
		h := atoi(m[1])
		mm := atoi(m[2])
		ss := 0
		if m[3] != "" {
			ss = atoi(m[3])
		}
		switch m[4] {
		case "pm":
			if h != 12 {
				h += 12
			}
		case "am":
			if h == 12 {
				h = 0
			}
		}
		return h*60 + mm + roundHalfUp(float64(ss)/60), true
	}

	if t, ok := parseDateTime(orig); ok {
		return wallClockMinutes(t), true
	}

	dec := strings.Replace(s, ",", ".", 1)
	if reDecimalHours.MatchString(dec) {
		f, err := strconv.ParseFloat(dec, 64)
		if err == nil && finite(f) {
			return roundHalfUp(f * 60), true
		}
	}

	return 0, false
}

func parseDateTime(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func wallClockMinutes(t time.Time) int {
	t = t.In(time.Local)
	return t.Hour()*60 + t.Minute() + roundHalfUp(float64(t.Second())/60)
}

func nonNegative(m int) (int, bool) {
	if m < 0 {
		return 0, false
	}
	return m, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
