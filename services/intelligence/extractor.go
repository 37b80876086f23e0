// File: services/intelligence/extractor.go
package ai

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"campuspilot/models"
	"campuspilot/utils"
)

// RuleBasedExtractor is the deterministic fallback parser. It covers the
// common phrasings ("book LT1 tomorrow from 9:00 to 11:00 for CS2030") without
// any LLM call and is also what runs when no Gemini key is configured.
type RuleBasedExtractor struct {
	now func() time.Time
}

func NewRuleBasedExtractor() *RuleBasedExtractor {
	return &RuleBasedExtractor{now: time.Now}
}

var (
	roomRe    = regexp.MustCompile(`(?i)\b(lt|sr|lab|hall)\s*-?\s*(\d{1,3})\b`)
	dateRe    = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	clockRe   = regexp.MustCompile(`(?i)\b([01]?\d|2[0-3]):([0-5]\d)\s*(am|pm)?\b`)
	hourRe    = regexp.MustCompile(`(?i)\b(1[0-2]|0?[1-9])\s*(am|pm)\b`)
	moduleRe  = regexp.MustCompile(`\b([A-Z]{2,4}\d{3,4})\b`)
	groupRe   = regexp.MustCompile(`(?i)\b(?:for|about|around)\s+(\d{1,4})\s+(?:people|students|attendees|pax)\b`)
	bookingRe = regexp.MustCompile(`(?i)\b[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\b`)
)

func (e *RuleBasedExtractor) Extract(_ context.Context, text string) (models.ExtractedRequest, error) {
	out := models.ExtractedRequest{Intent: classifyIntent(text)}

	if m := roomRe.FindStringSubmatch(text); m != nil {
		out.Request.RoomName = strings.ToUpper(m[1]) + m[2]
	}
	out.Request.Date = e.parseDate(text)

	times := collectTimes(text)
	if len(times) > 0 {
		start := times[0]
		out.Request.Start = &start
	}
	if len(times) > 1 {
		end := times[1]
		out.Request.End = &end
	}

	if m := moduleRe.FindStringSubmatch(text); m != nil {
		out.Request.ModuleCode = m[1]
	}
	if m := groupRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			out.Request.GroupSize = n
		}
	}
	if m := bookingRe.FindString(text); m != "" {
		out.BookingID = strings.ToLower(m)
	}

	if out.Intent == models.IntentChat && out.Request == (models.BookingRequest{}) && out.BookingID == "" {
		return models.ExtractedRequest{}, ErrExtractionFailure
	}
	return out, nil
}

func classifyIntent(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "cancel") || strings.Contains(lower, "delete"):
		return models.IntentCancel
	case strings.Contains(lower, "book") || strings.Contains(lower, "reserve") || strings.Contains(lower, "schedule"):
		return models.IntentBook
	case strings.Contains(lower, "free") || strings.Contains(lower, "available") || strings.Contains(lower, "check"):
		return models.IntentCheck
	default:
		return models.IntentChat
	}
}

func (e *RuleBasedExtractor) parseDate(text string) string {
	if m := dateRe.FindString(text); m != "" {
		if normalized, err := utils.ParseDate(m); err == nil {
			return normalized
		}
	}
	lower := strings.ToLower(text)
	if strings.Contains(lower, "today") {
		return e.now().Format(utils.DateLayout)
	}
	if strings.Contains(lower, "tomorrow") {
		return e.now().AddDate(0, 0, 1).Format(utils.DateLayout)
	}
	return ""
}

type timeMatch struct {
	pos     int
	minutes int
}

// collectTimes gathers clock ("9:30", "14:00", "9:30pm") and bare-hour
// ("9am") tokens in the order they appear; the first is the start, the second
// the end.
func collectTimes(text string) []int {
	var matches []timeMatch

	for _, idx := range clockRe.FindAllStringSubmatchIndex(text, -1) {
		h, _ := strconv.Atoi(text[idx[2]:idx[3]])
		m, _ := strconv.Atoi(text[idx[4]:idx[5]])
		if idx[6] >= 0 {
			h = meridiemHour(h, strings.ToLower(text[idx[6]:idx[7]]))
		}
		matches = append(matches, timeMatch{pos: idx[0], minutes: h*60 + m})
	}
	for _, idx := range hourRe.FindAllStringSubmatchIndex(text, -1) {
		if insideAny(idx[0], clockRe.FindAllStringIndex(text, -1)) {
			continue
		}
		h, _ := strconv.Atoi(text[idx[2]:idx[3]])
		h = meridiemHour(h, strings.ToLower(text[idx[4]:idx[5]]))
		matches = append(matches, timeMatch{pos: idx[0], minutes: h * 60})
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].pos < matches[j].pos })
	times := make([]int, 0, len(matches))
	for _, m := range matches {
		times = append(times, m.minutes)
	}
	return times
}

func meridiemHour(h int, meridiem string) int {
	switch meridiem {
	case "pm":
		if h != 12 {
			h += 12
		}
	case "am":
		if h == 12 {
			h = 0
		}
	}
	return h
}

func insideAny(pos int, ranges [][]int) bool {
	for _, r := range ranges {
		if pos >= r[0] && pos < r[1] {
			return true
		}
	}
	return false
}
