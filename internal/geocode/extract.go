package geocode

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// leadIn matches one leading action phrase such as "Visit " or "Lunch at ".
// "check.?in" accepts "check in", "check-in" and "checkin".
var leadIn = regexp.MustCompile(`(?i)^(?:visit|explore|head to|go to|check.?in|arrive at|travel to|drive to|walk to|start at|begin at|stop at|lunch at|dinner at|breakfast at)\s+`)

const (
	maxPlaceWords = 6
	minPlaceRunes = 3
)

// ExtractPlaceName pulls a candidate place name out of a free-text period
// description. It strips one lead-in phrase, keeps the text before the first
// '.', ',', ';', en dash or em dash, and truncates to six words.
// It reports false when nothing longer than two characters remains.
//
// This is a text heuristic: "Gateway of India for sunrise" is a perfectly
// normal result. Callers must tolerate names that do not geocode.
func ExtractPlaceName(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	cleaned := leadIn.ReplaceAllString(text, "")
	if i := strings.IndexAny(cleaned, ".,;–—"); i >= 0 {
		cleaned = cleaned[:i]
	}

	words := strings.Fields(cleaned)
	if len(words) > maxPlaceWords {
		words = words[:maxPlaceWords]
	}
	place := strings.Join(words, " ")

	if utf8.RuneCountInString(place) < minPlaceRunes {
		return "", false
	}
	return place, true
}
