package enums

import "strings"

type SwipeDirection string

const (
	SwipeLeft  SwipeDirection = "left"
	SwipeRight SwipeDirection = "right"
)

func ParseSwipeDirection(input string) (SwipeDirection, bool) {
	switch SwipeDirection(strings.ToLower(strings.TrimSpace(input))) {
	case SwipeLeft:
		return SwipeLeft, true
	case SwipeRight:
		return SwipeRight, true
	default:
		return "", false
	}
}
