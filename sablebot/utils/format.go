package utils

import (
	"fmt"
	"strings"

	"github.com/marchanddesable/sablebot/sablebot/catalog"
)

// FormatSable renders a sable amount with the hourglass suffix used across
// every embed.
func FormatSable(amount int64) string {
	return fmt.Sprintf("%d ⏳", amount)
}

// FormatClasse renders a class with its emoji, capitalized.
func FormatClasse(classe catalog.Class) string {
	info, ok := catalog.Classes[classe]
	if !ok {
		return string(classe)
	}
	return fmt.Sprintf("%s %s", info.Emoji, Capitalize(string(classe)))
}

// FormatStreak renders the daily streak as flame emojis, overflow counted.
func FormatStreak(streak int) string {
	if streak <= catalog.DailyStreakCap {
		return strings.Repeat("🔥", streak)
	}
	return strings.Repeat("🔥", catalog.DailyStreakCap) + fmt.Sprintf(" +%d", streak-catalog.DailyStreakCap)
}

// Capitalize upper-cases the first byte; class names are plain ASCII.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
