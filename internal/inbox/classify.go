package inbox

import (
	"strings"

	"io.ruvo/notification/internal/domain"
)

// ColorToken is a hex color the client paints urgency with.
type ColorToken string

// IconToken names an icon in the client's icon set.
type IconToken string

const (
	ColorHigh    ColorToken = "#FF3B30"
	ColorMedium  ColorToken = "#FF9500"
	ColorLow     ColorToken = "#34C759"
	ColorNeutral ColorToken = "#8E8E93"

	IconHigh    IconToken = "alert-circle"
	IconMedium  IconToken = "warning"
	IconLow     IconToken = "information-circle"
	IconDefault IconToken = "notifications"

	DefaultEmoji = "📰"
)

// UrgencyColor maps an urgency to its color. Unknown values get ColorNeutral.
func UrgencyColor(u domain.Urgency) ColorToken {
	switch u {
	case domain.UrgencyHigh:
		return ColorHigh
	case domain.UrgencyMedium:
		return ColorMedium
	case domain.UrgencyLow:
		return ColorLow
	default:
		return ColorNeutral
	}
}

// UrgencyIcon maps an urgency to its icon. Unknown values get IconDefault.
func UrgencyIcon(u domain.Urgency) IconToken {
	switch u {
	case domain.UrgencyHigh:
		return IconHigh
	case domain.UrgencyMedium:
		return IconMedium
	case domain.UrgencyLow:
		return IconLow
	default:
		return IconDefault
	}
}

type emojiRule struct {
	keywords []string
	emoji    string
}

// Order matters: the first group with a matching keyword wins.
var emojiRules = []emojiRule{
	{[]string{"tech", "ai", "digital"}, "💻"},
	{[]string{"finance", "market", "economy"}, "💰"},
	{[]string{"health", "medical", "wellness"}, "🏥"},
	{[]string{"sports", "game"}, "⚽"},
	{[]string{"politics", "government"}, "🏛️"},
	{[]string{"entertainment", "movie", "music"}, "🎬"},
	{[]string{"science", "research"}, "🔬"},
	{[]string{"environment", "climate"}, "🌍"},
	{[]string{"food", "cooking"}, "🍽️"},
	{[]string{"travel", "tourism"}, "✈️"},
	{[]string{"education", "learn"}, "📚"},
	{[]string{"taste", "flavor"}, "😋"},
	{[]string{"bonus", "deal"}, "🎁"},
	{[]string{"delivery"}, "🚚"},
	{[]string{"alert", "urgent"}, "🚨"},
}

// CategoryEmoji picks an emoji for a free-text category by case-insensitive
// substring match. Unmatched categories get DefaultEmoji.
func CategoryEmoji(category string) string {
	c := strings.ToLower(category)
	if c == "" {
		return DefaultEmoji
	}
	for _, rule := range emojiRules {
		for _, kw := range rule.keywords {
			if strings.Contains(c, kw) {
				return rule.emoji
			}
		}
	}
	return DefaultEmoji
}
