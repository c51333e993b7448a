package algo

import "github.com/huangsam/athome/schema"

// categories is ordered by descending lower bound; Classify takes the first match.
var categories = []schema.Category{
	{
		Key:         schema.FullDayCategory,
		Label:       "Available all day",
		Description: "Home most of the day on most days",
		MinScore:    90,
		Hint:        schema.DisplayHint{Emoji: "🏠", Badge: "green"},
	},
	{
		Key:         schema.AfterWorkCategory,
		Label:       "Available after work",
		Description: "Reachable on weekday evenings and some weekend time",
		MinScore:    70,
		Hint:        schema.DisplayHint{Emoji: "🌆", Badge: "blue"},
	},
	{
		Key:         schema.EveningOnlyCategory,
		Label:       "Evenings only",
		Description: "Reachable in short evening windows",
		MinScore:    50,
		Hint:        schema.DisplayHint{Emoji: "🌙", Badge: "yellow"},
	},
	{
		Key:         schema.WeekendsOnlyCategory,
		Label:       "Weekends only",
		Description: "Reachable mainly on Saturday or Sunday",
		MinScore:    30,
		Hint:        schema.DisplayHint{Emoji: "📅", Badge: "orange"},
	},
	{
		Key:         schema.VeryLimitedCategory,
		Label:       "Hard to reach",
		Description: "Little known availability, call before planning a visit",
		MinScore:    0,
		Hint:        schema.DisplayHint{Emoji: "⚠️", Badge: "red"},
	},
}

// Classify maps a score to its category. Lower bounds are inclusive.
func Classify(score int) schema.Category {
	for _, c := range categories {
		if score >= c.MinScore {
			return c
		}
	}
	return categories[len(categories)-1]
}

// Categories returns every category, best first.
func Categories() []schema.Category {
	out := make([]schema.Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryByKey looks up a category by its key.
func CategoryByKey(key schema.CategoryKey) (schema.Category, bool) {
	for _, c := range categories {
		if c.Key == key {
			return c, true
		}
	}
	return schema.Category{}, false
}
