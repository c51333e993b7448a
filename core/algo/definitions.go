package algo

import (
	"fmt"

	"github.com/huangsam/athome/schema"
)

// Definitions describes the scoring terms and category thresholds for display.
func Definitions() schema.MetricsRenderModel {
	return schema.MetricsRenderModel{
		Title:       "Availability score",
		Description: "Sum of five terms, rounded and capped at 100. A profile without windows scores 0.",
		Terms: []schema.MetricsTerm{
			{
				Key:     schema.BreakdownWidth,
				Max:     schema.WidthMax,
				Formula: fmt.Sprintf("min(%g, weekly_minutes / %d * %g)", schema.WidthMax, schema.FullWeekMinutes, schema.WidthMax),
			},
			{
				Key:     schema.BreakdownHistory,
				Max:     schema.HistoryMax,
				Formula: fmt.Sprintf("success_rate / 100 * %g, or %g without history", schema.HistoryMax, schema.HistoryNoData),
			},
			{
				Key:     schema.BreakdownFlexibility,
				Max:     schema.FlexibleBonus,
				Formula: fmt.Sprintf("%g if flexible, %g if no advance notice, else 0", schema.FlexibleBonus, schema.NoNoticeBonus),
			},
			{
				Key:     schema.BreakdownWeekday,
				Max:     schema.WeekdayBonus,
				Formula: fmt.Sprintf("%g if any window covers Monday to Friday", schema.WeekdayBonus),
			},
			{
				Key:     schema.BreakdownLongWindow,
				Max:     schema.LongWindowBonus,
				Formula: fmt.Sprintf("%g if any window spans %d minutes or more", schema.LongWindowBonus, schema.LongWindowMinutes),
			},
		},
		Categories: Categories(),
	}
}
