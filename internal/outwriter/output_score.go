package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/athome/internal/contract"
	"github.com/huangsam/athome/schema"
	"github.com/olekukonko/tablewriter/tw"
)

// termMax is the ceiling of each scoring term, shown next to its points.
var termMax = map[schema.BreakdownKey]float64{
	schema.BreakdownWidth:       schema.WidthMax,
	schema.BreakdownHistory:     schema.HistoryMax,
	schema.BreakdownFlexibility: schema.FlexibleBonus,
	schema.BreakdownWeekday:     schema.WeekdayBonus,
	schema.BreakdownLongWindow:  schema.LongWindowBonus,
}

// PrintScoreReport outputs a score report, dispatching based on the output format configured.
func PrintScoreReport(report schema.ScoreReport, cfg *contract.Config) error {
	return dispatch(cfg,
		func(w io.Writer) error { return writeScoreTable(w, report, cfg) },
		func(w io.Writer) error { return writeScoreCSV(w, report) },
		func(w io.Writer) error { return writeJSON(w, report) },
	)
}

func writeScoreTable(w io.Writer, report schema.ScoreReport, cfg *contract.Config) error {
	title := "Availability score"
	if report.ClientID != "" {
		title += " for " + report.ClientID
	}
	if err := heading(w, cfg, "🏠", title); err != nil {
		return err
	}

	row := []string{
		strconv.Itoa(report.Score),
		contract.GetLabel(report.Category, cfg.UseColors, cfg.UseEmojis),
		strconv.Itoa(report.Windows),
		strconv.Itoa(report.Stats.TotalVisits),
		fmtPercent(report.Stats.SuccessRate),
		fmtLastVisit(report.Stats),
	}
	headers := []string{"Score", "Category", "Windows", "Visits", "Success", "Last Visit"}
	if err := renderTable(w, headers, [][]string{row}, tw.AlignRight); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, report.Category.Description); err != nil {
		return err
	}

	if report.Breakdown == nil {
		return nil
	}
	return writeBreakdownTable(w, *report.Breakdown)
}

func writeBreakdownTable(w io.Writer, b schema.ScoreBreakdown) error {
	var data [][]string
	for _, key := range schema.AllBreakdownKeys {
		data = append(data, []string{
			string(key),
			fmt.Sprintf("%.2f", b.Terms[key]),
			fmt.Sprintf("%g", termMax[key]),
		})
	}
	if err := renderTable(w, []string{"Term", "Points", "Max"}, data, tw.AlignRight); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Weekly coverage: %d minutes. Raw total: %.2f, final score: %d\n", b.WeeklyMinutes, b.Raw, b.Score)
	return err
}

func writeScoreCSV(w io.Writer, report schema.ScoreReport) error {
	header := []string{
		"client_id", "score", "category", "windows",
		"total_visits", "successful_visits", "success_rate", "last_visit_date",
	}
	if report.Breakdown != nil {
		for _, key := range schema.AllBreakdownKeys {
			header = append(header, "term_"+string(key))
		}
		header = append(header, "weekly_minutes", "raw")
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		rec := []string{
			report.ClientID,
			strconv.Itoa(report.Score),
			string(report.Category.Key),
			strconv.Itoa(report.Windows),
			strconv.Itoa(report.Stats.TotalVisits),
			strconv.Itoa(report.Stats.SuccessfulVisits),
			strconv.Itoa(report.Stats.SuccessRate),
			lastVisitCSV(report.Stats),
		}
		if b := report.Breakdown; b != nil {
			for _, key := range schema.AllBreakdownKeys {
				rec = append(rec, fmt.Sprintf("%.2f", b.Terms[key]))
			}
			rec = append(rec, strconv.Itoa(b.WeeklyMinutes), fmt.Sprintf("%.2f", b.Raw))
		}
		return cw.Write(rec)
	})
}

func lastVisitCSV(s schema.Stats) string {
	if s.LastVisitDate == nil {
		return ""
	}
	return s.LastVisitDate.String()
}
