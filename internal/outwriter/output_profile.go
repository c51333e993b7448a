package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/athome/internal/contract"
	"github.com/huangsam/athome/schema"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintProfile outputs a profile. JSON output can be fed back into any command.
func PrintProfile(cp schema.ClientProfile, cfg *contract.Config) error {
	return dispatch(cfg,
		func(w io.Writer) error { return writeProfileText(w, cp, cfg) },
		func(w io.Writer) error { return writeWindowsCSV(w, cp) },
		func(w io.Writer) error { return writeJSON(w, cp.Profile) },
	)
}

func dayList(days []schema.Weekday) string {
	labels := make([]string, len(days))
	for i, d := range days {
		labels[i] = d.Label()
	}
	return strings.Join(labels, ", ")
}

func writeProfileText(w io.Writer, cp schema.ClientProfile, cfg *contract.Config) error {
	title := "Availability profile"
	if cp.ClientID != "" {
		title += " for " + cp.ClientID
	}
	if err := heading(w, cfg, "👤", title); err != nil {
		return err
	}

	p := cp.Profile
	data := make([][]string, 0, len(p.TimeWindows))
	for i, win := range p.TimeWindows {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			win.Label,
			dayList(win.Days),
			win.Range(),
			strconv.Itoa(win.Minutes()),
		})
	}
	if len(data) == 0 {
		if _, err := fmt.Fprintln(w, "No time windows declared."); err != nil {
			return err
		}
	} else if err := renderTable(w, []string{"#", "Label", "Days", "Time", "Minutes"}, data, tw.AlignLeft); err != nil {
		return err
	}

	notice := "none"
	if p.Preferences.RequiresAdvanceNotice {
		notice = fmt.Sprintf("%dh", p.Preferences.AdvanceNoticeHours)
	}
	lines := []string{
		fmt.Sprintf("Score: %d (%s)", p.Score, p.Category),
		fmt.Sprintf("Flexible schedule: %s, advance notice: %s", yesNo(p.Preferences.FlexibleSchedule), notice),
		fmt.Sprintf("Visits: %d, success rate: %s", p.Stats.TotalVisits, fmtPercent(p.Stats.SuccessRate)),
	}
	for _, n := range p.Notes {
		lines = append(lines, "Note: "+n)
	}
	if !p.LastUpdated.IsZero() {
		updated := "Last updated: " + p.LastUpdated.Format(contract.DateTimeFormat)
		if p.UpdatedBy != "" {
			updated += " by " + p.UpdatedBy
		}
		lines = append(lines, updated)
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

func writeWindowsCSV(w io.Writer, cp schema.ClientProfile) error {
	header := []string{"client_id", "window", "label", "days", "from", "to", "minutes"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, win := range cp.Profile.TimeWindows {
			days := make([]string, len(win.Days))
			for j, d := range win.Days {
				days[j] = d.String()
			}
			rec := []string{
				cp.ClientID,
				strconv.Itoa(i + 1),
				win.Label,
				strings.Join(days, "|"),
				win.From.String(),
				win.To.String(),
				strconv.Itoa(win.Minutes()),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
