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

// historyResult is the JSON shape of a presence history listing.
type historyResult struct {
	ClientID string                  `json:"client_id,omitempty"`
	Stats    schema.Stats            `json:"stats"`
	Records  []schema.PresenceRecord `json:"records"`
}

// PrintHistory outputs the presence history of a profile, oldest visit first.
func PrintHistory(clientID string, p schema.AvailabilityProfile, cfg *contract.Config) error {
	records := p.PresenceHistory
	if records == nil {
		records = []schema.PresenceRecord{}
	}
	return dispatch(cfg,
		func(w io.Writer) error { return writeHistoryTable(w, clientID, p, cfg) },
		func(w io.Writer) error { return writeHistoryCSV(w, clientID, p.PresenceHistory) },
		func(w io.Writer) error {
			return writeJSON(w, historyResult{ClientID: clientID, Stats: p.Stats, Records: records})
		},
	)
}

func writeHistoryTable(w io.Writer, clientID string, p schema.AvailabilityProfile, cfg *contract.Config) error {
	title := "Presence history"
	if clientID != "" {
		title += " for " + clientID
	}
	if err := heading(w, cfg, "📒", title); err != nil {
		return err
	}
	if len(p.PresenceHistory) == 0 {
		_, err := fmt.Fprintln(w, "No visits recorded yet.")
		return err
	}

	notesWidth := getMaxTableTextWidth(cfg, 55)
	data := make([][]string, 0, len(p.PresenceHistory))
	for i, r := range p.PresenceHistory {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			r.VisitDate.String(),
			r.VisitDate.Weekday().Label(),
			r.ScheduledTime.String(),
			yesNo(r.WasHome),
			yesNo(r.ArrivedOnTime),
			contract.TruncateText(r.Notes, notesWidth),
		})
	}
	if err := renderTable(w, []string{"#", "Date", "Day", "Scheduled", "Home", "On Time", "Notes"}, data, tw.AlignLeft); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d visits, %d at home (%s success). Last visit: %s\n",
		p.Stats.TotalVisits, p.Stats.SuccessfulVisits, fmtPercent(p.Stats.SuccessRate), fmtLastVisit(p.Stats))
	return err
}

func writeHistoryCSV(w io.Writer, clientID string, records []schema.PresenceRecord) error {
	header := []string{"client_id", "visit_date", "scheduled_time", "was_home", "arrived_on_time", "notes", "recorded_at"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range records {
			recordedAt := ""
			if !r.RecordedAt.IsZero() {
				recordedAt = r.RecordedAt.Format(contract.DateTimeFormat)
			}
			rec := []string{
				clientID,
				r.VisitDate.String(),
				r.ScheduledTime.String(),
				strconv.FormatBool(r.WasHome),
				strconv.FormatBool(r.ArrivedOnTime),
				r.Notes,
				recordedAt,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
