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

// PrintSlots outputs recommended visit slots, best first.
func PrintSlots(slots []schema.Slot, cfg *contract.Config) error {
	return dispatch(cfg,
		func(w io.Writer) error { return writeSlotsTable(w, slots, cfg) },
		func(w io.Writer) error { return writeSlotsCSV(w, slots) },
		func(w io.Writer) error { return writeJSON(w, slots) },
	)
}

func writeSlotsTable(w io.Writer, slots []schema.Slot, cfg *contract.Config) error {
	if err := heading(w, cfg, "📅", fmt.Sprintf("Best visit slots over the next %d days", cfg.DaysAhead)); err != nil {
		return err
	}
	if len(slots) == 0 {
		_, err := fmt.Fprintln(w, "No slots found. The profile has no usable time windows.")
		return err
	}

	reasonWidth := getMaxTableTextWidth(cfg, 50)
	data := make([][]string, 0, len(slots))
	for i, s := range slots {
		day := s.DayName
		if s.IsWeekend && cfg.UseEmojis {
			day += " 🌴"
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			s.Date.String(),
			day,
			s.From.String() + "-" + s.To.String(),
			strconv.Itoa(s.Score),
			contract.TruncateText(s.Reason, reasonWidth),
		})
	}
	return renderTable(w, []string{"Rank", "Date", "Day", "Time", "Score", "Reason"}, data, tw.AlignLeft)
}

func writeSlotsCSV(w io.Writer, slots []schema.Slot) error {
	header := []string{"rank", "date", "day_name", "time_from", "time_to", "score", "reason", "is_weekend"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, s := range slots {
			rec := []string{
				strconv.Itoa(i + 1),
				s.Date.String(),
				s.DayName,
				s.From.String(),
				s.To.String(),
				strconv.Itoa(s.Score),
				s.Reason,
				strconv.FormatBool(s.IsWeekend),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
