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

// PrintRanked outputs clients ranked by availability score.
func PrintRanked(ranked []schema.RankedClient, cfg *contract.Config) error {
	if ranked == nil {
		ranked = []schema.RankedClient{}
	}
	return dispatch(cfg,
		func(w io.Writer) error { return writeRankedTable(w, ranked, cfg) },
		func(w io.Writer) error { return writeRankedCSV(w, ranked) },
		func(w io.Writer) error { return writeJSON(w, ranked) },
	)
}

func writeRankedTable(w io.Writer, ranked []schema.RankedClient, cfg *contract.Config) error {
	if err := heading(w, cfg, "🏆", "Clients by availability"); err != nil {
		return err
	}
	if len(ranked) == 0 {
		_, err := fmt.Fprintln(w, "No stored profiles match.")
		return err
	}

	idWidth := getMaxTableTextWidth(cfg, 60)
	data := make([][]string, 0, len(ranked))
	for _, r := range ranked {
		data = append(data, []string{
			strconv.Itoa(r.Rank),
			contract.TruncateText(r.ClientID, idWidth),
			strconv.Itoa(r.Score),
			contract.GetLabel(r.Category, cfg.UseColors, cfg.UseEmojis),
			strconv.Itoa(r.Windows),
			strconv.Itoa(r.Stats.TotalVisits),
			fmtPercent(r.Stats.SuccessRate),
		})
	}
	if err := renderTable(w, []string{"Rank", "Client", "Score", "Category", "Windows", "Visits", "Success"}, data, tw.AlignRight); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d clients\n", len(ranked))
	return err
}

func writeRankedCSV(w io.Writer, ranked []schema.RankedClient) error {
	header := []string{"rank", "client_id", "score", "category", "windows", "total_visits", "success_rate", "last_visit_date"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range ranked {
			rec := []string{
				strconv.Itoa(r.Rank),
				r.ClientID,
				strconv.Itoa(r.Score),
				string(r.Category.Key),
				strconv.Itoa(r.Windows),
				strconv.Itoa(r.Stats.TotalVisits),
				strconv.Itoa(r.Stats.SuccessRate),
				lastVisitCSV(r.Stats),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
