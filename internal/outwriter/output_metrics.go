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

// PrintMetricsDefinitions displays the scoring terms and category thresholds.
// This is a static display that does not need a profile.
func PrintMetricsDefinitions(model schema.MetricsRenderModel, cfg *contract.Config) error {
	return dispatch(cfg,
		func(w io.Writer) error { return writeMetricsText(w, model, cfg) },
		func(w io.Writer) error { return writeMetricsCSV(w, model) },
		func(w io.Writer) error { return writeJSON(w, model) },
	)
}

func writeMetricsText(w io.Writer, model schema.MetricsRenderModel, cfg *contract.Config) error {
	if err := heading(w, cfg, "🏠", model.Title); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", model.Description); err != nil {
		return err
	}

	terms := make([][]string, 0, len(model.Terms))
	for _, t := range model.Terms {
		terms = append(terms, []string{string(t.Key), fmt.Sprintf("%g", t.Max), t.Formula})
	}
	if err := renderTable(w, []string{"Term", "Max", "Formula"}, terms, tw.AlignLeft); err != nil {
		return err
	}

	categories := make([][]string, 0, len(model.Categories))
	for _, c := range model.Categories {
		categories = append(categories, []string{
			contract.GetLabel(c, cfg.UseColors, cfg.UseEmojis),
			string(c.Key),
			fmt.Sprintf(">= %d", c.MinScore),
			c.Description,
		})
	}
	return renderTable(w, []string{"Category", "Key", "Score", "Description"}, categories, tw.AlignLeft)
}

func writeMetricsCSV(w io.Writer, model schema.MetricsRenderModel) error {
	header := []string{"kind", "key", "value", "description"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, t := range model.Terms {
			if err := cw.Write([]string{"term", string(t.Key), fmt.Sprintf("%g", t.Max), t.Formula}); err != nil {
				return err
			}
		}
		for _, c := range model.Categories {
			if err := cw.Write([]string{"category", string(c.Key), strconv.Itoa(c.MinScore), c.Description}); err != nil {
				return err
			}
		}
		return nil
	})
}
