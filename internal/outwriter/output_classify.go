package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/athome/internal/contract"
	"github.com/huangsam/athome/schema"
)

// classification is the JSON shape of a bare score lookup.
type classification struct {
	Score    int             `json:"score"`
	Category schema.Category `json:"category"`
}

// PrintCategory outputs the category a score falls into.
func PrintCategory(score int, category schema.Category, cfg *contract.Config) error {
	return dispatch(cfg,
		func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "%d → %s\n%s\n", score, contract.GetLabel(category, cfg.UseColors, cfg.UseEmojis), category.Description)
			return err
		},
		func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"score", "category", "label"}, func(cw *csv.Writer) error {
				return cw.Write([]string{strconv.Itoa(score), string(category.Key), category.Label})
			})
		},
		func(w io.Writer) error { return writeJSON(w, classification{Score: score, Category: category}) },
	)
}
