package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/athome/internal/contract"
	"github.com/huangsam/athome/schema"
)

// checkResult is the JSON shape of an availability check.
type checkResult struct {
	ClientID string `json:"client_id,omitempty"`
	At       string `json:"at"`
	schema.Verdict
}

// PrintVerdict outputs the result of an availability check at cfg.At.
func PrintVerdict(verdict schema.Verdict, cfg *contract.Config) error {
	return dispatch(cfg,
		func(w io.Writer) error { return writeVerdictText(w, verdict, cfg) },
		func(w io.Writer) error { return writeVerdictCSV(w, verdict, cfg) },
		func(w io.Writer) error {
			return writeJSON(w, checkResult{ClientID: cfg.ClientID, At: cfg.At.Format(contract.DateTimeFormat), Verdict: verdict})
		},
	)
}

// verdictWord renders the tri-state answer.
func verdictWord(v schema.Verdict) string {
	switch {
	case v.Available == nil:
		return "unknown"
	case *v.Available:
		return "available"
	default:
		return "unavailable"
	}
}

func verdictEmoji(v schema.Verdict) string {
	switch {
	case v.Available == nil:
		return "❔"
	case *v.Available:
		return "✅"
	default:
		return "🚪"
	}
}

func writeVerdictText(w io.Writer, v schema.Verdict, cfg *contract.Config) error {
	when := cfg.At.Format("Mon 2006-01-02 15:04 MST")
	if err := heading(w, cfg, verdictEmoji(v), fmt.Sprintf("%s at %s", verdictWord(v), when)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Reason: %s\n", v.Reason); err != nil {
		return err
	}
	if v.Suggestion != nil {
		if _, err := fmt.Fprintf(w, "Try instead: %s\n", *v.Suggestion); err != nil {
			return err
		}
	}
	return nil
}

func writeVerdictCSV(w io.Writer, v schema.Verdict, cfg *contract.Config) error {
	header := []string{"client_id", "at", "available", "reason", "suggestion"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		available := ""
		if v.Available != nil {
			available = strconv.FormatBool(*v.Available)
		}
		suggestion := ""
		if v.Suggestion != nil {
			suggestion = *v.Suggestion
		}
		return cw.Write([]string{cfg.ClientID, cfg.At.Format(contract.DateTimeFormat), available, v.Reason, suggestion})
	})
}
