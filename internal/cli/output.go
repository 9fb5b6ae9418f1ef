package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/robpaolella/personal-finance-sub000/internal/application/importer"
	"github.com/robpaolella/personal-finance-sub000/internal/domain/duplicates"
)

const maxDescriptionWidth = 40

// PrintPreview prints one line per row with its duplicate status.
func PrintPreview(w io.Writer, preview *importer.Preview) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tDATE\tAMOUNT\tDESCRIPTION\tSTATUS\tMATCH")
	for i, row := range preview.Rows {
		mark := " "
		if row.Selected {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s%d\t%s\t%.2f\t%s\t%s\t%s\n",
			mark,
			i,
			row.Transaction.Date,
			row.Transaction.Amount,
			truncate(row.Transaction.Description, maxDescriptionWidth),
			statusText(row),
			matchText(row.Result))
	}
	_ = tw.Flush()

	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintf(w, "Batch %s: %d rows | Likely=%d Possible=%d New=%d | * = selected\n",
		preview.BatchID,
		len(preview.Rows),
		preview.ExactCount,
		preview.PossibleCount,
		preview.NewCount)
}

// PrintCommitSummary prints the result of saving an import.
func PrintCommitSummary(w io.Writer, result *importer.CommitResult) {
	fmt.Fprintf(w, "Imported %d transactions (%d skipped) in batch %s\n",
		result.Inserted,
		result.Skipped,
		result.BatchID)
}

func statusText(row importer.Row) string {
	if row.Label == "" {
		return "new"
	}
	return row.Label
}

func matchText(r duplicates.Result) string {
	if r.Status == duplicates.StatusNone {
		return ""
	}
	if r.MatchID == nil {
		return fmt.Sprintf("same file: %s", truncate(r.MatchDescription, maxDescriptionWidth))
	}
	text := fmt.Sprintf("#%d %s", *r.MatchID, truncate(r.MatchDescription, maxDescriptionWidth))
	if r.MatchAccountName != "" {
		text += " (" + r.MatchAccountName + ")"
	}
	return text
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
