package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
)

// DriversMarkdown renders the ranked-contribution view of an attribution:
// which components moved the aggregate margin, largest movers first.
func DriversMarkdown(a *Attribution) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	title := "Margin Drivers"
	if a.Name != "" {
		title = fmt.Sprintf("Margin Drivers: %s", a.Name)
	}
	doc.H1(title)
	doc.PlainText(fmt.Sprintf("Aggregate margin moved from %s (%s) to %s (%s): %s.",
		a.MarginPrior, a.PriorLabel, a.MarginCurrent, a.CurrentLabel, a.Change.SignedString()))

	rows := make([][]string, 0, len(a.Drivers))
	for i, r := range a.Drivers {
		if r.Total == 0 {
			continue // a component that moved nothing drives nothing
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			r.Component,
			r.Total.SignedString(),
			r.Driver,
		})
	}
	if len(rows) == 0 {
		doc.PlainText("No component moved the margin.")
		return doc.String()
	}

	doc.Table(md.TableSet{
		Header: []string{"Rank", "Component", "Contribution", "Driver"},
		Rows:   rows,
	})
	return doc.String()
}
