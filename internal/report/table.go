package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/ArowuTest/lottery-odds/internal/models"
)

const rule = 80

// WriteTable prints the parameters, one row per ticket group and the pool totals.
func WriteTable(w io.Writer, p models.Params, rep models.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, strings.Repeat("=", rule))
	fmt.Fprintln(tw, "LOTTERY SIMULATION RESULTS")
	fmt.Fprintln(tw, strings.Repeat("=", rule))
	fmt.Fprintln(tw, "Simulation Parameters:")
	fmt.Fprintf(tw, "  Iterations:\t%s\n", humanize.Comma(int64(p.Iterations)))
	fmt.Fprintf(tw, "  Main spots:\t%d\n", p.MainSpots)
	fmt.Fprintf(tw, "  Waitlist spots:\t%d\n", p.WaitlistSpots)
	fmt.Fprintf(tw, "  Total spots:\t%d\n", p.TotalSpots())
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, strings.Repeat("-", rule))
	fmt.Fprintln(tw, "Tickets\tEntrants\tMain %\tWaitlist %\tEither %")
	fmt.Fprintln(tw, strings.Repeat("-", rule))
	for _, g := range rep.Groups {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%.2f\n",
			FormatTickets(g.Tickets), g.EntrantCount, g.MainProbPct, g.WaitlistProbPct, g.EitherProbPct)
	}
	fmt.Fprintln(tw, strings.Repeat("-", rule))
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "Total entrants:\t%d\n", rep.TotalEntrants)
	fmt.Fprintf(tw, "Total tickets in pool:\t%s\n", FormatTickets(rep.TotalTickets))
	return tw.Flush()
}

// FormatTickets prints whole ticket counts without a decimal point.
func FormatTickets(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}
