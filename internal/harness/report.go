package harness

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
)

// WriteReport prints results as an aligned table, one row per case.
func WriteReport(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintln(tw, "strategy\tmode\tworkers\titer\tmin\tmean\tp50\tp99\tmax\tallocs/op\tbytes/op\tchecksum\t")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%v\t%v\t%v\t%v\t%v\t%s\t%s\t%d\t\n",
			r.Strategy,
			r.Mode,
			r.Workers,
			humanize.Comma(int64(r.Iterations)),
			r.Min,
			r.Mean,
			r.P50,
			r.P99,
			r.Max,
			humanize.Comma(int64(r.AllocsPerOp)),
			humanize.IBytes(r.BytesPerOp),
			r.Checksum,
		)
	}
	return tw.Flush()
}
