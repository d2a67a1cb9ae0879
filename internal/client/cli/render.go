package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/brokerdesk/internal/client/workflow"
	"github.com/dmitrijs2005/brokerdesk/internal/common"
)

// now is a test seam for the current time.
var now = time.Now

// table writes rows under header as aligned columns.
func table(w io.Writer, header []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	tw.Flush()
}

// fields writes label/value pairs, one per line.
func fields(w io.Writer, pairs ...string) {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	for i := 0; i+1 < len(pairs); i += 2 {
		fmt.Fprintf(tw, "%s:\t%s\n", pairs[i], pairs[i+1])
	}
	tw.Flush()
}

func money(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
func idText(v int64) string  { return strconv.FormatInt(v, 10) }
func num(v int) string       { return strconv.Itoa(v) }

func date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(common.ISODate)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func flashLine(f *workflow.Flash) string {
	if f.Kind == workflow.FlashError {
		return "[error] " + f.Text
	}
	return "[ok] " + f.Text
}
