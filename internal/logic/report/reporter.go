package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Field is one labelled value of a record, printed in declaration order.
type Field struct {
	Name  string
	Value string
}

// Record is a single detected event, fully rendered to strings. It is
// built per match and dropped after printing; nothing is retained.
type Record struct {
	Signature string
	Slot      string
	Fields    []Field
}

// Reporter renders records as aligned tables on a writer. It holds no
// state beyond the output destination.
type Reporter struct {
	w io.Writer
}

func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

const separator = "────────────────────────────────────────────────────────────"

// Print emits one record framed by separator lines.
func (r *Reporter) Print(rec *Record) error {
	var b strings.Builder
	b.WriteString(separator)
	b.WriteByte('\n')

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "signature\t%s\n", rec.Signature)
	fmt.Fprintf(tw, "slot\t%s\n", rec.Slot)
	for _, f := range rec.Fields {
		fmt.Fprintf(tw, "%s\t%s\n", f.Name, f.Value)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	b.WriteString(separator)
	b.WriteByte('\n')

	_, err := io.WriteString(r.w, b.String())
	return err
}
