package extract

import (
	"fmt"
	"io"
)

var sensitiveWarning = []string{
	"WARNING! This is verbose output!",
	"There may be private information in this output!",
	"Remove any sensitive information before sharing!",
}

// writeWarning prints the sensitive-data banner, in yellow when color is set.
func writeWarning(w io.Writer, color bool) {
	for _, line := range sensitiveWarning {
		if color {
			fmt.Fprintf(w, "\033[93m%s\033[0m\n", line)
		} else {
			fmt.Fprintln(w, line)
		}
	}
}
