// Package logging provides the process-wide log writer used by the
// tick driver and its collaborators: a single package-level sink that
// defaults to stdout but can be redirected (tests redirect it to a
// buffer to assert on output without touching os.Stdout).
package logging

import (
	"fmt"
	"io"
	"os"
)

var writer io.Writer = os.Stdout

// SetLogWriter redirects all subsequent Logf output. Passing nil
// restores the stdout default.
func SetLogWriter(w io.Writer) {
	if w == nil {
		writer = os.Stdout
		return
	}
	writer = w
}

// Logf writes a formatted line to the current log writer, appending a
// trailing newline if the format string doesn't already end in one.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	fmt.Fprint(writer, msg)
}

// Banner writes a boxed section header, matching the denser multi-line
// report style used for periodic performance summaries.
func Banner(title string) {
	top := "╔" + repeat('═', len(title)+2) + "╗"
	mid := "║ " + title + " ║"
	bot := "╚" + repeat('═', len(title)+2) + "╝"
	fmt.Fprintln(writer, top)
	fmt.Fprintln(writer, mid)
	fmt.Fprintln(writer, bot)
}

func repeat(r rune, n int) string {
	out := make([]rune, n)
	for i := range out {
		out[i] = r
	}
	return string(out)
}
