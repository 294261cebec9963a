// Package printer writes the CLI's human-facing diagnostics to stderr.
// Allocation results go to stdout through cobra; nothing here touches stdout.
package printer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

const warnMark = "⚠️"

func init() {
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}
}

var (
	warnStyle  = color.New(color.FgYellow)
	titleStyle = color.New(color.FgRed, color.Bold)
)

// Stderr is where every diagnostic lands.
var Stderr io.Writer = os.Stderr

// Warning formats a yellow line on Stderr, marked with warnMark unless the
// message already starts with it.
func Warning(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, warnMark) {
		msg = warnMark + "  " + msg
	}
	warnStyle.Fprint(Stderr, msg)
}

// Error reports a failed command: the title in bold red, a blank line, the
// explanation, then the suggestions. The returned error holds the title
// alone, since the details are already on Stderr.
func Error(title string, explanation string, suggestions []string) error {
	titleStyle.Fprintf(Stderr, "%s\n\n", title)
	fmt.Fprintln(Stderr, explanation)
	suggest(Stderr, suggestions)

	return fmt.Errorf("%s", title)
}

// suggest prints one suggestion bare and several as a numbered "Either:" list.
func suggest(w io.Writer, suggestions []string) {
	switch len(suggestions) {
	case 0:
		return
	case 1:
		fmt.Fprintf(w, "\n%s\n", suggestions[0])
	default:
		fmt.Fprint(w, "\nEither:\n")
		for i, s := range suggestions {
			fmt.Fprintf(w, "  %d. %s\n", i+1, s)
		}
	}
}
