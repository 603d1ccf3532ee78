// BoxFit plans how items are packed into shipping boxes.
//
// It packs a list of items into a single container, or searches a set of
// candidate boxes for the smallest one that holds everything, and reports
// the layout in the terminal, as JSON, PDF, QR labels or DXF.
//
// Build:
//
//	go build -o boxfit ./cmd/boxfit
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/piwi3910/BoxFit/internal/ui"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// Exit codes
const (
	ExitSuccess     = 0
	ExitError       = 1
	ExitDidNotFit   = 2
	ExitConfigError = 3
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := newRootCmd(os.Stdout, os.Stderr)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		var cfgErr *configError
		switch {
		case errors.Is(err, errDidNotFit):
			return ExitDidNotFit
		case errors.As(err, &cfgErr):
			fmt.Fprintln(os.Stderr, ui.FailStyle.Render(ui.IconFail+" configuration error: "+cfgErr.Error()))
			return ExitConfigError
		default:
			fmt.Fprintln(os.Stderr, ui.FailStyle.Render(ui.IconFail+" "+err.Error()))
			return ExitError
		}
	}
	return ExitSuccess
}
