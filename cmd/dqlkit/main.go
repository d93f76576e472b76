// Command dqlkit classifies, formats and generates DQL query text.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/dqlkit/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// Commands report their own failures as ExitErrors. Anything else
		// is a usage error from cobra or flag validation.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(cli.ExitCommandError)
		}
		os.Exit(exitErr.Code)
	}
}
