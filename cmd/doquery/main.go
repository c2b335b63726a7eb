// Command doquery indexes a document corpus in memory and answers keyword
// queries against it.
package main

import (
	"fmt"
	"os"

	apperrors "github.com/doquery/doquery/pkg/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "doquery: %v\n", err)
		os.Exit(apperrors.ExitCode(err))
	}
}
