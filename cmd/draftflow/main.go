// Command draftflow drives a content workflow session from the command
// line. State lives in the store selected by draftflow.yaml, so each
// invocation picks up where the previous one stopped.
package main

import (
	"context"
	"os"
)

func main() {
	if err := Execute(context.Background(), os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
