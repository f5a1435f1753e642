// Command sssecrets generates and validates structured secrets.
package main

import (
	"fmt"
	"os"

	"github.com/sssecrets/go-sssecrets/internal/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
