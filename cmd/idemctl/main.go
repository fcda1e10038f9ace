package main

import (
	"fmt"
	"os"

	"github.com/carelane/hospital-billing/internal/idemctl"
)

func main() {
	if err := idemctl.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(idemctl.GetExitCode(err))
	}
}
