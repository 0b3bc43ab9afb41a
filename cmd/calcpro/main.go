package main

import (
	"fmt"
	"os"

	"calcpro/cmd/calcpro/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "calcpro: %v\n", err)
		os.Exit(1)
	}
}
