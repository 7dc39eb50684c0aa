package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MrSnakeDoc/acronyms/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
