// Command confgen generates immutable configuration types, constructors,
// accessors and deserializers from Go structs marked with //confgen:schema.
//
// Usage:
//
//	confgen generate ./...
//	confgen check ./...
//	confgen inspect ./examples/shop
package main

import (
	"context"
	"fmt"
	"os"

	"confgen/cmd/confgen/internal"
)

func main() {
	if err := internal.Run(context.Background(), os.Getenv, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
