//go:build validate_catalog
// +build validate_catalog

package main

import (
	"fmt"
	"os"

	"github.com/magnetlabs/magnet/internal/catalog"
)

// main checks a catalog file (the JSON array published at the catalog URL) against the embedded schema
// and decodes it the same way the reconciliation engine does.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: go run -tags=validate_catalog ./tools/validate/catalog.go <catalog.json>\n")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading catalog file: %v\n", err)
		os.Exit(1)
	}

	if err := catalog.Validate(data); err != nil {
		fmt.Printf("❌ Validation failed:\n  - %v\n", err)
		os.Exit(1)
	}

	defs, err := catalog.DecodeInner[catalog.Definition](data)
	if err != nil {
		fmt.Printf("❌ Decoding failed:\n  - %v\n", err)
		os.Exit(1)
	}

	ids := make(map[string]struct{}, len(defs))
	for _, def := range defs {
		if _, ok := ids[def.ID]; ok {
			fmt.Printf("❌ Validation failed:\n  - duplicate server id '%s'\n", def.ID)
			os.Exit(1)
		}
		ids[def.ID] = struct{}{}
	}

	fmt.Printf("✅ Catalog validation succeeded (%d servers)\n", len(defs))
}
