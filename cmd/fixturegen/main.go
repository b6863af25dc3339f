// Command fixturegen writes a reproducible random inventory for the memory
// catalog backend.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/brianvoe/gofakeit/v7"

	"storefront-service/internal/adapters/memcatalog"
)

func main() {
	out := flag.String("out", "fixtures/inventory.json", "output file")
	items := flag.Int("items", 500, "number of vehicles")
	dealers := flag.Int("dealers", 12, "number of dealers")
	seed := flag.Uint64("seed", 42, "faker seed")
	flag.Parse()

	fx := memcatalog.GenerateInventory(gofakeit.New(*seed), *items, *dealers)
	data, err := fx.JSON()
	if err != nil {
		log.Fatalf("Failed to encode inventory: %v", err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	log.Printf("Wrote %d items and %d dealers to %s", len(fx.Items), len(fx.Dealers), *out)
}
