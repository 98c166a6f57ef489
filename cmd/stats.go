package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tallyapp/tally"
	"github.com/tallyapp/tally/renderer"
)

type statsCmd struct {
	product string
}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "show the derived figures of one product" }
func (*statsCmd) Usage() string {
	return `tly stats -product <product_id|name>

  Derives and shows the full financial report of one product: units sold,
  inventory, revenue, COGS, gross and net profit, ROI and margin. Everything
  is recomputed from the raw entries on each call.
`
}

func (c *statsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.product, "product", "", "Product id, or its exact name.")
}

// findLedger resolves a product by id first, then by exact name.
func findLedger(r *tally.Registry, key string) (*tally.ProductLedger, error) {
	l, err := r.Ledger(key)
	if err == nil {
		return l, nil
	}
	for _, candidate := range r.Ledgers() {
		if candidate.Product.Name == key {
			return candidate, nil
		}
	}
	return nil, err
}

func (c *statsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.product == "" {
		fmt.Fprintln(os.Stderr, "Error: -product is required.")
		return subcommands.ExitUsageError
	}
	l, err := findLedger(OpenRegistry(), c.product)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderProduct(renderer.NewProductReport(l, *currency)))
	return subcommands.ExitSuccess
}
