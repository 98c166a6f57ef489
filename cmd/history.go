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

type historyCmd struct {
	product string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "show the cumulative sales and profit series of a product" }
func (*historyCmd) Usage() string {
	return `tly history -product <product_id|name>

  Walks the product's entries in date order and shows the cumulative sales
  and profit after each one, starting from the initial investment.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.product, "product", "", "Product id, or its exact name.")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.product == "" {
		fmt.Fprintln(os.Stderr, "Error: -product is required.")
		return subcommands.ExitUsageError
	}
	l, err := findLedger(OpenRegistry(), c.product)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.HistoryMarkdown(l.Product.Name, tally.CumulativeSeries(l), *currency))
	return subcommands.ExitSuccess
}
