package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tallyapp/tally"
)

type saleCmd struct {
	product     string
	quantity    int64
	description string
	date        string
}

func (*saleCmd) Name() string     { return "sale" }
func (*saleCmd) Synopsis() string { return "record the sale of some units of a product" }
func (*saleCmd) Usage() string {
	return `tly sale -product <product_id> -qty <n> [-desc <description>] [-date <YYYY-MM-DD>]

  Records a sale. The amount is quantity times the product's current selling
  price, snapshotted at this moment. A sale exceeding the current inventory
  is rejected.
`
}

func (c *saleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.product, "product", "", "Product id the sale belongs to.")
	f.Int64Var(&c.quantity, "qty", 0, "Number of units sold.")
	f.StringVar(&c.description, "desc", "", "Free-text description.")
	f.StringVar(&c.date, "date", "", "Date of the sale. Defaults to now.")
}

func (c *saleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.product == "" {
		fmt.Fprintln(os.Stderr, "Error: -product is required.")
		return subcommands.ExitUsageError
	}
	at, err := parseDateFlag(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	r := OpenRegistry()
	defer r.Wait()
	l, err := r.Ledger(c.product)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	s := tally.NewSale(l.Product, at, c.description, c.quantity)
	if err := r.AddEntry(c.product, s); err != nil {
		fmt.Fprintf(os.Stderr, "Error recording sale: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded sale of %d x %q for %s\n", c.quantity, l.Product.Name, s.Amount.Format(*currency))
	return subcommands.ExitSuccess
}
