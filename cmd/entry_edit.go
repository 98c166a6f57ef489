package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tallyapp/tally"
)

type entryEditCmd struct {
	product     string
	entry       string
	date        string
	description string
	quantity    int64
	amount      string
}

func (*entryEditCmd) Name() string     { return "entry-edit" }
func (*entryEditCmd) Synopsis() string { return "edit a recorded sale or expense" }
func (*entryEditCmd) Usage() string {
	return `tly entry-edit -product <product_id> -entry <entry_id> [-date <YYYY-MM-DD>] [-desc <description>] [-qty <n>] [-amount <amount>]

  Edits a recorded entry. -qty applies to sales only and reprices the sale
  amount from the product's current selling price. -amount applies to
  expenses only; a sale amount is always derived from its quantity.
`
}

func (c *entryEditCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.product, "product", "", "Product id the entry belongs to.")
	f.StringVar(&c.entry, "entry", "", "Entry id to edit.")
	f.StringVar(&c.date, "date", "", "New date of the entry.")
	f.StringVar(&c.description, "desc", "", "New description.")
	f.Int64Var(&c.quantity, "qty", 0, "New quantity (sales only).")
	f.StringVar(&c.amount, "amount", "", "New amount (expenses only).")
}

func (c *entryEditCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.product == "" || c.entry == "" {
		fmt.Fprintln(os.Stderr, "Error: -product and -entry are required.")
		return subcommands.ExitUsageError
	}

	var patch tally.EntryPatch
	if c.date != "" {
		at, err := parseDateFlag(c.date)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitUsageError
		}
		patch.Date = &at
	}
	if c.description != "" {
		patch.Description = &c.description
	}
	if c.quantity != 0 {
		patch.Quantity = &c.quantity
	}
	if c.amount != "" {
		m, err := tally.ParseMoney(c.amount)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -amount: %v\n", err)
			return subcommands.ExitUsageError
		}
		patch.Amount = &m
	}

	r := OpenRegistry()
	defer r.Wait()
	if err := r.UpdateEntry(c.product, c.entry, patch); err != nil {
		fmt.Fprintf(os.Stderr, "Error updating entry: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated entry %s\n", c.entry)
	return subcommands.ExitSuccess
}
