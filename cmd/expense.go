package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tallyapp/tally"
)

type expenseCmd struct {
	product     string
	amount      string
	description string
	date        string
}

func (*expenseCmd) Name() string     { return "expense" }
func (*expenseCmd) Synopsis() string { return "record an expense against a product" }
func (*expenseCmd) Usage() string {
	return `tly expense -product <product_id> -amount <amount> [-desc <description>] [-date <YYYY-MM-DD>]

  Records a free-standing cost against a product. The amount must be
  positive.
`
}

func (c *expenseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.product, "product", "", "Product id the expense belongs to.")
	f.StringVar(&c.amount, "amount", "", "Expense amount.")
	f.StringVar(&c.description, "desc", "", "Free-text description.")
	f.StringVar(&c.date, "date", "", "Date of the expense. Defaults to now.")
}

func (c *expenseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.product == "" {
		fmt.Fprintln(os.Stderr, "Error: -product is required.")
		return subcommands.ExitUsageError
	}
	amount, err := tally.ParseMoney(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -amount: %v\n", err)
		return subcommands.ExitUsageError
	}
	at, err := parseDateFlag(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	r := OpenRegistry()
	defer r.Wait()
	e := tally.NewExpense(c.product, at, c.description, amount)
	if err := r.AddEntry(c.product, e); err != nil {
		fmt.Fprintf(os.Stderr, "Error recording expense: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded expense of %s\n", amount.Format(*currency))
	return subcommands.ExitSuccess
}
