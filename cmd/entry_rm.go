package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type entryRmCmd struct {
	product string
	entry   string
}

func (*entryRmCmd) Name() string     { return "entry-rm" }
func (*entryRmCmd) Synopsis() string { return "delete a recorded sale or expense" }
func (*entryRmCmd) Usage() string {
	return `tly entry-rm -product <product_id> -entry <entry_id>

  Deletes one recorded entry from a product's ledger.
`
}

func (c *entryRmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.product, "product", "", "Product id the entry belongs to.")
	f.StringVar(&c.entry, "entry", "", "Entry id to delete.")
}

func (c *entryRmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.product == "" || c.entry == "" {
		fmt.Fprintln(os.Stderr, "Error: -product and -entry are required.")
		return subcommands.ExitUsageError
	}
	r := OpenRegistry()
	defer r.Wait()
	if err := r.RemoveEntry(c.product, c.entry); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting entry: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted entry %s\n", c.entry)
	return subcommands.ExitSuccess
}
