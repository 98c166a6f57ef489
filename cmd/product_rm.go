package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type productRmCmd struct {
	id string
}

func (*productRmCmd) Name() string     { return "product-rm" }
func (*productRmCmd) Synopsis() string { return "delete a product and its whole entry history" }
func (*productRmCmd) Usage() string {
	return `tly product-rm -id <product_id>

  Deletes a product together with all its recorded entries. Deleting an
  unknown id does nothing.
`
}

func (c *productRmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Product id to delete.")
}

func (c *productRmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}
	r := OpenRegistry()
	defer r.Wait()
	if err := r.DeleteProduct(c.id); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting product: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted product %s\n", c.id)
	return subcommands.ExitSuccess
}
