package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tallyapp/tally"
)

type productEditCmd struct {
	id          string
	name        string
	description string
	cost        string
	price       string
	units       int64
	investment  string
}

func (*productEditCmd) Name() string     { return "product-edit" }
func (*productEditCmd) Synopsis() string { return "edit the configuration of a product" }
func (*productEditCmd) Usage() string {
	return `tly product-edit -id <product_id> [-name <name>] [-desc <description>] [-cost <unit_cost>] [-price <selling_price>] [-units <n>] [-investment <amount>]

  Edits the configuration of a product. Omitted flags keep their current
  value. Recorded entries are untouched; derived figures follow the new
  configuration (COGS uses the current unit cost, sale amounts do not move).
`
}

func (c *productEditCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Product id to edit.")
	f.StringVar(&c.name, "name", "", "New product name.")
	f.StringVar(&c.description, "desc", "", "New product description.")
	f.StringVar(&c.cost, "cost", "", "New cost of one unit.")
	f.StringVar(&c.price, "price", "", "New selling price of one unit.")
	f.Int64Var(&c.units, "units", 0, "New initial stock in units.")
	f.StringVar(&c.investment, "investment", "", "New initial investment.")
}

func (c *productEditCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}

	r := OpenRegistry()
	defer r.Wait()
	l, err := r.Ledger(c.id)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	p := l.Product.Clone()
	if c.name != "" {
		p.Name = c.name
	}
	if c.description != "" {
		p.Description = c.description
	}
	if c.units > 0 {
		p.InitialUnits = c.units
	}
	for _, e := range []struct {
		flag  string
		value string
		dst   *tally.Money
	}{
		{"-cost", c.cost, &p.UnitCost},
		{"-price", c.price, &p.SellingPrice},
		{"-investment", c.investment, &p.InitialInvestment},
	} {
		if e.value == "" {
			continue
		}
		m, err := tally.ParseMoney(e.value)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", e.flag, err)
			return subcommands.ExitUsageError
		}
		*e.dst = m
	}

	if err := r.UpdateProduct(p); err != nil {
		fmt.Fprintf(os.Stderr, "Error updating product: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated product %q\n", p.Name)
	return subcommands.ExitSuccess
}
