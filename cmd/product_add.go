package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tallyapp/tally"
)

type productAddCmd struct {
	name        string
	description string
	cost        string
	price       string
	units       int64
	investment  string
}

func (*productAddCmd) Name() string     { return "product-add" }
func (*productAddCmd) Synopsis() string { return "register a new product" }
func (*productAddCmd) Usage() string {
	return `tly product-add -name <name> -desc <description> -cost <unit_cost> -price <selling_price> [-units <n>] -investment <amount>

  Registers a new product. When -units is omitted the initial stock is
  derived from the investment: investment / cost, truncated to whole units.
`
}

func (c *productAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Product name.")
	f.StringVar(&c.description, "desc", "", "Product description.")
	f.StringVar(&c.cost, "cost", "", "Cost of one unit.")
	f.StringVar(&c.price, "price", "", "Selling price of one unit.")
	f.Int64Var(&c.units, "units", 0, "Initial stock in units. Derived from the investment when omitted.")
	f.StringVar(&c.investment, "investment", "0", "Money invested to acquire the initial stock.")
}

func (c *productAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cost, err := tally.ParseMoney(c.cost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -cost: %v\n", err)
		return subcommands.ExitUsageError
	}
	price, err := tally.ParseMoney(c.price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -price: %v\n", err)
		return subcommands.ExitUsageError
	}
	investment, err := tally.ParseMoney(c.investment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -investment: %v\n", err)
		return subcommands.ExitUsageError
	}

	var p *tally.Product
	if c.units > 0 {
		p = tally.NewProduct(c.name, c.description, cost, price, c.units, investment)
	} else {
		p = tally.NewProductFromInvestment(c.name, c.description, cost, price, investment)
	}

	r := OpenRegistry()
	defer r.Wait()
	created, err := r.CreateProduct(p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating product: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Created product %q with id %s\n", created.Name, created.ID)
	return subcommands.ExitSuccess
}
