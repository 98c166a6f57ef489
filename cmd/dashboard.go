package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/tallyapp/tally/renderer"
)

type dashboardCmd struct{}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "show the business-wide dashboard" }
func (*dashboardCmd) Usage() string {
	return `tly dashboard

  Shows one summary row per product plus totals over the whole business.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {}

func (c *dashboardCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	printMarkdown(renderer.RenderDashboard(renderer.NewDashboard(OpenRegistry(), *currency)))
	return subcommands.ExitSuccess
}
