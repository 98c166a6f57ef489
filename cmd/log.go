package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/tallyapp/tally"
	"github.com/tallyapp/tally/renderer"
)

type logCmd struct {
	head int
}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "list recorded entries, newest first" }
func (*logCmd) Usage() string {
	return `tly log [-head <n>]

  Lists all recorded entries across products, newest first.
`
}

func (c *logCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.head, "head", 0, "Show only the first N entries.")
}

func (c *logCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rows := tally.Flatten(OpenRegistry())
	if c.head > 0 && len(rows) > c.head {
		rows = rows[:c.head]
	}
	printMarkdown(renderer.LogMarkdown(rows, *currency))
	return subcommands.ExitSuccess
}
