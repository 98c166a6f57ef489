package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tallyapp/tally"
)

type syncCmd struct{}

func (*syncCmd) Name() string     { return "sync" }
func (*syncCmd) Synopsis() string { return "force a full resync of the remote mirror" }
func (*syncCmd) Usage() string {
	return `tly sync

  Replaces the whole remote mirror with the current flattened registry: the
  tab is cleared, then every entry is appended in one batch. A no-op while
  sync is not configured.
`
}

func (c *syncCmd) SetFlags(f *flag.FlagSet) {}

func (c *syncCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rec := newReconciler()
	r := tally.OpenRegistry(&tally.FileStore{Path: *registryFile})
	result := rec.FullSync(tally.Flatten(r))
	fmt.Println(result.Message)
	if !result.OK && !result.Skipped {
		fmt.Fprintln(os.Stderr, "Sync failed.")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type syncTestCmd struct{}

func (*syncTestCmd) Name() string     { return "sync-test" }
func (*syncTestCmd) Synopsis() string { return "probe the remote mirror connection" }
func (*syncTestCmd) Usage() string {
	return `tly sync-test

  Reads the spreadsheet title to validate the sync configuration, without
  writing anything.
`
}

func (c *syncTestCmd) SetFlags(f *flag.FlagSet) {}

func (c *syncTestCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	result := newReconciler().TestConnection()
	fmt.Println(result.Message)
	if !result.OK && !result.Skipped {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
