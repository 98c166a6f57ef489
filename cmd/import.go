package cmd

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/tallyapp/tally"
)

type importCmd struct {
	input  string
	remote bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import entries from a CSV export or from the remote mirror" }
func (*importCmd) Usage() string {
	return `tly import [-i <file>] [-remote]

  Reads a flat entry table back into the registry. Rows owned by unknown
  products and rows already present are skipped. Unparseable rows are
  reported and skipped; the good rows are imported either way. A row whose
  date cannot be parsed keeps the import time as its date.

  With -remote the table is read from the configured spreadsheet mirror
  instead of a file.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "CSV file to import. Defaults to stdin.")
	f.BoolVar(&c.remote, "remote", false, "Read from the remote mirror instead of a file.")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	importedAt := time.Now()

	var rows []tally.FlatRow
	var err error
	if c.remote {
		rec := newReconciler()
		if !rec.Configured() {
			fmt.Fprintln(os.Stderr, "Error: sync is not configured, nothing to read from.")
			return subcommands.ExitFailure
		}
		rows, err = rec.ReadAll(importedAt)
	} else {
		var file *os.File = os.Stdin
		if c.input != "" {
			file, err = os.Open(c.input)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", c.input, err)
				return subcommands.ExitFailure
			}
			defer file.Close()
		}
		var values [][]string
		values, err = csv.NewReader(file).ReadAll()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading CSV: %v\n", err)
			return subcommands.ExitFailure
		}
		rows, err = tally.ImportRows(values, importedAt)
	}
	// Partial imports are worth keeping: report the bad rows, import the rest.
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: some rows were skipped:\n%v\n", err)
	}

	r := OpenRegistry()
	defer r.Wait()
	restored, err := r.Restore(rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Imported %d of %d rows\n", restored, len(rows))
	return subcommands.ExitSuccess
}
