// Package cmd implements the CLI application to manage the registry.
package cmd

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/tallyapp/tally"
	"github.com/tallyapp/tally/sheets"
)

// Commands lists every subcommand of the application. A main package
// registers them all and executes the user-selected one.
var Commands = []subcommands.Command{
	&productAddCmd{},
	&productEditCmd{},
	&productRmCmd{},
	&saleCmd{},
	&expenseCmd{},
	&entryEditCmd{},
	&entryRmCmd{},
	&statsCmd{},
	&dashboardCmd{},
	&historyCmd{},
	&logCmd{},
	&exportCmd{},
	&importCmd{},
	&syncCmd{},
	&syncTestCmd{},
	&topicCmd{},
	&assistCmd{},
}

// As a CLI application it has a very short lived lifecycle, so it is ok to
// use global variables.

var registryFile = flag.String("f", "tally.json", "Path to the registry file")
var currency = flag.String("currency", "USD", "ISO currency code used for display")

// newReconciler builds the reconciler from the TALLY_* environment. A
// missing or placeholder configuration yields an unconfigured reconciler,
// which is a benign no-op everywhere.
func newReconciler() *tally.Reconciler {
	cfg, err := sheets.FromEnv()
	if err != nil {
		log.Printf("warning: ignoring sheets configuration: %v", err)
		cfg = sheets.Config{}
	}
	return tally.NewReconciler(sheets.New(cfg))
}

// OpenRegistry hydrates the registry from the app registry file, with the
// environment-configured mirror attached so that mutations resync. A
// mutating command defers Registry.Wait so the resync completes before the
// process exits.
func OpenRegistry() *tally.Registry {
	r := tally.OpenRegistry(&tally.FileStore{Path: *registryFile})
	r.AttachMirror(newReconciler())
	return r
}

// printMarkdown renders markdown for the terminal. When rendering fails the
// raw markdown is still printed, it remains readable.
func printMarkdown(doc string) {
	out, err := glamour.Render(doc, "auto")
	if err != nil {
		fmt.Println(doc)
		return
	}
	fmt.Print(out)
}

// parseDateFlag parses a -date flag value. Empty means "now", which
// AddEntry stamps at insertion.
func parseDateFlag(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse date %q, expected YYYY-MM-DD", s)
}
