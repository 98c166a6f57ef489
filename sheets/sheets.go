// Package sheets implements the remote row store over a spreadsheet REST
// API (Google Sheets v4 value ranges, API-key auth).
//
// The package is a pure transport adapter: it knows how to clear, append
// and read a value range and how to probe the spreadsheet title, nothing
// about what the rows mean. Timeouts live here; the reconciler above has no
// cancellation of its own.
package sheets

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/tallyapp/tally"
)

const defaultBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"

// Client implements tally.RowStore against a spreadsheet API.
type Client struct {
	cfg  Config
	base string
	http *http.Client
}

// New creates a client for the production endpoint.
func New(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		base: defaultBaseURL,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewWithBase creates a client against an alternate endpoint, for tests.
func NewWithBase(cfg Config, base string, client *http.Client) *Client {
	return &Client{cfg: cfg, base: base, http: client}
}

// Configured reports whether the client carries usable credentials.
func (c *Client) Configured() bool { return c.cfg.Configured() }

func (c *Client) tab() string {
	if c.cfg.Tab == "" {
		return "Transactions"
	}
	return c.cfg.Tab
}

// ReadValues fetches the whole value range, header row included. A sheet
// with no values at all yields an empty table, not an error.
func (c *Client) ReadValues() ([][]string, error) {
	addr := fmt.Sprintf("%s/%s/values/%s?key=%s",
		c.base, c.cfg.SheetID, url.PathEscape(c.tab()), c.cfg.APIKey)
	var jobj any
	if err := jwget(c.http, addr, &jobj); err != nil {
		return nil, fmt.Errorf("cannot read values: %w", err)
	}
	jval, err := jsonpath.Get("$.values", jobj)
	if err != nil {
		// no "values" key: the range is empty
		return nil, nil
	}
	jrows, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected values payload %T", jval)
	}
	rows := make([][]string, 0, len(jrows))
	for _, jrow := range jrows {
		jcells, ok := jrow.([]any)
		if !ok {
			return nil, fmt.Errorf("unexpected row payload %T", jrow)
		}
		cells := make([]string, 0, len(jcells))
		for _, jcell := range jcells {
			cells = append(cells, fmt.Sprint(jcell))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// Append appends 'rows' to the value range in one batch, taking the cells
// as raw values.
func (c *Client) Append(rows [][]string) error {
	addr := fmt.Sprintf("%s/%s/values/%s:append?valueInputOption=RAW&key=%s",
		c.base, c.cfg.SheetID, url.PathEscape(c.tab()), c.cfg.APIKey)
	payload := map[string]any{"values": rows}
	if err := jpost(c.http, addr, payload, nil); err != nil {
		return fmt.Errorf("cannot append values: %w", err)
	}
	return nil
}

// Clear empties the whole value range.
func (c *Client) Clear() error {
	addr := fmt.Sprintf("%s/%s/values/%s:clear?key=%s",
		c.base, c.cfg.SheetID, url.PathEscape(c.tab()), c.cfg.APIKey)
	if err := jpost(c.http, addr, struct{}{}, nil); err != nil {
		return fmt.Errorf("cannot clear values: %w", err)
	}
	return nil
}

// Metadata fetches the spreadsheet title, as a read-only connectivity
// probe.
func (c *Client) Metadata() (tally.Metadata, error) {
	addr := fmt.Sprintf("%s/%s?fields=properties.title&key=%s",
		c.base, c.cfg.SheetID, c.cfg.APIKey)
	var jobj any
	if err := jwget(c.http, addr, &jobj); err != nil {
		return tally.Metadata{}, fmt.Errorf("cannot read spreadsheet metadata: %w", err)
	}
	path := "$.properties.title"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return tally.Metadata{}, fmt.Errorf("cannot pick %q from metadata: %w", path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	title, ok := jval.(string)
	if !ok {
		return tally.Metadata{}, fmt.Errorf("spreadsheet title is %T, not a string", jval)
	}
	return tally.Metadata{Title: title}, nil
}
