package sheets

import "github.com/kelseyhightower/envconfig"

// Placeholder values shipped in sample .env files. As long as they are in
// place, the transport reports itself unconfigured and the whole sync
// surface stays a silent no-op.
const (
	placeholderSheetID = "YOUR_SHEET_ID"
	placeholderAPIKey  = "YOUR_API_KEY"
)

// Config is the environment-provided configuration of the spreadsheet
// mirror: TALLY_SHEET_ID, TALLY_SHEETS_API_KEY and optionally
// TALLY_SHEET_TAB.
type Config struct {
	SheetID string `envconfig:"SHEET_ID"`
	APIKey  string `envconfig:"SHEETS_API_KEY"`
	Tab     string `envconfig:"SHEET_TAB" default:"Transactions"`
}

// FromEnv reads the configuration from the TALLY_* environment variables.
func FromEnv() (Config, error) {
	var c Config
	if err := envconfig.Process("tally", &c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Configured reports whether both the sheet id and the API key are present
// and not placeholder sentinels. An unconfigured mirror is not an error.
func (c Config) Configured() bool {
	if c.SheetID == "" || c.SheetID == placeholderSheetID {
		return false
	}
	if c.APIKey == "" || c.APIKey == placeholderAPIKey {
		return false
	}
	return true
}
