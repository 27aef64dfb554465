// Package sheet talks to a spreadsheet-backed row store through the
// query-parameter RPC convention (FN=ReadAll|Create|Update|Delete).
//
// Rows are addressed by position handles: the 1-based offset of a row among
// the data rows of a collection. Handles are only meaningful inside the
// snapshot they were read from. Any insert or delete shifts them, so callers
// re-read before every mutation and check the handle with [Snapshot.Verify].
package sheet

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds a single request when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Options configures a Client for one collection (one sheet tab).
type Options struct {
	Endpoint       string // Script endpoint URL
	CollectionID   string // Spreadsheet ID (SHEETID)
	CollectionName string // Sheet tab name (SHEETNAME)

	// HTTPClient is used for all requests. Defaults to a new http.Client.
	HTTPClient *http.Client

	// Timeout bounds each request. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// Validate reports every missing or malformed option.
func (o Options) Validate() error {
	var errs []string

	if strings.TrimSpace(o.Endpoint) == "" {
		errs = append(errs, "endpoint is required")
	} else if u, err := url.Parse(o.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("endpoint %q must be an absolute URL", o.Endpoint))
	}
	if strings.TrimSpace(o.CollectionID) == "" {
		errs = append(errs, "collection id is required")
	}
	if strings.TrimSpace(o.CollectionName) == "" {
		errs = append(errs, "collection name is required")
	}
	if o.Timeout < 0 {
		errs = append(errs, "timeout must be non-negative")
	}

	if len(errs) > 0 {
		return errors.New("sheet options: " + strings.Join(errs, "; "))
	}
	return nil
}

// WithCollection returns a copy of o addressing another sheet tab of the
// same spreadsheet.
func (o Options) WithCollection(name string) Options {
	o.CollectionName = name
	return o
}
