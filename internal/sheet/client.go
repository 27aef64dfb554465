package sheet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// RPC function names understood by the endpoint.
const (
	FnReadAll = "ReadAll"
	FnCreate  = "Create"
	FnUpdate  = "Update"
	FnDelete  = "Delete"
)

// maxErrorBody caps how much of a failed response is kept in StatusError.
const maxErrorBody = 1 << 12

// Client issues row operations against one collection.
type Client struct {
	opts Options
	base *url.URL
	http *http.Client
}

// New validates opts and returns a Client.
func New(opts Options) (*Client, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	base, err := url.Parse(opts.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{opts: opts, base: base, http: hc}, nil
}

// Collection returns the sheet tab name this client addresses.
func (c *Client) Collection() string {
	return c.opts.CollectionName
}

// ReadAll fetches the whole collection and maps it into a snapshot.
func (c *Client) ReadAll(ctx context.Context) (*Snapshot, error) {
	body, err := c.do(ctx, FnReadAll, nil)
	if err != nil {
		return nil, err
	}

	table, err := decodeTable(body)
	if err != nil {
		return nil, fmt.Errorf("sheet %s %s: %w: %v", FnReadAll, c.Collection(), ErrDecode, err)
	}
	return MapRows(c.Collection(), table), nil
}

// Create appends one row. values must follow the collection's column order.
func (c *Client) Create(ctx context.Context, values []any) error {
	data, err := encodeValues(values)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, FnCreate, url.Values{"DATA": {data}})
	return err
}

// Update overwrites every value of the row at handle.
func (c *Client) Update(ctx context.Context, handle int, values []any) error {
	if handle < 1 {
		return fmt.Errorf("sheet %s %s: %w: %d", FnUpdate, c.Collection(), ErrInvalidHandle, handle)
	}
	data, err := encodeValues(values)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, FnUpdate, url.Values{
		"ROWID": {strconv.Itoa(handle)},
		"DATA":  {data},
	})
	return err
}

// Delete removes the row at handle. Every later row moves up by one.
func (c *Client) Delete(ctx context.Context, handle int) error {
	if handle < 1 {
		return fmt.Errorf("sheet %s %s: %w: %d", FnDelete, c.Collection(), ErrInvalidHandle, handle)
	}
	_, err := c.do(ctx, FnDelete, url.Values{"ROWID": {strconv.Itoa(handle)}})
	return err
}

// requestURL builds the endpoint URL for fn with the collection parameters
// and any extra parameters.
func (c *Client) requestURL(fn string, extra url.Values) string {
	u := *c.base
	q := u.Query()
	q.Set("FN", fn)
	q.Set("SHEETID", c.opts.CollectionID)
	q.Set("SHEETNAME", c.opts.CollectionName)
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *Client) do(ctx context.Context, fn string, extra url.Values) (body []byte, err error) {
	start := time.Now()
	defer func() { observe(fn, c.Collection(), start, err) }()

	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(fn, extra), nil)
	if err != nil {
		return nil, fmt.Errorf("sheet %s %s: %w", fn, c.Collection(), err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheet %s %s: %w", fn, c.Collection(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			Op:         fn,
			Collection: c.Collection(),
			Code:       resp.StatusCode,
			Body:       strings.TrimSpace(string(msg)),
		}
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("sheet %s %s: read body: %w", fn, c.Collection(), err)
	}

	slog.Debug("sheet request",
		"fn", fn,
		"collection", c.Collection(),
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return body, nil
}

// encodeValues renders a row as the JSON array carried in DATA.
func encodeValues(values []any) (string, error) {
	if values == nil {
		values = []any{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(values); err != nil {
		return "", fmt.Errorf("encode row: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// decodeTable parses a 2D JSON array and normalises every cell to a string.
func decodeTable(body []byte) ([][]string, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw [][]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	table := make([][]string, len(raw))
	for i, row := range raw {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = CellString(cell)
		}
		table[i] = cells
	}
	return table, nil
}

// CellString converts a decoded JSON cell to its string form.
func CellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
