package sheets

import (
	"context"
	"fmt"
	"strings"

	sheetsv4 "google.golang.org/api/sheets/v4"

	"sportsmeet-portal/internal/models"
)

const submitMessage = "Registration submitted successfully."

func (c *Client) a1() string {
	return c.sheet + "!A:Z"
}

func (c *Client) readAll(ctx context.Context) ([][]interface{}, error) {
	resp, err := c.srv.Spreadsheets.Values.Get(c.spreadsheetID, c.a1()).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (c *Client) appendRows(ctx context.Context, rows [][]interface{}) error {
	vr := &sheetsv4.ValueRange{Values: rows}
	_, err := c.srv.Spreadsheets.Values.Append(c.spreadsheetID, c.a1(), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

// EnsureHeader writes the column names when the sheet is still empty. The
// sheet is read only until a header is known to exist.
func (c *Client) EnsureHeader(ctx context.Context) error {
	c.headerMu.Lock()
	defer c.headerMu.Unlock()
	if c.headerReady {
		return nil
	}

	values, err := c.readAll(ctx)
	if err != nil {
		return fmt.Errorf("read %s: %w", c.sheet, err)
	}
	if len(values) == 0 {
		if err := c.appendRows(ctx, [][]interface{}{toRow(models.RegistrationColumns)}); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	c.headerReady = true
	return nil
}

// Submit appends one row per participant in a single call, so a roster is
// either stored whole or not at all.
func (c *Client) Submit(ctx context.Context, sub models.Submission) (string, error) {
	if err := c.EnsureHeader(ctx); err != nil {
		return "", err
	}
	rows := make([][]interface{}, 0, len(sub.Participants))
	for _, r := range sub.Rows() {
		rows = append(rows, toRow(r))
	}
	if err := c.appendRows(ctx, rows); err != nil {
		return "", fmt.Errorf("append registrations: %w", err)
	}
	return submitMessage, nil
}

// Export reads the whole sheet; the first row is the header.
func (c *Client) Export(ctx context.Context) (models.Table, error) {
	values, err := c.readAll(ctx)
	if err != nil {
		return models.Table{}, fmt.Errorf("read %s: %w", c.sheet, err)
	}
	tb := models.Table{Header: []string{}, Rows: [][]string{}}
	if len(values) == 0 {
		return tb, nil
	}

	for i := range values[0] {
		tb.Header = append(tb.Header, strings.TrimSpace(get(values[0], i)))
	}
	// header row at index 0
	for i := 1; i < len(values); i++ {
		row := values[i]
		if len(row) == 0 {
			continue
		}
		out := make([]string, len(tb.Header))
		for j := range out {
			out[j] = get(row, j)
		}
		tb.Rows = append(tb.Rows, out)
	}
	return tb, nil
}

func toRow(cells []string) []interface{} {
	out := make([]interface{}, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}

func get(row []interface{}, idx int) string {
	if idx < 0 || idx >= len(row) || row[idx] == nil {
		return ""
	}
	return fmt.Sprint(row[idx])
}
