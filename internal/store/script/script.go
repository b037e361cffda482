package script

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"sportsmeet-portal/internal/models"
)

const DefaultSubmitMessage = "Registration submitted successfully."

var (
	ErrInvalidResponse = errors.New("server returned invalid JSON")
	ErrRejected        = errors.New("script rejected the submission")
)

// StatusError is a non-2xx reply from the script endpoint.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d", e.Code)
}

// Client talks to a spreadsheet automation web app (Apps Script style):
// POST stores a roster, GET ?action=export returns every row as JSON objects.
type Client struct {
	endpoint string
	client   *http.Client
}

func New(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Name() string { return "script" }

type submitResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (c *Client) Submit(ctx context.Context, sub models.Submission) (string, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return "", fmt.Errorf("encode submission: %w", err)
	}

	raw, err := c.do(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	var resp submitResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidResponse, truncate(raw))
	}
	// the script reports its own failures with a 200 and status "error"
	if strings.EqualFold(strings.TrimSpace(resp.Status), "error") {
		return "", fmt.Errorf("%w: %s", ErrRejected, resp.Message)
	}
	if strings.TrimSpace(resp.Message) == "" {
		return DefaultSubmitMessage, nil
	}
	return resp.Message, nil
}

func (c *Client) Export(ctx context.Context) (models.Table, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return models.Table{}, fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("action", "export")
	u.RawQuery = q.Encode()

	raw, err := c.do(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return models.Table{}, err
	}

	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return models.Table{}, fmt.Errorf("%w: %s", ErrInvalidResponse, truncate(raw))
	}
	return tableFromRecords(records), nil
}

func (c *Client) do(ctx context.Context, method, target string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(raw)}
	}
	return raw, nil
}

// tableFromRecords puts the known registration columns first, then any
// other keys in name order.
func tableFromRecords(records []map[string]any) models.Table {
	present := map[string]bool{}
	for _, r := range records {
		for k := range r {
			present[k] = true
		}
	}

	header := []string{}
	for _, col := range models.RegistrationColumns {
		if present[col] {
			header = append(header, col)
			delete(present, col)
		}
	}
	extra := make([]string, 0, len(present))
	for k := range present {
		extra = append(extra, k)
	}
	sort.Strings(extra)
	header = append(header, extra...)

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		row := make([]string, len(header))
		for i, h := range header {
			row[i] = cell(r[h])
		}
		rows = append(rows, row)
	}
	return models.Table{Header: header, Rows: rows}
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func truncate(b []byte) string {
	const limit = 200
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
