package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dan/atelier/internal/models"
)

// ListQuery drives the customer listing request: zero-based page index, page
// size, and free-text search term.
type ListQuery struct {
	Page   int
	Size   int
	Search string
}

// Values encodes the query parameters. The q parameter is omitted entirely
// when the trimmed search term is empty, so a default listing and a search
// for "" are indistinguishable from "no filter" server-side.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("size", strconv.Itoa(q.Size))
	if s := strings.TrimSpace(q.Search); s != "" {
		v.Set("q", s)
	}
	return v
}

// Client exposes the tailoring API operations the dashboard consumes, typed
// over the Gateway.
type Client struct {
	gw *Gateway
}

// NewClient wraps a gateway with typed API operations.
func NewClient(gw *Gateway) *Client {
	return &Client{gw: gw}
}

// ListCustomers fetches one page of customers with their orders embedded.
func (c *Client) ListCustomers(ctx context.Context, q ListQuery) (*models.CustomerPage, error) {
	raw, err := c.gw.Get(ctx, "api/customers/with-orders?"+q.Values().Encode())
	if err != nil {
		return nil, err
	}
	var page models.CustomerPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("parse customer list: %w", err)
	}
	if page.TotalElements == 0 {
		page.TotalElements = len(page.Result)
	}
	return &page, nil
}

// UpdateCustomer saves the editable customer fields.
func (c *Client) UpdateCustomer(ctx context.Context, id int64, p models.CustomerPayload) error {
	_, err := c.gw.Put(ctx, fmt.Sprintf("api/customers/%d", id), p)
	return err
}

// DeleteCustomer removes a customer; the backend cascades its orders.
func (c *Client) DeleteCustomer(ctx context.Context, id int64) error {
	_, err := c.gw.Delete(ctx, fmt.Sprintf("api/customers/%d", id))
	return err
}

// CreateOrder creates an order together with its customer identity fields.
func (c *Client) CreateOrder(ctx context.Context, p models.NewOrderPayload) error {
	_, err := c.gw.Post(ctx, "api/customers/orders", p)
	return err
}

// UpdateOrder saves the editable order fields.
func (c *Client) UpdateOrder(ctx context.Context, id int64, p models.OrderPayload) error {
	_, err := c.gw.Put(ctx, fmt.Sprintf("api/customers/orders/%d", id), p)
	return err
}

// DeleteOrder removes a single order.
func (c *Client) DeleteOrder(ctx context.Context, id int64) error {
	_, err := c.gw.Delete(ctx, fmt.Sprintf("api/customers/orders/%d", id))
	return err
}

// ── Spreadsheet import ──────────────────────────────────────────────────

// MaxImportSize is the largest spreadsheet the dashboard will forward.
const MaxImportSize = 5 * 1024 * 1024

var importExtensions = []string{".xlsx", ".xls"}

// FileError reports a spreadsheet rejected client-side, before any request
// is sent.
type FileError struct {
	Filename string
	Reason   string
}

func (e *FileError) Error() string {
	return fmt.Sprintf("import %s rejected: %s", e.Filename, e.Reason)
}

// ValidateImportFile enforces the extension and size limits for spreadsheet
// uploads.
func ValidateImportFile(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	ok := false
	for _, allowed := range importExtensions {
		if ext == allowed {
			ok = true
			break
		}
	}
	if !ok {
		return &FileError{Filename: filename, Reason: "only .xlsx or .xls files can be imported"}
	}
	if size > MaxImportSize {
		return &FileError{Filename: filename, Reason: "file size must not exceed 5MB"}
	}
	return nil
}

// importResponse is the shape the backend returns for a completed import.
type importResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ImportResult describes a finished spreadsheet import. Confirmed is true
// only for the backend's explicit excel.imported acknowledgement; any other
// 2xx response still counts as a successful import.
type ImportResult struct {
	Confirmed bool
}

// ImportSpreadsheet validates the file client-side, then uploads it as a
// multipart request.
func (c *Client) ImportSpreadsheet(ctx context.Context, filename string, size int64, file io.Reader) (ImportResult, error) {
	if err := ValidateImportFile(filename, size); err != nil {
		return ImportResult{}, err
	}
	raw, err := c.gw.Upload(ctx, "api/import/upload", filename, file)
	if err != nil {
		return ImportResult{}, err
	}
	var resp importResponse
	_ = json.Unmarshal(raw, &resp)
	return ImportResult{Confirmed: resp.Status == "200" && resp.Message == "excel.imported"}, nil
}
