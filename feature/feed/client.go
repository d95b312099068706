package feed

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"inventory-sync/core/reconcile"
	"inventory-sync/core/retry"

	"go.uber.org/zap"
)

// Client downloads and parses the vendor's inventory feed.
type Client struct {
	cfg    Config
	http   *http.Client
	policy retry.Policy
	log    *zap.Logger
}

// NewClient creates a feed client with strict transport timeouts.
func NewClient(cfg Config, policy retry.Policy, log *zap.Logger) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: 10 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
		IdleConnTimeout:       90 * time.Second,
	}

	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: transport,
			Timeout:   timeoutDuration,
		},
		policy: policy,
		log:    log,
	}
}

// Fetch downloads the feed, parses it, and returns records matching the
// configured SKU prefix, in first-seen order with last-occurrence
// quantities. An empty feed is valid and yields zero records.
func (c *Client) Fetch(ctx context.Context) ([]reconcile.FeedRecord, error) {
	var body []byte
	attempts, err := c.policy.Do(ctx, func(ctx context.Context) error {
		data, err := c.download(ctx)
		if err != nil {
			return err
		}
		body = data
		return nil
	})
	if err != nil {
		if _, ok := err.(*FetchError); !ok {
			err = &FetchError{Err: err}
		}
		return nil, err
	}

	records, err := c.parse(body)
	if err != nil {
		return nil, err
	}

	matched := c.dedupe(c.filter(records))

	c.log.Info("feed fetched",
		zap.Int("records", len(records)),
		zap.Int("matched", len(matched)),
		zap.Int("attempts", attempts))

	return matched, nil
}

// download performs one authenticated GET against the feed endpoint.
func (c *Client) download(ctx context.Context) ([]byte, error) {
	endpoint := c.cfg.URL
	if c.cfg.Username == "" && c.cfg.Token != "" {
		sep := "?"
		if strings.Contains(endpoint, "?") {
			sep = "&"
		}
		endpoint += sep + "token=" + c.cfg.Token
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	if c.cfg.Username != "" {
		req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Status: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Err: err}
	}

	return data, nil
}

// product mirrors one feed entry. Vendors disagree on the quantity element
// name, so both are accepted with qty taking precedence.
type product struct {
	SKU   string  `xml:"sku"`
	Qty   *string `xml:"qty"`
	Stock *string `xml:"stock"`
}

// parse extracts records by scanning for product elements, so the document's
// root element name does not matter. A document without any product element
// is an empty feed, not an error.
func (c *Client) parse(data []byte) ([]reconcile.FeedRecord, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	var records []reconcile.FeedRecord
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Reason: "malformed-xml", Err: err}
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "product" {
			continue
		}

		var p product
		if err := decoder.DecodeElement(&p, &start); err != nil {
			return nil, &ParseError{Reason: "malformed-xml", Err: err}
		}

		sku := strings.TrimSpace(p.SKU)
		if sku == "" {
			return nil, &ParseError{Reason: "missing-field"}
		}

		records = append(records, reconcile.FeedRecord{
			SKU:      sku,
			Quantity: c.quantity(sku, p),
		})
	}

	return records, nil
}

// quantity resolves the stock count for one product. A missing or
// unparseable value defaults to zero; that is a policy decision and is
// logged rather than silently applied.
func (c *Client) quantity(sku string, p product) int {
	raw := p.Qty
	if raw == nil {
		raw = p.Stock
	}
	if raw == nil {
		c.log.Warn("feed product has no quantity field, defaulting to 0", zap.String("sku", sku))
		return 0
	}

	qty, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil {
		c.log.Warn("feed quantity not a number, defaulting to 0",
			zap.String("sku", sku),
			zap.String("raw", *raw))
		return 0
	}
	if qty < 0 {
		c.log.Warn("feed quantity negative, clamping to 0",
			zap.String("sku", sku),
			zap.Int("raw", qty))
		return 0
	}

	return qty
}

// filter drops records whose SKU does not carry the vendor prefix.
// Dropping is expected, not an error, so it stays quiet.
func (c *Client) filter(records []reconcile.FeedRecord) []reconcile.FeedRecord {
	if c.cfg.SKUPrefix == "" {
		return records
	}

	matched := make([]reconcile.FeedRecord, 0, len(records))
	for _, record := range records {
		if strings.HasPrefix(record.SKU, c.cfg.SKUPrefix) {
			matched = append(matched, record)
		}
	}
	return matched
}

// dedupe collapses duplicate SKUs: the last occurrence's quantity wins, the
// first occurrence's position is kept.
func (c *Client) dedupe(records []reconcile.FeedRecord) []reconcile.FeedRecord {
	seen := make(map[string]int, len(records))
	out := make([]reconcile.FeedRecord, 0, len(records))

	for _, record := range records {
		if i, ok := seen[record.SKU]; ok {
			c.log.Debug("duplicate sku in feed, last value wins",
				zap.String("sku", record.SKU),
				zap.Int("quantity", record.Quantity))
			out[i].Quantity = record.Quantity
			continue
		}
		seen[record.SKU] = len(out)
		out = append(out, record)
	}

	return out
}
