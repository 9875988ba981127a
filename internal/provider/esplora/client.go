// Package esplora implements the blockchain-data provider contract against
// an Esplora-compatible HTTP API.
package esplora

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/ratelimit"

	"github.com/forensiclabs/utxoscope-backend/internal/model"
	"github.com/forensiclabs/utxoscope-backend/internal/provider"
)

type (
	// Metrics records outcomes of Esplora calls.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// Config carries the knobs for constructing a Client.
type Config struct {
	BaseURL string
	// MaxRPS caps requests per second against the instance. Zero disables
	// the cap; public instances should run with one.
	MaxRPS  int
	Timeout time.Duration
}

// Client talks to an Esplora-compatible HTTP API.
type Client struct {
	http    *resty.Client
	limiter ratelimit.Limiter
	metrics Metrics
}

// NewClient constructs an Esplora client.
func NewClient(cfg Config, metrics Metrics) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base url is required")
	}
	if metrics == nil {
		return nil, errors.New("metrics is required")
	}

	limiter := ratelimit.NewUnlimited()
	if cfg.MaxRPS > 0 {
		limiter = ratelimit.New(cfg.MaxRPS)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		http:    httpClient,
		limiter: limiter,
		metrics: metrics,
	}, nil
}

// Transaction fetches one transaction record.
func (c *Client) Transaction(ctx context.Context, txid string) (_ model.Transaction, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("get_transaction", err, started)
	}()

	c.limiter.Take()

	var dto transactionDTO
	resp, callErr := c.http.R().
		SetContext(ctx).
		SetResult(&dto).
		Get("/tx/" + url.PathEscape(txid))
	if err = classify(resp, callErr); err != nil {
		return model.Transaction{}, fmt.Errorf("fetch transaction %s: %w", txid, err)
	}

	tx, convErr := convertTransaction(dto)
	if convErr != nil {
		err = fmt.Errorf("convert transaction %s: %w", txid, convErr)
		return model.Transaction{}, err
	}
	return tx, nil
}

// OutputSpendStatus reports whether the output at index has been spent. The
// whole outspends array is fetched; an index past its end is the caller
// asking about an output the transaction does not have.
func (c *Client) OutputSpendStatus(ctx context.Context, txid string, index uint32) (_ model.SpendStatus, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("get_outspends", err, started)
	}()

	c.limiter.Take()

	var dtos []outspendDTO
	resp, callErr := c.http.R().
		SetContext(ctx).
		SetResult(&dtos).
		Get("/tx/" + url.PathEscape(txid) + "/outspends")
	if err = classify(resp, callErr); err != nil {
		return model.SpendStatus{}, fmt.Errorf("fetch outspends %s: %w", txid, err)
	}

	if uint64(index) >= uint64(len(dtos)) {
		err = fmt.Errorf("outspend %s:%d: %w", txid, index, provider.ErrOutOfRange)
		return model.SpendStatus{}, err
	}
	return convertSpendStatus(dtos[index]), nil
}

// AddressTransactions returns one history page for an address, most recent
// first. An empty cursor requests the newest page; the returned NextCursor
// feeds the next call and is empty once the history is exhausted.
func (c *Client) AddressTransactions(ctx context.Context, address, cursor string) (_ model.AddressTxPage, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("get_address_txs", err, started)
	}()

	c.limiter.Take()

	path := "/address/" + url.PathEscape(address) + "/txs"
	if cursor != "" {
		path += "/chain/" + url.PathEscape(cursor)
	}

	var dtos []transactionDTO
	resp, callErr := c.http.R().
		SetContext(ctx).
		SetResult(&dtos).
		Get(path)
	if err = classify(resp, callErr); err != nil {
		return model.AddressTxPage{}, fmt.Errorf("fetch address txs %s: %w", address, err)
	}

	page := model.AddressTxPage{Txs: make([]model.Transaction, 0, len(dtos))}
	for _, dto := range dtos {
		tx, convErr := convertTransaction(dto)
		if convErr != nil {
			err = fmt.Errorf("convert address tx %s: %w", dto.TxID, convErr)
			return model.AddressTxPage{}, err
		}
		page.Txs = append(page.Txs, tx)
	}
	if len(dtos) >= chainPageSize {
		page.NextCursor = dtos[len(dtos)-1].TxID
	}
	return page, nil
}

// AddressStats returns aggregate confirmed totals for an address.
func (c *Client) AddressStats(ctx context.Context, address string) (_ model.AddressStats, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("get_address_stats", err, started)
	}()

	c.limiter.Take()

	var dto addressDTO
	resp, callErr := c.http.R().
		SetContext(ctx).
		SetResult(&dto).
		Get("/address/" + url.PathEscape(address))
	if err = classify(resp, callErr); err != nil {
		return model.AddressStats{}, fmt.Errorf("fetch address stats %s: %w", address, err)
	}

	return model.AddressStats{
		Address:    address,
		TxCount:    dto.ChainStats.TxCount,
		FundedSats: dto.ChainStats.FundedTxoSum,
		SpentSats:  dto.ChainStats.SpentTxoSum,
	}, nil
}

// classify maps a call outcome onto the shared provider error taxonomy.
func classify(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %v", provider.ErrUnavailable, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return provider.ErrNotFound
	}
	if resp.IsError() {
		return fmt.Errorf("%w: status %d", provider.ErrUnavailable, resp.StatusCode())
	}
	return nil
}
