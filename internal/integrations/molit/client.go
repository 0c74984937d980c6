package molit

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/trade-prices/internal/config"
	"github.com/Dan9191/trade-prices/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const (
	requestTimeout = 30 * time.Second
	rowsPerPage    = "999"
)

// Client handles integration with the MOLIT apartment trade registry
type Client struct {
	url    string
	apiKey string
	http   *resty.Client
	parser Parser
	log    *logrus.Logger
}

// NewClient initializes a new registry client. The payload format is fixed
// by configuration; responses are never sniffed.
func NewClient(cfg *config.Config, log *logrus.Logger) (*Client, error) {
	if err := cfg.RequireCredential(); err != nil {
		return nil, err
	}
	parser, err := NewParser(cfg.APIFormat)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetTimeout(requestTimeout)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	client.SetHeader("accept", parser.ContentType())

	return &Client{
		url:    cfg.APIURL,
		apiKey: cfg.APIKey,
		http:   client,
		parser: parser,
		log:    log,
	}, nil
}

// sendRequest issues the GET for one district and month
func (c *Client) sendRequest(ctx context.Context, regionCode string, ym models.YearMonth) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"serviceKey": c.apiKey,
			"LAWD_CD":    regionCode,
			"DEAL_YMD":   ym.DealYMD(),
			"numOfRows":  rowsPerPage,
		}).
		Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	body := resp.Body()
	c.log.Debugf("MOLIT response for %s %s: %s", regionCode, ym.DealYMD(), string(body))
	return body, nil
}

// FetchTrades returns the trades for one district and month. Any failure is
// logged and yields an empty result; requests are never retried.
func (c *Client) FetchTrades(ctx context.Context, regionCode string, ym models.YearMonth) []models.TransactionRecord {
	entry := c.log.WithFields(logrus.Fields{"region": regionCode, "deal_ymd": ym.DealYMD()})

	body, err := c.sendRequest(ctx, regionCode, ym)
	if err != nil {
		entry.Errorf("MOLIT API call failed: %v", err)
		return nil
	}

	records, err := Parse(c.parser, body, regionCode)
	if err != nil {
		entry.Errorf("Failed to parse MOLIT response: %v", err)
		return nil
	}

	entry.Infof("Fetched %d trades", len(records))
	return records
}
