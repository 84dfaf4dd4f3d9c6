package dbsnp

import (
	"log"
	"net/url"
	"strings"

	"github.com/carbocation/variantkit/eutils"
)

type Client struct {
	cfg Config
	eu  *eutils.Client
}

// NewClient builds a dbSNP client on top of an E-utilities client. The
// E-utilities inter-request delay is taken from cfg.
func NewClient(cfg Config, euCfg eutils.Config) *Client {
	cfg = cfg.withDefaults()
	euCfg.InterRequestDelay = cfg.InterRequestDelay

	return &Client{cfg: cfg, eu: eutils.New(euCfg)}
}

// NewClientFrom wraps an existing E-utilities client, keeping its delay.
func NewClientFrom(cfg Config, eu *eutils.Client) *Client {
	cfg = cfg.withDefaults()
	cfg.InterRequestDelay = eu.Config().InterRequestDelay

	return &Client{cfg: cfg, eu: eu}
}

func (c *Client) Config() Config {
	return c.cfg
}

// EUtils exposes the underlying client, e.g. to stub its Sleep in tests.
func (c *Client) EUtils() *eutils.Client {
	return c.eu
}

// FetchBatch issues one efetch request for up to BatchSize ids and returns the
// raw body.
func (c *Client) FetchBatch(ids []string) ([]byte, error) {
	numeric := make([]string, 0, len(ids))
	for _, id := range ids {
		numeric = append(numeric, strings.TrimPrefix(id, IDPrefix))
	}

	return c.eu.Get("efetch.fcgi", url.Values{
		"db":      {Database},
		"id":      {strings.Join(numeric, ",")},
		"rettype": {"json"},
		"retmode": {"text"},
	})
}

// FetchBatches fetches every id, one request per batch, strictly in order. The
// first failed batch aborts the remaining ones.
func (c *Client) FetchBatches(ids []string) ([][]byte, error) {
	batches := Batches(ids, c.cfg.BatchSize)
	log.Printf("Looking up %d dbSNP ids in %d batches of up to %d\n", len(ids), len(batches), c.cfg.BatchSize)

	out := make([][]byte, 0, len(batches))
	for i, batch := range batches {
		payload, err := c.FetchBatch(batch)
		if err != nil {
			return nil, err
		}
		log.Printf("Fetched batch %d/%d (%d ids)\n", i+1, len(batches), len(batch))
		out = append(out, payload)
	}

	return out, nil
}

// Lookup fetches and flattens every id. Ids for which dbSNP has no primary
// snapshot data are simply absent from the result.
func (c *Client) Lookup(ids []string) ([]EnrichedRecord, error) {
	payloads, err := c.FetchBatches(ids)
	if err != nil {
		return nil, err
	}

	return FlattenAll(payloads, c.cfg)
}
