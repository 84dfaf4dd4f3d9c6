package dbsnp

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/carbocation/variantkit/eutils"
)

func newTestClient(srv *httptest.Server, batchSize int) (*Client, *int) {
	cfg := DefaultConfig()
	cfg.BatchSize = batchSize

	euCfg := eutils.DefaultConfig()
	euCfg.BaseURL = srv.URL
	euCfg.HTTPClient = srv.Client()

	c := NewClient(cfg, euCfg)
	waits := 0
	c.EUtils().Sleep = func(d time.Duration) {
		if d != cfg.InterRequestDelay {
			panic(fmt.Sprintf("unexpected wait %s", d))
		}
		waits++
	}

	return c, &waits
}

func TestLookup(t *testing.T) {
	requested := make([]string, 0)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("db") != "snp" || q.Get("rettype") != "json" || q.Get("retmode") != "text" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		requested = append(requested, q.Get("id"))
		for _, id := range strings.Split(q.Get("id"), ",") {
			if id == "404" {
				// No primary snapshot for this one
				fmt.Fprintf(w, `{"refsnp_id":"%s"}`, id)
				continue
			}
			fmt.Fprint(w, fragment(id, "snv", allele(clinical("pathogenic", "germline", "Disease "+id))))
		}
	}))
	defer srv.Close()

	c, waits := newTestClient(srv, 2)
	recs, err := c.Lookup([]string{"rs1", "rs2", "rs1", "rs404", "rs3"})
	if err != nil {
		t.Fatal(err)
	}

	if strings.Join(requested, "|") != "1,2|404,3" {
		t.Fatalf("unexpected requests %v", requested)
	}
	if *waits != 2 {
		t.Fatalf("expected 2 waits, got %d", *waits)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d: %+v", len(recs), recs)
	}
	if recs[2].ExternalID != "rs3" || recs[2].Diseases != "Disease 3" {
		t.Fatalf("unexpected record %+v", recs[2])
	}
}

func TestFetchBatchesAbortsOnFailure(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	c, _ := newTestClient(srv, 1)
	payloads, err := c.FetchBatches([]string{"rs1", "rs2", "rs3", "rs4"})

	var rre *eutils.RemoteRequestError
	if !errors.As(err, &rre) {
		t.Fatalf("expected RemoteRequestError, got %v", err)
	}
	if payloads != nil {
		t.Fatalf("expected no partial results, got %d payloads", len(payloads))
	}
	if calls != 2 {
		t.Fatalf("expected lookup to stop after the failed batch, saw %d calls", calls)
	}
}

func TestFetchBatchesTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c, waits := newTestClient(srv, 1)
	srv.Close()

	payloads, err := c.FetchBatches([]string{"rs1", "rs2", "rs3"})

	var rre *eutils.RemoteRequestError
	if !errors.As(err, &rre) {
		t.Fatalf("expected RemoteRequestError, got %v", err)
	}
	if rre.StatusCode != 0 {
		t.Fatalf("expected no status for a transport failure, got %d", rre.StatusCode)
	}
	if payloads != nil {
		t.Fatalf("expected no payloads, got %d", len(payloads))
	}
	if *waits != 1 || c.EUtils().Requests() != 1 {
		t.Fatalf("expected lookup to stop after the first batch, saw %d waits and %d requests", *waits, c.EUtils().Requests())
	}
}
