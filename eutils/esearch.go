package eutils

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
)

// DefaultRetMax is the largest page esearch will return without paging.
const DefaultRetMax = 10000

type esearchResponse struct {
	Result struct {
		Count     string   `json:"count"`
		IDList    []string `json:"idlist"`
		ErrorList *struct {
			PhraseNotFound []string `json:"phrasesnotfound"`
			FieldNotFound  []string `json:"fieldsnotfound"`
		} `json:"errorlist"`
	} `json:"esearchresult"`
	Error string `json:"error"`
}

// Search runs an esearch query against db and returns the matching UIDs.
func (c *Client) Search(db, term string, retMax int) ([]string, error) {
	if retMax <= 0 {
		retMax = DefaultRetMax
	}

	body, err := c.Get("esearch.fcgi", url.Values{
		"db":      {db},
		"term":    {term},
		"retmode": {"json"},
		"retmax":  {strconv.Itoa(retMax)},
	})
	if err != nil {
		return nil, err
	}

	var out esearchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, pfx.Err(fmt.Errorf("esearch db=%s: %w", db, err))
	}
	if out.Error != "" {
		return nil, pfx.Err(fmt.Errorf("esearch db=%s: %s", db, out.Error))
	}

	return out.Result.IDList, nil
}

// PathogenicGeneTerm builds the Entrez query for pathogenic variants of gene.
func PathogenicGeneTerm(gene string) string {
	return strings.TrimSpace(gene) + "[Gene Name] AND pathogenic[Clinical_Significance]"
}
