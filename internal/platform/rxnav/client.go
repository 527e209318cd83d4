// Package rxnav is a client for the RxNav REST API, the external nomenclature
// source for canonical drug concepts. Concepts are owned by RxNav; this
// service only references them by RxCUI and never mints its own.
package rxnav

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// ErrNotFound is returned when RxNav has no concept for the given identifier.
var ErrNotFound = errors.New("rxnav: concept not found")

// Concept is a canonical drug identity as published by RxNav.
type Concept struct {
	RxCUI    string `json:"rxcui"`
	Name     string `json:"name"`
	Synonyms string `json:"synonyms,omitempty"`
}

// Match is an approximate-search hit with RxNav's 0-100 match score.
type Match struct {
	RxCUI string `json:"rxcui"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

const approximateMaxEntries = 10

type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	logger  zerolog.Logger
}

// NewClient builds a client against the given RxNav base URL. Every call gets
// its own deadline derived from timeout so one stalled lookup cannot block an
// entire resolution.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		timeout: timeout,
		logger:  logger.With().Str("component", "rxnav").Logger(),
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("rxnav request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rxnav request %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode rxnav response: %w", err)
	}
	return nil
}

type approximateResponse struct {
	ApproximateGroup struct {
		Candidate []struct {
			RxCUI string `json:"rxcui"`
			Name  string `json:"name"`
			Score string `json:"score"`
		} `json:"candidate"`
	} `json:"approximateGroup"`
}

// ApproximateSearch performs a fuzzy concept lookup, useful for typos.
// Candidates missing a display name are backfilled via DisplayName on a
// best-effort basis.
func (c *Client) ApproximateSearch(ctx context.Context, term string) ([]Match, error) {
	q := url.Values{}
	q.Set("term", term)
	q.Set("maxEntries", strconv.Itoa(approximateMaxEntries))

	var resp approximateResponse
	if err := c.get(ctx, "/approximateTerm.json", q, &resp); err != nil {
		return nil, err
	}

	var matches []Match
	for _, cand := range resp.ApproximateGroup.Candidate {
		if cand.RxCUI == "" {
			continue
		}
		name := cand.Name
		if name == "" {
			resolved, err := c.DisplayName(ctx, cand.RxCUI)
			if err != nil {
				c.logger.Warn().Str("rxcui", cand.RxCUI).Err(err).Msg("name backfill failed")
				name = "Drug " + cand.RxCUI
			} else {
				name = resolved
			}
		}
		score := 0
		if f, err := strconv.ParseFloat(cand.Score, 64); err == nil {
			score = int(f)
		}
		matches = append(matches, Match{RxCUI: cand.RxCUI, Name: name, Score: score})
	}
	return matches, nil
}

type drugsResponse struct {
	DrugGroup struct {
		ConceptGroup []struct {
			ConceptProperties []struct {
				RxCUI   string `json:"rxcui"`
				Name    string `json:"name"`
				Synonym string `json:"synonym"`
			} `json:"conceptProperties"`
		} `json:"conceptGroup"`
	} `json:"drugGroup"`
}

// ExactSearch looks up concepts whose name matches the term exactly.
func (c *Client) ExactSearch(ctx context.Context, term string) ([]Concept, error) {
	q := url.Values{}
	q.Set("name", term)

	var resp drugsResponse
	if err := c.get(ctx, "/drugs.json", q, &resp); err != nil {
		return nil, err
	}

	var concepts []Concept
	for _, group := range resp.DrugGroup.ConceptGroup {
		for _, prop := range group.ConceptProperties {
			concepts = append(concepts, Concept{
				RxCUI:    prop.RxCUI,
				Name:     prop.Name,
				Synonyms: prop.Synonym,
			})
		}
	}
	return concepts, nil
}

type propertiesResponse struct {
	Properties struct {
		Name string `json:"name"`
	} `json:"properties"`
}

// DisplayName resolves an RxCUI to its canonical display name.
func (c *Client) DisplayName(ctx context.Context, rxcui string) (string, error) {
	var resp propertiesResponse
	if err := c.get(ctx, "/rxcui/"+url.PathEscape(rxcui)+"/properties.json", nil, &resp); err != nil {
		return "", err
	}
	if resp.Properties.Name == "" {
		return "", ErrNotFound
	}
	return resp.Properties.Name, nil
}
