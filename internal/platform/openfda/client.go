// Package openfda queries the openFDA adverse-event API, the external
// evidence feed for drug-pair reconciliation. Its output is aggregated report
// statistics, not authoritative clinical fact.
package openfda

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Reaction is one adverse-reaction term with its report count.
type Reaction struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// Summary aggregates adverse-event reports mentioning both drugs of a pair.
// It is recomputed per query and never persisted.
type Summary struct {
	Found        bool       `json:"found"`
	TopReactions []Reaction `json:"top_reactions"`
	TotalReports int        `json:"total_reports"`
}

const reactionLimit = 10

type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	logger  zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		timeout: timeout,
		logger:  logger.With().Str("component", "openfda").Logger(),
	}
}

// drugClause matches reports naming the drug by product name or, when an
// RxCUI is available, by its RxNorm identifier. The OR widens recall for
// reports that carry one field but not the other.
func drugClause(name, rxcui string) string {
	var sb strings.Builder
	sb.WriteString(`(patient.drug.medicinalproduct:"`)
	sb.WriteString(name)
	sb.WriteString(`"`)
	if rxcui != "" {
		sb.WriteString(` OR patient.drug.openfda.rxcui:"`)
		sb.WriteString(rxcui)
		sb.WriteString(`"`)
	}
	sb.WriteString(")")
	return sb.String()
}

type countResponse struct {
	Results []struct {
		Term  string `json:"term"`
		Count int    `json:"count"`
	} `json:"results"`
}

// QueryAdverseEvents counts the top adverse-reaction terms across reports
// that mention both drugs. RxCUIs are optional; the pair is still attempted
// with names alone. A 404 from the API means no matching reports and is not
// an error.
func (c *Client) QueryAdverseEvents(ctx context.Context, nameA, nameB, rxcuiA, rxcuiB string) (*Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("search", drugClause(nameA, rxcuiA)+" AND "+drugClause(nameB, rxcuiB))
	q.Set("count", "patient.reaction.reactionmeddrapt.exact")
	q.Set("limit", fmt.Sprintf("%d", reactionLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openfda request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &Summary{Found: false}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openfda request: unexpected status %d", resp.StatusCode)
	}

	var body countResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode openfda response: %w", err)
	}

	summary := &Summary{Found: true}
	for _, item := range body.Results {
		summary.TopReactions = append(summary.TopReactions, Reaction{
			Term:  strings.ToUpper(item.Term),
			Count: item.Count,
		})
		summary.TotalReports += item.Count
	}
	return summary, nil
}
