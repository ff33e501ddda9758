package testcatalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// generateMatchQuery builds a random match query from the same attribute pools
// the generator uses, so most queries hit real catalog entries.
func generateMatchQuery() MatchQuery {
	numWindows := 1 + getRandomInt(2)
	windows := make([]string, numWindows)
	for i := range windows {
		windows[i] = dayPool[getRandomInt(len(dayPool))] + " " + windowPool[getRandomInt(len(windowPool))]
	}

	query := MatchQuery{
		Topic:            topicPool[getRandomInt(len(topicPool))],
		RequestedWindows: windows,
	}

	// Roughly half of the queries express a language preference
	if getRandomInt(2) == 0 {
		query.PreferredLanguages = []string{languagePool[getRandomInt(len(languagePool))]}
	}
	if getRandomInt(2) == 0 {
		query.Location = fmt.Sprintf("%d", getRandomInt(maxLocation))
	}

	return query
}

// fireMatchQueries runs match queries concurrently and verifies result ordering.
func fireMatchQueries(ctx context.Context, config *Config, stats *Stats) error {
	log.Printf("🔎 Firing %d match queries with %d workers...", config.NumMatches, config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/match"

	var (
		fired      int64
		succeeded  int64
		failed     int64
		violations int64
		nonEmpty   int64
	)

	var lastReport time.Time
	reportInterval := 1 * time.Second

	queryChan := make(chan MatchQuery, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for query := range queryChan {
				select {
				case <-ctx.Done():
					return
				default:
					entries, err := fireSingleMatch(client, url, query)
					atomic.AddInt64(&fired, 1)

					if err != nil {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							log.Printf("⚠️  Match query for %q failed: %v", query.Topic, err)
						}
					} else {
						atomic.AddInt64(&succeeded, 1)
						if len(entries) > 0 {
							atomic.AddInt64(&nonEmpty, 1)
						}
						if err := checkMatchOrdering(entries); err != nil {
							atomic.AddInt64(&violations, 1)
							log.Printf("⚠️  Ordering violation for topic %q: %v", query.Topic, err)
						}
					}

					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						log.Printf("📊 Match progress: %d/%d fired (ok: %d, failed: %d)",
							atomic.LoadInt64(&fired), config.NumMatches,
							atomic.LoadInt64(&succeeded), atomic.LoadInt64(&failed))
					}
				}
			}
		}()
	}

	go func() {
		defer close(queryChan)
		for i := 0; i < config.NumMatches; i++ {
			select {
			case <-ctx.Done():
				return
			case queryChan <- generateMatchQuery():
			}
		}
	}()

	wg.Wait()

	stats.MatchesFired = int(atomic.LoadInt64(&fired))
	stats.MatchesSucceeded = int(atomic.LoadInt64(&succeeded))
	stats.MatchesFailed = int(atomic.LoadInt64(&failed))
	stats.OrderingViolations = int(atomic.LoadInt64(&violations))

	log.Printf(`✅ Match queries completed:
   Succeeded: %d
   Failed: %d
   Non-empty results: %d
   Ordering violations: %d
`, stats.MatchesSucceeded, stats.MatchesFailed, int(atomic.LoadInt64(&nonEmpty)), stats.OrderingViolations)

	if stats.OrderingViolations > 0 {
		return fmt.Errorf("%d match responses were not sorted by confidence", stats.OrderingViolations)
	}
	return nil
}

// fireSingleMatch posts one match query and decodes the ranked result list.
func fireSingleMatch(client *HTTPClient, url string, query MatchQuery) ([]MatchEntry, error) {
	resp, err := client.Post(url, query)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var entries []MatchEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return entries, nil
}

// checkMatchOrdering verifies a result list is sorted by confidence descending
// and contains no zero-confidence entries.
func checkMatchOrdering(entries []MatchEntry) error {
	for i, entry := range entries {
		if entry.Confidence == 0 {
			return fmt.Errorf("entry %d (%s) has zero confidence", i, entry.Instructor.ID)
		}
		if i > 0 && entry.Confidence > entries[i-1].Confidence {
			return fmt.Errorf("entry %d has higher confidence (%.3f) than entry %d (%.3f)",
				i, entry.Confidence, i-1, entries[i-1].Confidence)
		}
	}
	return nil
}
