package testcatalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(url string) (*http.Response, error) {
	return c.client.Get(url)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitInstructors registers instructors concurrently using worker pools
func submitInstructors(ctx context.Context, config *Config, instructors []Instructor, stats *Stats) error {
	log.Printf("📤 Registering %d instructors with %d workers...", len(instructors), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/instructors"

	// Counters for statistics
	var (
		accepted  int64
		duplicate int64
		failed    int64
		submitted int64
	)

	// Progress reporting
	var lastReport time.Time
	reportInterval := 1 * time.Second

	// Create worker pool
	instructorChan := make(chan Instructor, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for instructor := range instructorChan {
				select {
				case <-ctx.Done():
					return
				default:
					result := submitSingleInstructor(client, url, instructor)

					// Update counters
					atomic.AddInt64(&submitted, 1)
					switch result {
					case "accepted":
						atomic.AddInt64(&accepted, 1)
					case "duplicate":
						atomic.AddInt64(&duplicate, 1)
					case "failed":
						atomic.AddInt64(&failed, 1)
					}

					// Progress reporting
					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						total := atomic.LoadInt64(&submitted)
						acc := atomic.LoadInt64(&accepted)
						dup := atomic.LoadInt64(&duplicate)
						fail := atomic.LoadInt64(&failed)

						if config.Verbose {
							log.Printf("📊 Progress: %d/%d registered (accepted: %d, duplicate: %d, failed: %d)",
								total, len(instructors), acc, dup, fail)
						} else {
							fmt.Printf("\r📤 Registered: %d/%d (accepted: %d, duplicate: %d, failed: %d)",
								total, len(instructors), acc, dup, fail)
						}
					}
				}
			}
		}()
	}

	// Send instructors to workers
	go func() {
		defer close(instructorChan)
		for _, instructor := range instructors {
			select {
			case <-ctx.Done():
				return
			case instructorChan <- instructor:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Final progress report
	if !config.Verbose {
		fmt.Println() // New line after progress indicator
	}

	// Update stats
	stats.InstructorsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.InstructorsAccepted = int(atomic.LoadInt64(&accepted))
	stats.InstructorsDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.InstructorsFailed = int(atomic.LoadInt64(&failed))

	log.Printf(`✅ Instructor registration completed:
   Accepted: %d
   Duplicate: %d
   Failed: %d
`, stats.InstructorsAccepted, stats.InstructorsDuplicate, stats.InstructorsFailed)

	return nil
}

// submitSingleInstructor registers a single instructor and returns the result
func submitSingleInstructor(client *HTTPClient, url string, instructor Instructor) string {
	resp, err := client.Post(url, instructor)
	if err != nil {
		return "failed"
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return "failed"
	}

	// Parse response based on status code
	switch resp.StatusCode {
	case StatusAccepted:
		var ack AckResponse
		if err := json.Unmarshal(body, &ack); err == nil && ack.Status == "accepted" {
			return "accepted"
		}
		return "accepted" // Assume accepted for 202 even if parsing fails
	case StatusOK:
		var ack AckResponse
		if err := json.Unmarshal(body, &ack); err == nil && ack.Duplicate {
			return "duplicate"
		}
		return "duplicate" // Assume duplicate for 200 even if parsing fails
	default:
		return "failed"
	}
}
