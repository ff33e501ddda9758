package testcatalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/tutormatch/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete catalog test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting tutormatch catalog test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("instructors", config.NumInstructors),
		logger.Int("matches", config.NumMatches),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate instructors
	instructors, err := generateInstructors(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("instructor generation failed: %w", err)
	}

	// Step 3: Register instructors concurrently
	if err := submitInstructors(ctx, config, instructors, stats); err != nil {
		return fmt.Errorf("instructor registration failed: %w", err)
	}

	// Step 4: Wait for the ingestion pipeline to drain
	logger.Get().Info(ctx, "waiting for instructors to be processed")
	time.Sleep(IngestionSettleDelay)

	// Step 5: Fire match queries and verify ordering
	if err := fireMatchQueries(ctx, config, stats); err != nil {
		return fmt.Errorf("match phase failed: %w", err)
	}

	// Step 6: Save instructors to file
	if err := saveInstructorsToFile(ctx, config, instructors); err != nil {
		logger.Get().Warn(ctx, "failed to save instructors to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveInstructorsToFile saves the generated instructors to a JSON file.
func saveInstructorsToFile(ctx context.Context, config *Config, instructors []Instructor) error {
	if len(instructors) == 0 {
		return fmt.Errorf("no instructors to save")
	}

	// Determine output filename
	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_instructors_" + timestamp + ".json"
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	// Write JSON array
	if _, err := file.WriteString("[\n"); err != nil {
		return fmt.Errorf("failed to write opening bracket: %w", err)
	}

	for i, instructor := range instructors {
		jsonData, err := json.Marshal(instructor)
		if err != nil {
			return fmt.Errorf("failed to marshal instructor %d: %w", i, err)
		}

		if _, err := file.Write(jsonData); err != nil {
			return fmt.Errorf("failed to write instructor %d: %w", i, err)
		}

		// Add comma except for last entry
		if i < len(instructors)-1 {
			if _, err := file.WriteString(","); err != nil {
				return fmt.Errorf("failed to write comma: %w", err)
			}
		}
		_, _ = file.WriteString("\n")
	}

	if _, err := file.WriteString("]\n"); err != nil {
		return fmt.Errorf("failed to write closing bracket: %w", err)
	}

	logger.Get().Info(ctx, "instructors saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var successRate, instructorsPerSecond float64

	if stats.InstructorsSubmitted > 0 {
		successRate = float64(stats.InstructorsAccepted) / float64(stats.InstructorsSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		instructorsPerSecond = float64(stats.InstructorsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("instructorsGenerated", stats.InstructorsGenerated),
		logger.Int("instructorsSubmitted", stats.InstructorsSubmitted),
		logger.Int("instructorsAccepted", stats.InstructorsAccepted),
		logger.Int("instructorsDuplicate", stats.InstructorsDuplicate),
		logger.Int("instructorsFailed", stats.InstructorsFailed),
		logger.Int("matchesFired", stats.MatchesFired),
		logger.Int("matchesSucceeded", stats.MatchesSucceeded),
		logger.Int("matchesFailed", stats.MatchesFailed),
		logger.Int("orderingViolations", stats.OrderingViolations),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("instructorsPerSecond", instructorsPerSecond))
}
