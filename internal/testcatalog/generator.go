package testcatalog

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"

	"github.com/google/uuid"
	"github.com/okian/tutormatch/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
)

// Constants for catalog attribute generation.
const (
	baseRating        = 3.0
	ratingRange       = 2.0
	maxSessions       = 200
	maxLocation       = 100
	maxWindowsPerCard = 3
)

// Catalog attribute pools. Topics and windows deliberately overlap with the
// query pools in matching.go so a portion of queries produce non-empty results.
var (
	topicPool = []string{
		"math", "physics", "chemistry", "biology", "english",
		"history", "programming", "music", "spanish", "statistics",
	}
	languagePool = []string{"english", "spanish", "french", "german", "mandarin"}
	dayPool      = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	windowPool   = []string{
		"9am-12pm", "10am-1pm", "1pm-5pm", "2-4", "3:30pm-6pm",
		"6pm-9pm", "11am-1pm", "8-10", "12pm-3pm", "4pm-7pm",
	}
)

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// getRandomInt returns a random int in [0, max) using crypto/rand.
func getRandomInt(max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64())
}

// generateInstructors creates the specified number of instructors with unique IDs.
func generateInstructors(ctx context.Context, config *Config, stats *Stats) ([]Instructor, error) {
	logger.Get().Info(ctx, "generating instructors", logger.Int("numInstructors", config.NumInstructors))

	instructors := make([]Instructor, config.NumInstructors)

	// Pre-allocate IDs to ensure uniqueness
	ids := make([]string, config.NumInstructors)
	for i := 0; i < config.NumInstructors; i++ {
		ids[i] = uuid.New().String()
	}

	// Generate instructors concurrently
	type genResult struct {
		index      int
		instructor Instructor
		err        error
	}

	resultChan := make(chan genResult, config.NumInstructors)

	workerCount := minInt(config.Workers, config.NumInstructors)
	perWorker := config.NumInstructors / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * perWorker
		end := start + perWorker
		if worker == workerCount-1 {
			end = config.NumInstructors // Last worker gets the remainder
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- genResult{index: i, err: ctx.Err()}
					return
				default:
					resultChan <- genResult{index: i, instructor: generateSingleInstructor(i, ids[i])}
				}
			}
		}(start, end)
	}

	// Collect results
	for i := 0; i < config.NumInstructors; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during instructor generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate instructor %d: %w", result.index, result.err)
			}
			instructors[result.index] = result.instructor
		}
	}

	stats.InstructorsGenerated = len(instructors)
	logger.Get().Info(ctx, "generated instructors successfully", logger.Int("count", len(instructors)))

	return instructors, nil
}

// generateSingleInstructor creates a single instructor with the given index and ID.
func generateSingleInstructor(index int, id string) Instructor {
	numTopics := 1 + getRandomInt(2)
	expertise := make([]string, 0, numTopics)
	seen := map[string]bool{}
	for len(expertise) < numTopics {
		topic := topicPool[getRandomInt(len(topicPool))]
		if !seen[topic] {
			seen[topic] = true
			expertise = append(expertise, topic)
		}
	}

	numLangs := 1 + getRandomInt(2)
	languages := make([]string, 0, numLangs)
	seenLang := map[string]bool{}
	for len(languages) < numLangs {
		lang := languagePool[getRandomInt(len(languagePool))]
		if !seenLang[lang] {
			seenLang[lang] = true
			languages = append(languages, lang)
		}
	}

	numWindows := 1 + getRandomInt(maxWindowsPerCard)
	availability := make([]string, numWindows)
	for i := range availability {
		availability[i] = dayPool[getRandomInt(len(dayPool))] + " " + windowPool[getRandomInt(len(windowPool))]
	}

	return Instructor{
		EventID:           uuid.New().String(),
		ID:                id,
		Name:              "Instructor " + strconv.Itoa(index),
		Expertise:         expertise,
		Languages:         languages,
		Availability:      availability,
		Location:          strconv.Itoa(getRandomInt(maxLocation)),
		Rating:            baseRating + getRandomFloat()*ratingRange,
		SessionsCompleted: getRandomInt(maxSessions),
	}
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
