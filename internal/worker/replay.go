package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/psellars/fnolgate/internal/mailtext"
	"github.com/psellars/fnolgate/internal/model"
)

// Decider runs the decision sequence over cleaned claim text without
// submitting anything.
type Decider interface {
	Decide(ctx context.Context, text string) *model.Decision
}

// ReplayJob runs one saved inbound payload through the decision sequence.
type ReplayJob struct {
	Path    string
	Decider Decider
}

// Execute executes the replay job
func (j *ReplayJob) Execute(ctx context.Context) Result {
	data, err := os.ReadFile(j.Path)
	if err != nil {
		return &ReplayResult{Path: j.Path, Error: fmt.Errorf("read payload: %w", err)}
	}

	decision := j.Decider.Decide(ctx, mailtext.Clean(string(data)))
	return &ReplayResult{Path: j.Path, Decision: decision}
}

// ReplayResult is the decision reached for one saved payload.
type ReplayResult struct {
	Path     string
	Decision *model.Decision
	Error    error
}

// GetError returns the error from the replay result
func (r *ReplayResult) GetError() error {
	return r.Error
}

// Replayer runs saved inbound payloads through the decision sequence
// concurrently, for triage and backfill. Nothing is submitted.
type Replayer struct {
	decider     Decider
	concurrency int
}

// NewReplayer creates a replayer with the given concurrency.
func NewReplayer(decider Decider, concurrency int) *Replayer {
	return &Replayer{
		decider:     decider,
		concurrency: concurrency,
	}
}

// ReplayDir replays every payload file in dir. Hidden files and
// subdirectories are skipped.
func (r *Replayer) ReplayDir(ctx context.Context, dir string) ([]*ReplayResult, error) {
	paths, err := listPayloads(dir)
	if err != nil {
		return nil, err
	}

	return r.ReplayFiles(ctx, paths), nil
}

// ReplayFiles replays the given payload files concurrently.
func (r *Replayer) ReplayFiles(ctx context.Context, paths []string) []*ReplayResult {
	if len(paths) == 0 {
		return []*ReplayResult{}
	}

	pool := NewPool(r.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&ReplayJob{Path: path, Decider: r.decider})
	}

	results := pool.Wait()

	replayResults := make([]*ReplayResult, len(results))
	for i, result := range results {
		replayResults[i] = result.(*ReplayResult)
	}

	// Pool completion order is arbitrary.
	sort.Slice(replayResults, func(i, j int) bool {
		return replayResults[i].Path < replayResults[j].Path
	})

	return replayResults
}

func listPayloads(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read payload dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	return paths, nil
}
