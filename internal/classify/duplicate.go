package classify

import (
	"context"
	"sort"
	"sync"

	"github.com/AKapaldo/ROT/internal/filesystem"
	"github.com/AKapaldo/ROT/pkg/models"
	"go.uber.org/zap"
)

const (
	// DefaultHashWorkers is the default bound on concurrent hashing tasks.
	DefaultHashWorkers = 6
	// MaxHashWorkers caps the pool so a large --workers value cannot
	// flood disk I/O with concurrent reads.
	MaxHashWorkers = 8
)

// ProgressFunc reports hashing progress: files hashed so far out of total.
type ProgressFunc func(current, total int)

// DuplicateClassifier finds groups of byte-identical files. Size is used
// as a cheap pre-filter: only files sharing a byte length are hashed.
type DuplicateClassifier struct {
	workers  int
	logger   *zap.Logger
	progress ProgressFunc
}

// NewDuplicateClassifier creates a duplicate classifier with a bounded
// hashing pool. workers outside 1..MaxHashWorkers is clamped.
func NewDuplicateClassifier(workers int, logger *zap.Logger) *DuplicateClassifier {
	if workers <= 0 {
		workers = DefaultHashWorkers
	}
	if workers > MaxHashWorkers {
		workers = MaxHashWorkers
	}

	return &DuplicateClassifier{
		workers: workers,
		logger:  logger,
	}
}

// SetProgress sets the hashing progress callback.
func (c *DuplicateClassifier) SetProgress(fn ProgressFunc) {
	c.progress = fn
}

// Workers returns the effective pool size.
func (c *DuplicateClassifier) Workers() int {
	return c.workers
}

// hashJob is one file queued for hashing. pos is the file's position in
// the index, kept so group emission order is independent of worker
// scheduling.
type hashJob struct {
	pos    int
	record models.FileRecord
}

// hashResult is the outcome of hashing a single file.
type hashResult struct {
	job  hashJob
	hash string
	err  error
}

// groupKey identifies a digest group. Size is part of the key so groups
// never merge across buckets.
type groupKey struct {
	size int64
	hash string
}

// Classify partitions the index by size, hashes every file in a
// multi-member bucket, and returns one RedundantSet per digest shared by
// two or more files. Hash failures are returned as diagnostics and drop
// the affected file from consideration; they never abort the pass.
// Emission order is deterministic: groups ascend by size, then by the
// index position of their first-seen member, and paths within a group
// are sorted.
func (c *DuplicateClassifier) Classify(ctx context.Context, index models.FileIndex) ([]models.RedundantSet, []error, error) {
	// Partition by byte length. A unique length cannot have a content
	// duplicate, so singleton buckets are discarded before hashing.
	buckets := make(map[int64]int)
	for _, rec := range index {
		buckets[rec.Size]++
	}

	var jobs []hashJob
	for pos, rec := range index {
		if buckets[rec.Size] >= 2 {
			jobs = append(jobs, hashJob{pos: pos, record: rec})
		}
	}

	if len(jobs) == 0 {
		return nil, nil, nil
	}

	c.logger.Debug("Hashing duplicate candidates",
		zap.Int("candidates", len(jobs)),
		zap.Int("workers", c.workers))

	jobChan := make(chan hashJob, c.workers*2)
	resultChan := make(chan hashResult, c.workers*2)

	var wg sync.WaitGroup
	for i := 0; i < c.workers; i++ {
		wg.Add(1)
		go c.hashWorker(ctx, &wg, jobChan, resultChan)
	}

	// Single collector goroutine owns the group map, so no lock is
	// needed around accumulation.
	type member struct {
		pos  int
		path string
		hash string
	}
	groups := make(map[groupKey][]member)
	var diags []error
	hashed := 0

	var collectWg sync.WaitGroup
	collectWg.Add(1)
	go func() {
		defer collectWg.Done()
		for res := range resultChan {
			if res.err != nil {
				diags = append(diags, &models.HashError{Path: res.job.record.Path, Err: res.err})
			} else {
				hashed++
				key := groupKey{size: res.job.record.Size, hash: res.hash}
				groups[key] = append(groups[key], member{
					pos:  res.job.pos,
					path: res.job.record.Path,
					hash: res.hash,
				})
			}
			if c.progress != nil {
				c.progress(hashed+len(diags), len(jobs))
			}
		}
	}()

	feedErr := func() error {
		defer close(jobChan)
		for _, job := range jobs {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case jobChan <- job:
			}
		}
		return nil
	}()

	wg.Wait()
	close(resultChan)
	collectWg.Wait()

	if feedErr != nil {
		return nil, diags, feedErr
	}

	// Merge step: qualifying groups, ordered reproducibly.
	type pending struct {
		key      groupKey
		firstPos int
		members  []member
	}
	var qualified []pending
	for key, members := range groups {
		if len(members) < 2 {
			continue
		}
		first := members[0].pos
		for _, m := range members[1:] {
			if m.pos < first {
				first = m.pos
			}
		}
		qualified = append(qualified, pending{key: key, firstPos: first, members: members})
	}

	sort.Slice(qualified, func(i, j int) bool {
		if qualified[i].key.size != qualified[j].key.size {
			return qualified[i].key.size < qualified[j].key.size
		}
		return qualified[i].firstPos < qualified[j].firstPos
	})

	sets := make([]models.RedundantSet, 0, len(qualified))
	for i, p := range qualified {
		sort.Slice(p.members, func(a, b int) bool {
			return p.members[a].path < p.members[b].path
		})

		files := make([]models.HashedFile, 0, len(p.members))
		for _, m := range p.members {
			files = append(files, models.HashedFile{Path: m.path, Hash: m.hash})
		}

		sets = append(sets, models.RedundantSet{
			GroupID: i + 1,
			Size:    p.key.size,
			Files:   files,
		})
	}

	c.logger.Info("Duplicate classification complete",
		zap.Int("candidates", len(jobs)),
		zap.Int("groups", len(sets)),
		zap.Int("hash_errors", len(diags)))

	return sets, diags, nil
}

// hashWorker hashes files from the job channel until it closes or the
// context is cancelled. Cancellation is checked between files; hashing
// is read-only so there is nothing to unwind mid-file.
func (c *DuplicateClassifier) hashWorker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan hashJob, results chan<- hashResult) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
			hash, err := filesystem.HashFile(job.record.Path)
			results <- hashResult{job: job, hash: hash, err: err}
		}
	}
}
