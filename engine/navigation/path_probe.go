package navigation

import (
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/chewxy/math32"
)

// ProbeReport summarizes a dense sampling of a path.
type ProbeReport struct {
	// Samples is the number of poses sampled.
	Samples int
	// MaxStep is the largest camera movement between consecutive samples.
	MaxStep float32
	// MeanStep is the average camera movement between consecutive samples.
	MeanStep float32
	// SeamGap is the distance between the pose just before u=1 and the pose at u=0.
	SeamGap float32
	// MinFov and MaxFov bound the sampled field of view in radians.
	MinFov, MaxFov float32
	// MaxRoll is the largest absolute roll in radians.
	MaxRoll float32
}

type probeChunk struct {
	maxStep, sumStep float32
	minFov, maxFov   float32
	maxRoll          float32
}

// ProbePath samples a path at evenly spaced parameters across a worker pool. The path is
// immutable, so workers share it without locking; each chunk writes only its own result slot.
//
// Parameters:
//   - path: the path to probe
//   - lens: field of view range used for sampling
//   - samples: number of poses, at least the segment count
//   - workers: maximum concurrent workers
//
// Returns:
//   - ProbeReport: aggregated continuity and lens metrics
//   - error: if the path is empty or samples is too small
func ProbePath(path *Path, lens Lens, samples, workers int) (ProbeReport, error) {
	if path.Len() == 0 {
		return ProbeReport{}, fmt.Errorf("probe path: %w", ErrTooFewPOIs)
	}
	if samples < path.Len() {
		return ProbeReport{}, fmt.Errorf("probe path: %d samples for %d segments", samples, path.Len())
	}
	if workers <= 0 {
		workers = 1
	}

	chunkSize := (samples + workers - 1) / workers
	chunkCount := (samples + chunkSize - 1) / chunkSize
	results := make([]probeChunk, chunkCount)

	pool := worker.NewDynamicWorkerPool(workers, chunkCount, time.Second)
	defer pool.Stop()

	var wg sync.WaitGroup
	for c := range chunkCount {
		lo := c * chunkSize
		hi := min(lo+chunkSize, samples)
		slot := &results[c]

		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: c,
			Do: func() (any, error) {
				defer wg.Done()
				*slot = probeRange(path, lens, lo, hi, samples)
				return nil, nil
			},
		})
	}
	wg.Wait()

	report := ProbeReport{
		Samples: samples,
		MinFov:  math32.Inf(1),
		MaxFov:  math32.Inf(-1),
	}
	var sum float32
	for _, r := range results {
		report.MaxStep = max(report.MaxStep, r.maxStep)
		report.MinFov = min(report.MinFov, r.minFov)
		report.MaxFov = max(report.MaxFov, r.maxFov)
		report.MaxRoll = max(report.MaxRoll, r.maxRoll)
		sum += r.sumStep
	}
	report.MeanStep = sum / float32(samples)

	end := path.Sample(math32.Nextafter(1, 0), lens)
	start := path.Sample(0, lens)
	report.SeamGap = end.Position.Distance(start.Position)
	return report, nil
}

// probeRange samples indices [lo, hi) and measures the step from each sample to the next one,
// wrapping the last sample back to u=0.
func probeRange(path *Path, lens Lens, lo, hi, samples int) probeChunk {
	out := probeChunk{minFov: math32.Inf(1), maxFov: math32.Inf(-1)}
	for i := lo; i < hi; i++ {
		pose := path.Sample(float32(i)/float32(samples), lens)
		next := path.Sample(float32((i+1)%samples)/float32(samples), lens)
		step := pose.Position.Distance(next.Position)

		out.maxStep = max(out.maxStep, step)
		out.sumStep += step
		out.minFov = min(out.minFov, pose.Fov)
		out.maxFov = max(out.maxFov, pose.Fov)
		out.maxRoll = max(out.maxRoll, math32.Abs(pose.Roll))
	}
	return out
}
