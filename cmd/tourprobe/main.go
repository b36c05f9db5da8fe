// Command tourprobe samples the camera path of a tour file without opening a window and
// reports how smooth it is: the largest step between neighbouring samples, the gap across the
// loop seam and the field of view range.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/config"
	"github.com/Carmen-Shannon/oxy-tour/engine/navigation"
)

func main() {
	tourPath := flag.String("tour", "cmd/tour/tour.yaml", "path to a .yaml or .toml tour file")
	samples := flag.Int("samples", 4096, "number of poses to sample around the loop")
	workers := flag.Int("workers", runtime.NumCPU(), "maximum concurrent sampling workers")
	maxSeam := flag.Float64("max-seam", 0.05, "fail if the loop seam gap exceeds this distance")
	flag.Parse()

	cfg, err := config.LoadTourConfig(*tourPath)
	if err != nil {
		log.Fatalf("[Probe] %v", err)
	}

	path, err := navigation.BuildPath(cfg.Stops(), cfg.PathOptions()...)
	if err != nil {
		log.Fatalf("[Probe] %v", err)
	}

	report, err := navigation.ProbePath(path, cfg.LensRange(), *samples, *workers)
	if err != nil {
		log.Fatalf("[Probe] %v", err)
	}

	fmt.Printf("tour:      %s (%d segments)\n", cfg.Name, path.Len())
	fmt.Printf("samples:   %d\n", report.Samples)
	fmt.Printf("max step:  %.4f\n", report.MaxStep)
	fmt.Printf("mean step: %.4f\n", report.MeanStep)
	fmt.Printf("seam gap:  %.6f\n", report.SeamGap)
	fmt.Printf("fov:       %.2f° .. %.2f°\n", report.MinFov*common.RadToDeg, report.MaxFov*common.RadToDeg)
	fmt.Printf("max roll:  %.3f rad\n", report.MaxRoll)

	if float64(report.SeamGap) > *maxSeam {
		fmt.Fprintf(os.Stderr, "seam gap %.6f exceeds %.6f\n", report.SeamGap, *maxSeam)
		os.Exit(1)
	}
}
