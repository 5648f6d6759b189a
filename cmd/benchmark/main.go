package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/cellgraph/loom"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
)

var (
	ww    = []int{1, 10, 100, 1_000}
	hh    = []int{1, 10, 100, 1_000}
	iters = 100
)

func main() {
	profilePath := flag.String("profile", "", "write a CPU profile to this path")
	flag.Parse()

	if *profilePath != "" {
		f, err := os.Create(*profilePath)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	log.Printf("warming up")
	benchmarkPropagate(false)
	benchmarkPropagate(true)
}

// Builds ww[i] parallel chains of hh[j] derivations each off a single
// source cell, hangs a reaction at every chain tail, then times how
// long a write takes to settle the whole graph.
func benchmarkPropagate(shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("Loom Cells")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rs := loom.CreateReactiveSystem(func(from loom.GraphAware, err error) {
				log.Panic(err)
			})
			src := loom.Cell(rs, 1)
			for i := 0; i < w; i++ {
				var last loom.Readable[int] = src
				for j := 0; j < h; j++ {
					prev := last
					last = loom.Derived(rs, func(oldValue int) int {
						return prev.Value() + 1
					})
				}

				tail := last
				loom.Reaction(rs, func() error {
					tail.Value()
					return nil
				})
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.SetValue(src.Value() + 1)
				tach.AddTime(time.Since(start))
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	if shouldRender {
		tbl.Render()
	}
}
