package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"

	grid "github.com/grindlemire/go-grid"
)

const (
	itemsKey = "items"
	itersKey = "iters"
)

func main() {
	cmd := &cli.Command{
		Name:  "gridbench",
		Usage: "Benchmark the frame scheduler and item transitions",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  itemsKey,
				Usage: "Number of grid items per run",
				Value: 500,
			},
			&cli.UintFlag{
				Name:  itersKey,
				Usage: "Number of timed iterations per benchmark",
				Value: 200,
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	items := int(cmd.Uint(itemsKey))
	iters := int(cmd.Uint(itersKey))

	start := time.Now()
	log.Printf("benchmarking with %s items, %s iterations",
		humanize.Comma(int64(items)), humanize.Comma(int64(iters)))
	defer func() {
		log.Printf("finished in %v", time.Since(start))
	}()

	tbl := table.NewWriter()
	tbl.SetTitle("go-grid")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	tbl.AppendRows([]table.Row{
		benchTickerDispatch(items, iters),
		benchShowHide(items, iters),
		benchLayout(items, iters),
	})

	tbl.Render()
	return nil
}

// benchTickerDispatch times one frame dispatching a read and a write
// callback per item.
func benchTickerDispatch(items, iters int) table.Row {
	frames := grid.NewManualFrames()
	ticker := grid.NewTicker(frames)
	tach := tachymeter.New(&tachymeter.Config{Size: iters})

	keys := make([]grid.Key, items)
	for i := range keys {
		keys[i] = grid.NextKey()
	}

	var now time.Duration
	noop := func(time.Duration) {}
	for i := 0; i < iters; i++ {
		for _, key := range keys {
			ticker.Schedule(grid.PhaseRead, key, noop)
			ticker.Schedule(grid.PhaseWrite, key, noop)
		}
		now += 16 * time.Millisecond

		t0 := time.Now()
		frames.Step(now)
		tach.AddTime(time.Since(t0))
	}

	return row(fmt.Sprintf("ticker dispatch: %d keys", items), tach)
}

// benchShowHide times a full toggle of every item's visibility,
// including the frames needed to settle the transitions.
func benchShowHide(items, iters int) table.Row {
	frames := grid.NewManualFrames()
	ticker := grid.NewTicker(frames)
	g, all, err := buildGrid(ticker, items)
	if err != nil {
		log.Fatal(err)
	}
	tach := tachymeter.New(&tachymeter.Config{Size: iters})

	var now time.Duration
	settle := func() {
		for frames.Pending() > 0 {
			now += 16 * time.Millisecond
			frames.Step(now)
		}
	}

	hidden := false
	for i := 0; i < iters; i++ {
		t0 := time.Now()
		if hidden {
			g.Show(all, false, nil)
		} else {
			g.Hide(all, false, nil)
		}
		settle()
		tach.AddTime(time.Since(t0))
		hidden = !hidden
	}

	return row(fmt.Sprintf("show/hide toggle: %d items", items), tach)
}

// benchLayout times one full layout pass over the active items,
// including the frames needed to settle the position animations.
func benchLayout(items, iters int) table.Row {
	frames := grid.NewManualFrames()
	ticker := grid.NewTicker(frames)
	g, _, err := buildGrid(ticker, items)
	if err != nil {
		log.Fatal(err)
	}
	tach := tachymeter.New(&tachymeter.Config{Size: iters})

	var now time.Duration
	for i := 0; i < iters; i++ {
		t0 := time.Now()
		g.Layout(false, nil)
		for frames.Pending() > 0 {
			now += 16 * time.Millisecond
			frames.Step(now)
		}
		tach.AddTime(time.Since(t0))
	}

	return row(fmt.Sprintf("layout pass: %d items", items), tach)
}

func buildGrid(ticker *grid.Ticker, items int) (*grid.Grid, []*grid.Item, error) {
	g, err := grid.NewGrid(ticker, grid.NewMockElement(grid.NewRect(0, 0, 1000, 10000)),
		grid.WithShowDuration(48*time.Millisecond),
		grid.WithHideDuration(48*time.Millisecond),
		grid.WithLayoutDuration(48*time.Millisecond),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("building grid: %w", err)
	}

	all := make([]*grid.Item, 0, items)
	for i := 0; i < items; i++ {
		item, err := g.Add(grid.NewMockElement(grid.NewRect(0, 0, 100, 100)), true)
		if err != nil {
			return nil, nil, fmt.Errorf("adding item %d: %w", i, err)
		}
		all = append(all, item)
	}
	return g, all, nil
}

func row(name string, tach *tachymeter.Tachymeter) table.Row {
	calc := tach.Calc()
	return table.Row{name, calc.Time.Avg, calc.Time.Min, calc.Time.P75, calc.Time.P99, calc.Time.Max}
}
