// Command wheel-tui spins a wheel in the terminal. Space spins, r resets and
// q quits.
package main

import (
	"flag"
	"fmt"
	"fortune_wheel/internal/wheel"
	"math"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

const (
	frameInterval = 16 * time.Millisecond
	// Terminal cells are roughly twice as tall as they are wide.
	cellAspect = 2.0
)

type game struct {
	screen tcell.Screen
	ctrl   *wheel.Controller
	log    *zap.Logger

	nearest int
	status  string

	sampleRate beep.SampleRate
	audioInit  bool
}

func newGame(ctrl *wheel.Controller, log *zap.Logger, sound bool) (*game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	g := &game{
		screen:     screen,
		ctrl:       ctrl,
		log:        log,
		status:     "space: spin  r: reset  q: quit",
		sampleRate: beep.SampleRate(44100),
	}
	if sound {
		if err := speaker.Init(g.sampleRate, g.sampleRate.N(time.Second/10)); err != nil {
			log.Warn("audio unavailable", zap.Error(err))
		} else {
			g.audioInit = true
		}
	}
	ctrl.Register(wheel.ResultFunc(func(r wheel.Result) {
		g.status = fmt.Sprintf("Winner: %s  (r: reset)", r.Value)
		g.click(440, 250*time.Millisecond)
	}))
	return g, nil
}

// click plays a short tone as the knob passes into another segment.
func (g *game) click(freq int, d time.Duration) {
	if !g.audioInit {
		return
	}
	sine, err := generators.SineTone(g.sampleRate, float64(freq))
	if err != nil {
		return
	}
	speaker.Play(beep.Take(g.sampleRate.N(d), sine))
}

func (g *game) handleKey(ev *tcell.EventKey) bool {
	switch {
	case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
		return false
	case ev.Rune() == ' ':
		if _, err := g.ctrl.Spin(); err != nil {
			g.status = err.Error()
			return true
		}
		g.status = "spinning..."
	case ev.Rune() == 'r':
		if err := g.ctrl.Reset(); err != nil {
			g.status = err.Error()
			return true
		}
		g.status = "space: spin  r: reset  q: quit"
	}
	return true
}

func (g *game) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !g.handleKey(ev) {
					return
				}
			case *tcell.EventResize:
				g.screen.Sync()
			}
		case now := <-ticker.C:
			g.ctrl.Advance(now)
			g.draw()
		}
	}
}

func (g *game) draw() {
	g.screen.Clear()
	w, h := g.screen.Size()
	segments := g.ctrl.Segments()
	solver := g.ctrl.Solver()
	angle := g.ctrl.Animator().State().Current

	if n := solver.NearestSegment(angle); n != g.nearest {
		g.nearest = n
		if g.ctrl.Phase() == wheel.PhaseSpinning {
			g.click(880, 15*time.Millisecond)
		}
	}

	cx, cy := float64(w)/2, float64(h-2)/2
	outer := math.Min(cx/cellAspect, cy-1) * cellAspect
	cfg := g.ctrl.Config()
	inner := outer * cfg.InnerRadius / cfg.OuterRadius
	rot := angle - solver.Offset()

	for y := 0; y < h-2; y++ {
		for x := 0; x < w; x++ {
			dx := float64(x) + 0.5 - cx
			dy := (float64(y) + 0.5 - cy) * cellAspect
			r := math.Hypot(dx, dy)
			if r > outer || r < inner {
				continue
			}
			// Degrees clockwise from the top, back in the wheel's own frame.
			theta := math.Atan2(dx, -dy) * 180 / math.Pi
			local := math.Mod(theta-rot, 360)
			if local < 0 {
				local += 360
			}
			idx := int(local / solver.SegmentWidth())
			if idx >= len(segments) {
				idx = len(segments) - 1
			}
			style := tcell.StyleDefault.Background(tcell.GetColor(segments[idx].Color))
			g.screen.SetContent(x, y, ' ', nil, style)
		}
	}

	knob := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	g.screen.SetContent(int(cx), int(cy-outer/cellAspect)-1, '▼', nil, knob)

	label := segments[g.nearest].Value
	drawText(g.screen, int(cx)-len([]rune(label))/2, int(cy), label, knob)
	drawText(g.screen, 1, h-1, g.status, tcell.StyleDefault)
	g.screen.Show()
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func (g *game) cleanup() {
	if g.audioInit {
		speaker.Close()
	}
	g.screen.Fini()
}

func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

func main() {
	rewards := flag.String("rewards", "Car,Phone,Nothing,Trip,Book,Coffee", "comma separated rewards")
	winner := flag.Int("winner", -1, "fixed winner index, -1 for random")
	duration := flag.Duration("duration", wheel.DefaultDuration, "spin duration")
	direction := flag.String("direction", "clockwise", "clockwise or counterclockwise")
	shuffle := flag.Bool("shuffle", false, "shuffle rewards once")
	sound := flag.Bool("sound", true, "click as segments pass the knob")
	logPath := flag.String("log", "", "write logs to this file")
	flag.Parse()

	log, err := newLogger(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	dir, err := wheel.ParseDirection(*direction)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg := wheel.Config{
		Rewards:   strings.Split(*rewards, ","),
		Duration:  *duration,
		Direction: dir,
		Shuffle:   *shuffle,
	}
	if *winner >= 0 {
		cfg.Winner = winner
	}

	ctrl := wheel.NewController(wheel.WithLogger(log))
	if err := ctrl.Configure(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = ctrl.Close() }()

	g, err := newGame(ctrl, log, *sound)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer g.cleanup()

	g.run()
}
