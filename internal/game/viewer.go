package game

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"isoworld/internal/config"
	"isoworld/internal/ecs"
	"isoworld/internal/logging"
	"isoworld/internal/render"
)

// Viewer runs a Loop against a tcell screen: input is polled on its own
// goroutine, frames are stepped on a ticker, and the screen is only
// repainted when the draw order or the status line changed.
type Viewer struct {
	screen   tcell.Screen
	renderer *render.Renderer
	loop     *Loop
	world    *ecs.World
	fps      int
	log      *zap.Logger

	// events receives all tcell events from the polling goroutine.
	events chan tcell.Event

	lastPrint  uint64
	lastStatus render.Status
	message    string
	dirty      bool
}

// NewViewer creates a Viewer on an already-initialized screen.
func NewViewer(screen tcell.Screen, w *ecs.World, player ecs.EntityID, cfg config.Config, log *zap.Logger) (*Viewer, error) {
	log = logging.OrNop(log)
	renderer := render.NewRenderer(screen, cfg.Render)
	loop, err := NewLoop(w, player, cfg, renderer.Camera(), log)
	if err != nil {
		return nil, err
	}
	fps := cfg.Server.FPS
	if fps <= 0 {
		fps = config.Default().Server.FPS
	}
	return &Viewer{
		screen:   screen,
		renderer: renderer,
		loop:     loop,
		world:    w,
		fps:      fps,
		log:      log,
		events:   make(chan tcell.Event, 32),
		message:  "Arrows/hjkl move, space jumps, [ ] cutaway, q quits.",
		dirty:    true,
	}, nil
}

// Loop returns the frame loop driven by the viewer.
func (v *Viewer) Loop() *Loop { return v.loop }

// Run drives the viewer until ctx is cancelled or the user quits.
// Calls screen.Fini() before returning.
func (v *Viewer) Run(ctx context.Context) error {
	defer v.screen.Fini()

	done := make(chan struct{})
	defer close(done)
	go v.poll(done)

	tick := time.NewTicker(time.Second / time.Duration(v.fps))
	defer tick.Stop()
	dt := 1 / float64(v.fps)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-v.events:
			if !ok {
				return nil
			}
			if v.handle(ev) {
				return nil
			}
		case <-tick.C:
			if err := v.loop.Step(dt, v.draw); err != nil {
				v.log.Error("frame failed", zap.Error(err))
				return err
			}
		}
	}
}

func (v *Viewer) poll(done <-chan struct{}) {
	defer close(v.events)
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case v.events <- ev:
		case <-done:
			return
		}
	}
}

// handle applies one input event. It reports whether the viewer should
// stop.
func (v *Viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
		pos, _ := v.world.Position(v.loop.Player())
		v.renderer.Resize(pos)
		v.dirty = true
	case *tcell.EventKey:
		action := keyToAction(ev)
		switch action {
		case ActionQuit:
			return true
		case ActionJump:
			v.loop.Jump()
		case ActionCutawayDown, ActionCutawayUp:
			v.adjustCutaway(action)
		default:
			if dx, dy := actionToDelta(action); dx != 0 || dy != 0 {
				v.loop.Walk(dx, dy)
			}
		}
	}
	return false
}

func (v *Viewer) adjustCutaway(a Action) {
	c, ok := v.loop.Cutaway()
	if !ok {
		v.message = "No cutaway configured."
		return
	}
	if a == ActionCutawayDown {
		c.Layer = max(c.Layer-1, 0)
	} else {
		c.Layer++
	}
	v.message = fmt.Sprintf("Cutaway above layer %d.", c.Layer)
}

// draw is the Loop callback. It repaints only when something visible
// changed.
func (v *Viewer) draw(f Frame) {
	pos, _ := v.world.Position(v.loop.Player())
	if len(f.Triggered) > 0 {
		v.message = "You step on the " + f.Triggered[0] + "."
	}
	status := render.Status{
		Player:      pos,
		Projections: len(f.Order),
		Contacts:    f.Contacts.Len(),
		Broken:      f.Broken,
		Message:     v.message,
	}
	if !v.dirty && f.Fingerprint == v.lastPrint && status == v.lastStatus {
		return
	}
	v.lastPrint, v.lastStatus, v.dirty = f.Fingerprint, status, false

	status.Frame = f.Number
	v.renderer.DrawFrame(f.Order)
	v.renderer.DrawHUD(status)
}
