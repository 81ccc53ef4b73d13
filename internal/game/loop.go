package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"isoworld/internal/component"
	"isoworld/internal/config"
	"isoworld/internal/ecs"
	"isoworld/internal/frame"
	"isoworld/internal/logging"
	"isoworld/internal/render"
	"isoworld/internal/system"
)

// JumpSpeed is the upward velocity given by a jump. It clears one layer
// under the default gravity.
const JumpSpeed = 5.0

// Frame is what a Loop hands its draw callback. Order and Contacts belong to
// the loop's arena and are only valid during the callback.
type Frame struct {
	Number      uint64
	Order       []*render.Projection
	Contacts    *system.ContactSet
	Movements   []system.Movement
	Broken      int
	Fingerprint uint64
	// Triggered holds the labels of trigger pads the player touched.
	Triggered []string
}

// Loop advances one World a frame at a time: queued player intents, then
// velocity integration, then projection and draw ordering. Every frame ends
// through the arena.
type Loop struct {
	world    *ecs.World
	player   ecs.EntityID
	collider *system.Collider
	sorter   *render.Sorter
	camera   *render.IsoCamera
	arena    *frame.Arena
	log      *zap.Logger

	walks    []mgl64.Vec3
	jump     bool
	grounded bool
	touching map[ecs.EntityID]bool
}

// NewLoop builds the engines for w from cfg. cam is shared with the
// renderer that paints the frames.
func NewLoop(w *ecs.World, player ecs.EntityID, cfg config.Config, cam *render.IsoCamera, log *zap.Logger) (*Loop, error) {
	log = logging.OrNop(log)
	strategies, err := render.NewStrategies(cfg.Render.Strategies)
	if err != nil {
		return nil, err
	}
	arena := frame.NewArena()
	return &Loop{
		world:    w,
		player:   player,
		collider: system.NewCollider(w, cfg.Collision, log),
		sorter:   render.NewSorter(arena.Draw, log, strategies...),
		camera:   cam,
		arena:    arena,
		log:      log,
		touching: make(map[ecs.EntityID]bool),
	}, nil
}

// Walk queues a one-tile step for the next frame.
func (l *Loop) Walk(dx, dy float64) { l.walks = append(l.walks, mgl64.Vec3{dx, dy, 0}) }

// Jump queues a jump. It is ignored unless the player stood on something
// at the end of the previous frame.
func (l *Loop) Jump() { l.jump = true }

// Grounded reports whether the player ended the last frame resting on a
// solid face.
func (l *Loop) Grounded() bool { return l.grounded }

// Player returns the entity the loop steers.
func (l *Loop) Player() ecs.EntityID { return l.player }

// Cutaway returns the first configured cutaway strategy, if any.
func (l *Loop) Cutaway() (*render.Cutaway, bool) {
	for _, s := range l.sorter.Strategies() {
		if c, ok := s.(*render.Cutaway); ok {
			return c, true
		}
	}
	return nil, false
}

// Step runs one frame of dt seconds and calls draw with the result before
// the frame's scratch state is released. draw may be nil.
func (l *Loop) Step(dt float64, draw func(Frame)) error {
	defer l.arena.EndFrame()
	contacts := l.arena.Contacts

	if err := l.applyIntents(contacts); err != nil {
		return err
	}
	moves, err := l.collider.Step(contacts, dt)
	if err != nil {
		return err
	}
	l.grounded = l.standing(contacts)

	if pos, ok := l.world.Position(l.player); ok {
		l.camera.Center(pos)
	}
	projs := render.Project(l.world.View(), l.camera, l.arena.Draw)
	order := l.sorter.BuildDrawOrder(projs)

	f := Frame{
		Number:      l.arena.Frame(),
		Order:       order,
		Contacts:    contacts,
		Movements:   moves,
		Broken:      l.sorter.Broken(),
		Fingerprint: render.Fingerprint(order),
		Triggered:   l.triggered(contacts),
	}
	if draw != nil {
		draw(f)
	}
	return nil
}

func (l *Loop) applyIntents(contacts *system.ContactSet) error {
	walks := l.walks
	l.walks = l.walks[:0]
	jump := l.jump
	l.jump = false
	if !l.world.Alive(l.player) {
		return nil
	}

	for _, d := range walks {
		if _, err := l.collider.Walk(contacts, l.player, d.X(), d.Y(), d.Z()); err != nil {
			return err
		}
	}
	if jump && l.grounded {
		vel, _ := l.world.Get(l.player, component.CVelocity).(component.Velocity)
		vel.V[2] = JumpSpeed
		return l.world.Add(l.player, vel)
	}
	return nil
}

func (l *Loop) standing(contacts *system.ContactSet) bool {
	for _, c := range contacts.For(l.player) {
		if c.Solid && c.Face == system.FaceBottom {
			return true
		}
	}
	return false
}

// triggered returns the labels of trigger pads the player touches this
// frame. Only pads that were not touched last frame are logged.
func (l *Loop) triggered(contacts *system.ContactSet) []string {
	var labels []string
	seen := make(map[ecs.EntityID]bool, len(l.touching))
	for _, c := range contacts.For(l.player) {
		id := c.Other.Entity
		if c.Other.IsTile() || !l.world.Has(id, component.CTagTrigger) {
			continue
		}
		lbl, _ := l.world.Get(id, component.CLabel).(component.Label)
		labels = append(labels, lbl.Text)
		seen[id] = true
		if !l.touching[id] {
			l.log.Info("trigger touched",
				zap.Uint64("entity", uint64(l.player)),
				zap.Uint64("trigger", uint64(id)),
				zap.String("label", lbl.Text))
		}
	}
	l.touching = seen
	return labels
}
