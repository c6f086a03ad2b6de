package capsim

import (
	"log/slog"
	"sync"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/capsim/collision"
	"github.com/oomph-ac/capsim/movement"
	"github.com/oomph-ac/capsim/scene"
	"github.com/oomph-ac/capsim/settings"
	"github.com/oomph-ac/capsim/worker"
)

// Actor is a capsule moved by the World every frame.
type Actor struct {
	ID    int64
	State *movement.State

	// WishDir and Speed are the horizontal input applied every frame.
	WishDir mgl32.Vec3
	Speed   float32
	// Jump is consumed on the next frame the actor stands on ground.
	Jump bool
	// Collide keeps a dynamic collider at the actor's position for other actors to run into.
	Collide bool
}

// World ties the collision manager and the movement solver together and drives a set of actors
// through them.
type World struct {
	settings settings.Settings
	manager  *collision.Manager
	solver   *movement.Solver
	pool     *worker.Pool
	log      *slog.Logger

	actorMu sync.Mutex
	actors  *orderedmap.OrderedMap[int64, *Actor]
	frames  uint64
}

// New returns an empty world tuned by s. A nil logger discards everything. A nil pool uses the
// process wide worker pool.
func New(s settings.Settings, log *slog.Logger, pool *worker.Pool) *World {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if pool == nil {
		pool = worker.Default()
	}
	m := collision.NewManager(s.CollisionConfig(log))
	return &World{
		settings: s,
		manager:  m,
		solver:   movement.NewSolver(m, s.SolverOptions(log)),
		pool:     pool,
		log:      log,
		actors:   orderedmap.NewOrderedMap[int64, *Actor](),
	}
}

// LoadScene replaces the geometry and actors of the world with the scene's.
func (w *World) LoadScene(sc *scene.Scene) error {
	if err := sc.Apply(w.manager); err != nil {
		return err
	}

	w.actorMu.Lock()
	w.actors = orderedmap.NewOrderedMap[int64, *Actor]()
	w.actorMu.Unlock()
	for _, a := range sc.Actors {
		w.AddActor(a)
	}

	stats := w.manager.Stats()
	w.log.Info("scene loaded", "brushes", stats.Brushes, "nodes", stats.Nodes, "actors", len(sc.Actors))
	return nil
}

// AddActor adds an actor described by a, replacing any actor with the same ID.
func (w *World) AddActor(a scene.Actor) *Actor {
	st := movement.NewState(a.Center, a.HalfLen, a.Radius)
	w.settings.ApplyState(st)
	st.ActorID = a.ID

	actor := &Actor{
		ID:      a.ID,
		State:   st,
		WishDir: a.WishDir,
		Speed:   a.Speed,
		Jump:    a.Jump,
		Collide: a.Collide,
	}
	if a.Collide {
		w.manager.SetCollider(a.ID, a.Capsule())
	} else {
		w.manager.RemoveCollider(a.ID)
	}

	w.actorMu.Lock()
	w.actors.Set(a.ID, actor)
	w.actorMu.Unlock()
	return actor
}

// RemoveActor removes an actor and its collider.
func (w *World) RemoveActor(id int64) bool {
	w.actorMu.Lock()
	ok := w.actors.Delete(id)
	w.actorMu.Unlock()
	if ok {
		w.manager.RemoveCollider(id)
	}
	return ok
}

// Actor returns the actor with the ID passed.
func (w *World) Actor(id int64) (*Actor, bool) {
	w.actorMu.Lock()
	defer w.actorMu.Unlock()
	return w.actors.Get(id)
}

// Actors returns every actor in the order they were added.
func (w *World) Actors() []*Actor {
	w.actorMu.Lock()
	defer w.actorMu.Unlock()

	actors := make([]*Actor, 0, w.actors.Len())
	for el := w.actors.Front(); el != nil; el = el.Next() {
		actors = append(actors, el.Value)
	}
	return actors
}

// SetInput changes the horizontal input of an actor and optionally queues a jump.
func (w *World) SetInput(id int64, dir mgl32.Vec3, speed float32, jump bool) bool {
	w.actorMu.Lock()
	defer w.actorMu.Unlock()

	a, ok := w.actors.Get(id)
	if !ok {
		return false
	}
	a.WishDir, a.Speed = dir, speed
	a.Jump = a.Jump || jump
	return true
}

// Step advances every actor by dt seconds. Actors move in parallel against the colliders as they
// were at the start of the frame; colliders follow their actors once every move is done.
func (w *World) Step(dt float32) {
	w.actorMu.Lock()
	defer w.actorMu.Unlock()

	jumpSpeed := movement.JumpStartSpeed(w.settings.Movement.Gravity, w.settings.Movement.JumpHeight)
	states := make([]*movement.State, 0, w.actors.Len())
	for el := w.actors.Front(); el != nil; el = el.Next() {
		a := el.Value
		var speedV float32
		if a.Jump && a.State.Grounded() {
			speedV, a.Jump = jumpSpeed, false
		}
		a.State.SetInput(a.WishDir, a.Speed, dt, speedV)
		states = append(states, a.State)
	}
	w.solver.MoveBatch(states, w.pool)

	for el := w.actors.Front(); el != nil; el = el.Next() {
		a := el.Value
		if a.Collide {
			w.manager.SetCollider(a.ID, a.State.Capsule())
		}
		if a.State.Outcome != movement.OutcomeNormal {
			w.log.Debug("actor move", "actor", a.ID, "outcome", a.State.Outcome.String(), "pos", a.State.Center)
		}
	}
	w.frames++
}

// Frames returns how many frames the world has been stepped.
func (w *World) Frames() uint64 {
	w.actorMu.Lock()
	defer w.actorMu.Unlock()
	return w.frames
}

// Manager returns the collision manager of the world.
func (w *World) Manager() *collision.Manager {
	return w.manager
}

// Solver returns the movement solver of the world.
func (w *World) Solver() *movement.Solver {
	return w.solver
}

// Settings returns the settings the world was created with.
func (w *World) Settings() settings.Settings {
	return w.settings
}
