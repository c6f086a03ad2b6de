package collision

import (
	"log/slog"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/capsim/brush"
	"github.com/oomph-ac/capsim/game"
	"github.com/oomph-ac/capsim/octree"
	"github.com/oomph-ac/capsim/sweep"
	"github.com/oomph-ac/capsim/terrain"
	"github.com/sasha-s/go-deadlock"
)

// Config holds the parameters a Manager is created with.
type Config struct {
	// Narrow is the narrow phase used for brushes and colliders. sweep.DefaultClipper is used if nil.
	Narrow sweep.NarrowPhase

	MinBrushesPerNode int
	MinNodeSize       float32

	// CameraSize is the radius of the camera sphere, CameraMinIncidence the smallest incidence the
	// camera pull-back divides by.
	CameraSize         float32
	CameraMinIncidence float32

	Log *slog.Logger
}

// DefaultConfig returns the default manager configuration.
func DefaultConfig() Config {
	return Config{
		MinBrushesPerNode: game.OctreeMinBrushes,
		MinNodeSize:       game.OctreeMinNodeSize,

		CameraSize:         game.CameraSize,
		CameraMinIncidence: game.CameraMinIncidence,
	}
}

// Manager owns the static collision geometry of a scene: the brush octree, the dynamic capsule
// colliders of actors and an optional height map. Queries may run concurrently; geometry changes
// wait for running queries to finish.
type Manager struct {
	tree      *octree.Tree
	narrow    sweep.NarrowPhase
	byID      map[uint64]*brush.Brush
	colliders *orderedmap.OrderedMap[int64, sweep.Capsule]
	terrain   *terrain.HeightMap

	minBrushes int
	minSize    float32

	cameraSize      float32
	cameraIncidence float32

	log *slog.Logger

	deadlock.RWMutex
}

// NewManager returns an empty manager.
func NewManager(cfg Config) *Manager {
	if cfg.Narrow == nil {
		cfg.Narrow = sweep.DefaultClipper()
	}
	if cfg.MinBrushesPerNode <= 0 {
		cfg.MinBrushesPerNode = game.OctreeMinBrushes
	}
	if cfg.MinNodeSize <= 0 {
		cfg.MinNodeSize = game.OctreeMinNodeSize
	}
	if cfg.CameraSize <= 0 {
		cfg.CameraSize = game.CameraSize
	}
	if cfg.CameraMinIncidence <= 0 {
		cfg.CameraMinIncidence = game.CameraMinIncidence
	}
	return &Manager{
		tree:       octree.New(cfg.Narrow),
		narrow:     cfg.Narrow,
		byID:       make(map[uint64]*brush.Brush),
		colliders:  orderedmap.NewOrderedMap[int64, sweep.Capsule](),
		minBrushes: cfg.MinBrushesPerNode,
		minSize:    cfg.MinNodeSize,

		cameraSize:      cfg.CameraSize,
		cameraIncidence: cfg.CameraMinIncidence,

		log: cfg.Log,
	}
}

// Build replaces all brushes of the manager.
func (m *Manager) Build(brushes []*brush.Brush) {
	m.BuildWith(brushes, m.minBrushes, m.minSize)
}

// BuildWith replaces all brushes of the manager using a different split policy. The policy is kept
// for later additions and removals. Of several brushes with the same ID only the first is kept.
func (m *Manager) BuildWith(brushes []*brush.Brush, minBrushes int, minSize float32) {
	m.Lock()
	defer m.Unlock()

	if minBrushes > 0 {
		m.minBrushes = minBrushes
	}
	if minSize > 0 {
		m.minSize = minSize
	}
	clear(m.byID)
	unique := make([]*brush.Brush, 0, len(brushes))
	for _, b := range brushes {
		if b == nil {
			continue
		}
		if _, ok := m.byID[b.ID]; ok {
			continue
		}
		m.byID[b.ID] = b
		unique = append(unique, b)
	}
	m.tree.Build(unique, m.minBrushes, m.minSize)
	m.logStats("collision geometry built")
}

// AddBrushes adds brushes to the scene and returns how many were new. A brush with the same ID as one
// already present is skipped.
func (m *Manager) AddBrushes(brushes ...*brush.Brush) int {
	m.Lock()
	defer m.Unlock()

	fresh := make([]*brush.Brush, 0, len(brushes))
	for _, b := range brushes {
		if b == nil {
			continue
		}
		if _, ok := m.byID[b.ID]; ok {
			continue
		}
		m.byID[b.ID] = b
		fresh = append(fresh, b)
	}
	added := m.tree.AddBrushes(fresh...)
	if added > 0 {
		m.logStats("collision brushes added", "added", added)
	}
	return added
}

// RemoveBrushes removes brushes from the scene and returns how many were present.
func (m *Manager) RemoveBrushes(brushes ...*brush.Brush) int {
	ids := make([]uint64, 0, len(brushes))
	for _, b := range brushes {
		if b != nil {
			ids = append(ids, b.ID)
		}
	}
	return m.RemoveBrushIDs(ids...)
}

// RemoveBrushIDs removes the brushes with the IDs passed and returns how many were present.
func (m *Manager) RemoveBrushIDs(ids ...uint64) int {
	m.Lock()
	defer m.Unlock()

	drop := make([]*brush.Brush, 0, len(ids))
	for _, id := range ids {
		if b, ok := m.byID[id]; ok {
			drop = append(drop, b)
			delete(m.byID, id)
		}
	}
	removed := m.tree.RemoveBrushes(drop...)
	if removed > 0 {
		m.logStats("collision brushes removed", "removed", removed)
	}
	return removed
}

// Brush returns the brush with the ID passed.
func (m *Manager) Brush(id uint64) (*brush.Brush, bool) {
	m.RLock()
	defer m.RUnlock()
	b, ok := m.byID[id]
	return b, ok
}

// Brushes returns every brush in the scene.
func (m *Manager) Brushes() []*brush.Brush {
	m.RLock()
	defer m.RUnlock()
	return m.tree.Brushes()
}

// Unload drops all geometry, colliders and terrain.
func (m *Manager) Unload() {
	m.Lock()
	defer m.Unlock()

	m.tree.Release()
	clear(m.byID)
	m.colliders = orderedmap.NewOrderedMap[int64, sweep.Capsule]()
	m.terrain = nil
	if m.log != nil {
		m.log.Info("collision scene unloaded")
	}
}

// SetCollider adds or moves the dynamic capsule of an actor.
func (m *Manager) SetCollider(id int64, c sweep.Capsule) {
	m.Lock()
	m.colliders.Set(id, c)
	m.Unlock()
}

// RemoveCollider removes the dynamic capsule of an actor.
func (m *Manager) RemoveCollider(id int64) bool {
	m.Lock()
	defer m.Unlock()
	return m.colliders.Delete(id)
}

// Collider returns the dynamic capsule of an actor.
func (m *Manager) Collider(id int64) (sweep.Capsule, bool) {
	m.RLock()
	defer m.RUnlock()
	return m.colliders.Get(id)
}

// Colliders returns the IDs of all dynamic colliders, in the order they were first added.
func (m *Manager) Colliders() []int64 {
	m.RLock()
	defer m.RUnlock()
	return m.colliders.Keys()
}

// SetTerrain sets the height map traced by env queries. A nil height map removes the terrain.
func (m *Manager) SetTerrain(h *terrain.HeightMap) {
	m.Lock()
	m.terrain = h
	m.Unlock()
}

// Terrain returns the current height map, if any.
func (m *Manager) Terrain() *terrain.HeightMap {
	m.RLock()
	defer m.RUnlock()
	return m.terrain
}

// Stats returns the shape of the brush octree.
func (m *Manager) Stats() octree.Stats {
	m.RLock()
	defer m.RUnlock()
	return m.tree.Stats()
}

// PointInBrush reports whether any movement brush contains the point, grown by offset.
func (m *Manager) PointInBrush(p mgl32.Vec3, offset float32) bool {
	if m == nil {
		return false
	}
	m.RLock()
	defer m.RUnlock()
	return m.tree.PointInBrush(p, offset)
}

// logStats logs the octree shape. The write lock must be held.
func (m *Manager) logStats(msg string, args ...any) {
	if m.log == nil {
		return
	}
	s := m.tree.Stats()
	m.log.Info(msg, append(args,
		"brushes", s.Brushes,
		"nodes", s.Nodes,
		"leaves", s.Leaves,
		"depth", s.MaxDepth,
	)...)
}
