// Package scene loads scene descriptions from YAML files. A scene lists the static brushes, the
// dynamic colliders, an optional height map and the actors that move through it.
package scene

import (
	"bytes"
	"os"
	"strings"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/capsim/brush"
	"github.com/oomph-ac/capsim/collision"
	"github.com/oomph-ac/capsim/game"
	"github.com/oomph-ac/capsim/oerror"
	"github.com/oomph-ac/capsim/sweep"
	"github.com/oomph-ac/capsim/terrain"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Scene is the decoded content of a scene file.
type Scene struct {
	Brushes   []Brush    `yaml:"brushes"`
	Colliders []Collider `yaml:"colliders"`
	Terrain   *Terrain   `yaml:"terrain"`
	Actors    []Actor    `yaml:"actors"`
}

// Brush is either an axis aligned box given by Min and Max or a convex hull given by Vertices and
// Faces. A box with Slope set becomes a ramp rising along +x.
type Brush struct {
	Min      *mgl32.Vec3  `yaml:"min"`
	Max      *mgl32.Vec3  `yaml:"max"`
	Slope    bool         `yaml:"slope"`
	Vertices []mgl32.Vec3 `yaml:"vertices"`
	Faces    [][]int      `yaml:"faces"`
	Flags    []string     `yaml:"flags"`
}

// Collider is a capsule registered under an actor ID.
type Collider struct {
	ID      int64      `yaml:"id"`
	Center  mgl32.Vec3 `yaml:"center"`
	HalfLen float32    `yaml:"half_len"`
	Radius  float32    `yaml:"radius"`
}

// Terrain is a height map with (Cols+1)*(Rows+1) heights, row by row along z.
type Terrain struct {
	Origin   [2]float32 `yaml:"origin"`
	CellSize float32    `yaml:"cell_size"`
	Cols     int        `yaml:"cols"`
	Rows     int        `yaml:"rows"`
	Heights  []float32  `yaml:"heights"`
}

// Actor is a capsule driven by the solver every frame.
type Actor struct {
	ID      int64      `yaml:"id"`
	Center  mgl32.Vec3 `yaml:"center"`
	HalfLen float32    `yaml:"half_len"`
	Radius  float32    `yaml:"radius"`
	WishDir mgl32.Vec3 `yaml:"wish_dir"`
	Speed   float32    `yaml:"speed"`
	// Jump makes the actor jump on the first frame it stands on ground.
	Jump bool `yaml:"jump"`
	// Collide registers the actor as a dynamic collider other actors run into.
	Collide bool `yaml:"collide"`
}

var flagNames = map[string]brush.Flag{
	"skip_move":   brush.FlagSkipMoveTrace,
	"skip_camera": brush.FlagSkipCameraTrace,
	"terrain":     brush.FlagTerrain,
}

// Load reads and decodes the scene file at path.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read scene")
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "scene %s", path)
	}
	return s, nil
}

// Parse decodes a scene. Unknown keys are rejected.
func Parse(data []byte) (*Scene, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	s := &Scene{}
	if err := dec.Decode(s); err != nil {
		return nil, errors.Wrap(err, "decode scene")
	}
	return s, s.validate()
}

func (s *Scene) validate() error {
	for i, c := range s.Colliders {
		if c.Radius <= 0 || c.HalfLen < 0 {
			return oerror.New(game.ErrorCapsuleShape, "collider", i)
		}
	}
	seen := make(map[int64]struct{}, len(s.Actors))
	for i, a := range s.Actors {
		if a.Radius <= 0 || a.HalfLen < 0 {
			return oerror.New(game.ErrorCapsuleShape, "actor", i)
		}
		if _, ok := seen[a.ID]; ok {
			return oerror.New(game.ErrorDuplicateActor, a.ID)
		}
		seen[a.ID] = struct{}{}
	}
	return nil
}

// Build converts the brush descriptions into brushes.
func (s *Scene) Build() ([]*brush.Brush, error) {
	brushes := make([]*brush.Brush, 0, len(s.Brushes))
	for i, d := range s.Brushes {
		b, err := d.build(i)
		if err != nil {
			return nil, err
		}
		brushes = append(brushes, b)
	}
	return brushes, nil
}

func (d Brush) build(i int) (*brush.Brush, error) {
	flags, err := parseFlags(d.Flags)
	if err != nil {
		return nil, err
	}
	switch {
	case d.Min != nil && d.Max != nil && len(d.Vertices) == 0:
		box := cube.Box(d.Min[0], d.Min[1], d.Min[2], d.Max[0], d.Max[1], d.Max[2])
		if d.Slope {
			return brush.Sloped(box, flags), nil
		}
		return brush.FromBBox(box, flags), nil
	case d.Min == nil && d.Max == nil && len(d.Vertices) > 0:
		b, err := brush.FromHull(d.Vertices, d.Faces, flags)
		if err != nil {
			return nil, errors.Wrapf(err, "brush %d", i)
		}
		return b, nil
	}
	return nil, oerror.New(game.ErrorBrushShape, i)
}

func parseFlags(names []string) (brush.Flag, error) {
	var f brush.Flag
	for _, n := range names {
		v, ok := flagNames[strings.ToLower(n)]
		if !ok {
			return 0, oerror.New(game.ErrorUnknownFlag, n)
		}
		f |= v
	}
	return f, nil
}

// Apply replaces the geometry of the manager with the scene's brushes, colliders and terrain.
// Actors with Collide set are registered as colliders at their start position.
func (s *Scene) Apply(m *collision.Manager) error {
	brushes, err := s.Build()
	if err != nil {
		return err
	}

	var hm *terrain.HeightMap
	if t := s.Terrain; t != nil {
		if hm, err = terrain.New(t.Origin[0], t.Origin[1], t.CellSize, t.Cols, t.Rows, t.Heights); err != nil {
			return errors.Wrap(err, "terrain")
		}
	}

	m.Unload()
	m.Build(brushes)
	m.SetTerrain(hm)
	for _, c := range s.Colliders {
		m.SetCollider(c.ID, sweep.Capsule{Center: c.Center, HalfLen: c.HalfLen, Radius: c.Radius})
	}
	for _, a := range s.Actors {
		if a.Collide {
			m.SetCollider(a.ID, a.Capsule())
		}
	}
	return nil
}

// Capsule returns the actor's capsule at its start position.
func (a Actor) Capsule() sweep.Capsule {
	return sweep.Capsule{Center: a.Center, HalfLen: a.HalfLen, Radius: a.Radius}
}
