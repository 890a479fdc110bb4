// Package scene owns the nodes and connections of a diagram and keeps them
// consistent: ids are never reused, every connection points at live nodes,
// and at most one connection joins any unordered pair of nodes.
//
// Connections are addressed by their position in Connections(). Any removal
// shifts later positions, so callers must not keep indices across mutations.
package scene

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"

	"behaviormap/internal/geometry"
)

// DefaultMargin is the inset from the canvas edges used when placing new nodes.
const DefaultMargin = 100.0

// Model is the scene. It is not safe for concurrent use; the event loop
// that owns it is the only writer.
type Model struct {
	nodes       []Node
	connections []Connection
	nextID      int

	width, height float64
	margin        float64

	rng *rand.Rand
	log *slog.Logger
}

type Option func(*Model)

// WithLogger sets the logger used to report no-op mutations.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.log = l }
}

// WithRand sets the random source used for default node placement.
func WithRand(r *rand.Rand) Option {
	return func(m *Model) { m.rng = r }
}

// WithMargin overrides DefaultMargin.
func WithMargin(margin float64) Option {
	return func(m *Model) { m.margin = margin }
}

// WithBounds sets the initial canvas size.
func WithBounds(width, height float64) Option {
	return func(m *Model) { m.width, m.height = width, height }
}

func New(opts ...Option) *Model {
	m := &Model{
		nodes:       make([]Node, 0),
		connections: make([]Connection, 0),
		margin:      DefaultMargin,
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return m
}

// SetBounds records the visible canvas size used for default placement.
func (m *Model) SetBounds(width, height float64) {
	m.width, m.height = width, height
}

func (m *Model) Bounds() (width, height float64) { return m.width, m.height }

// place picks a random coordinate in [margin, size-margin], or the center
// when the canvas is too small to hold the margins.
func (m *Model) place(size float64) float64 {
	span := size - 2*m.margin
	if span < 0 {
		return size / 2
	}
	return m.rng.Float64()*span + m.margin
}

// AddNode creates a node at a random position inside the visible canvas.
func (m *Model) AddNode(name string) (Node, error) {
	return m.AddNodeAt(name, m.place(m.width), m.place(m.height))
}

// AddNodeAt creates a node with its top-left corner at (x, y).
func (m *Model) AddNodeAt(name string, x, y float64) (Node, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Node{}, fmt.Errorf("%w: node name is empty", ErrValidation)
	}
	n := Node{ID: m.nextID, Name: name, X: x, Y: y}
	m.nextID++
	m.nodes = append(m.nodes, n)
	m.log.Debug("node added", "id", n.ID, "name", n.Name, "x", n.X, "y", n.Y)
	return n, nil
}

func (m *Model) indexOf(id int) int {
	for i, n := range m.nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// Node returns the node with the given id.
func (m *Model) Node(id int) (Node, bool) {
	if i := m.indexOf(id); i >= 0 {
		return m.nodes[i], true
	}
	return Node{}, false
}

// Nodes returns a copy of the nodes in creation order.
func (m *Model) Nodes() []Node {
	out := make([]Node, len(m.nodes))
	copy(out, m.nodes)
	return out
}

// Connections returns a copy of the connections in insertion order.
func (m *Model) Connections() []Connection {
	out := make([]Connection, len(m.connections))
	copy(out, m.connections)
	return out
}

func (m *Model) Connection(index int) (Connection, bool) {
	if index < 0 || index >= len(m.connections) {
		return Connection{}, false
	}
	return m.connections[index], true
}

func (m *Model) NodeCount() int       { return len(m.nodes) }
func (m *Model) ConnectionCount() int { return len(m.connections) }

// RemoveNode deletes the node and every connection touching it. It reports
// false when no node has that id.
func (m *Model) RemoveNode(id int) bool {
	i := m.indexOf(id)
	if i < 0 {
		m.log.Debug("remove node: not found", "id", id)
		return false
	}
	m.nodes = append(m.nodes[:i], m.nodes[i+1:]...)

	kept := make([]Connection, 0, len(m.connections))
	for _, c := range m.connections {
		if !c.Touches(id) {
			kept = append(kept, c)
		}
	}
	removed := len(m.connections) - len(kept)
	m.connections = kept
	m.log.Debug("node removed", "id", id, "connections_removed", removed)
	return true
}

// MoveNode overwrites the node position. Positions are not clamped.
func (m *Model) MoveNode(id int, x, y float64) bool {
	i := m.indexOf(id)
	if i < 0 {
		return false
	}
	m.nodes[i].X = x
	m.nodes[i].Y = y
	return true
}

// RenameNode replaces the node name.
func (m *Model) RenameNode(id int, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: node name is empty", ErrValidation)
	}
	i := m.indexOf(id)
	if i < 0 {
		return nil
	}
	m.nodes[i].Name = name
	return nil
}

// Connected reports whether a connection joins a and b in either direction.
func (m *Model) Connected(a, b int) bool {
	for _, c := range m.connections {
		if c.Joins(a, b) {
			return true
		}
	}
	return false
}

// AddConnection links from to "to". It returns nil with no error when the
// request is a no-op: either node is missing, the two ids are the same, or
// the pair is already connected in either direction. An empty label takes
// the type's display name, except for Other which needs its own label.
func (m *Model) AddConnection(from, to int, t ConnectionType, label string) (*Connection, error) {
	if from == to {
		m.log.Debug("add connection: self-loop ignored", "id", from)
		return nil, nil
	}
	if m.indexOf(from) < 0 || m.indexOf(to) < 0 {
		m.log.Debug("add connection: missing node", "from", from, "to", to)
		return nil, nil
	}
	if m.Connected(from, to) {
		m.log.Debug("add connection: pair already connected", "from", from, "to", to)
		return nil, nil
	}

	info, ok := Lookup(t)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrConfig, t)
	}
	label = strings.TrimSpace(label)
	if label == "" {
		if t == Other {
			return nil, fmt.Errorf("%w: custom connection label is empty", ErrValidation)
		}
		label = info.Name
	}

	c := Connection{From: from, To: to, Type: t, Label: label, Color: info.Color}
	m.connections = append(m.connections, c)
	m.log.Debug("connection added", "from", from, "to", to, "type", string(t))
	return &c, nil
}

// RemoveConnection deletes the connection at index.
func (m *Model) RemoveConnection(index int) error {
	if index < 0 || index >= len(m.connections) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndex, index, len(m.connections))
	}
	m.connections = append(m.connections[:index], m.connections[index+1:]...)
	return nil
}

// ClearConnections removes every connection and leaves the nodes alone. It
// reports false when there was nothing to clear.
func (m *Model) ClearConnections() bool {
	if len(m.connections) == 0 {
		m.log.Info("clear connections: nothing to clear")
		return false
	}
	m.log.Debug("connections cleared", "count", len(m.connections))
	m.connections = make([]Connection, 0)
	return true
}

// Endpoints returns the anchors of both ends of c, measured with mr.
func (m *Model) Endpoints(c Connection, mr Measurer) (from, to geometry.Point, ok bool) {
	a, okA := m.Node(c.From)
	b, okB := m.Node(c.To)
	if !okA || !okB {
		return geometry.Point{}, geometry.Point{}, false
	}
	aw, ah := mr.Measure(a)
	bw, bh := mr.Measure(b)
	return geometry.Anchor(a.X, a.Y, aw, ah), geometry.Anchor(b.X, b.Y, bw, bh), true
}

// FindConnectionAt returns the index of the first connection, in insertion
// order, whose segment passes within threshold of the world point, or -1.
func (m *Model) FindConnectionAt(x, y, threshold float64, mr Measurer) int {
	p := geometry.Point{X: x, Y: y}
	for i, c := range m.connections {
		from, to, ok := m.Endpoints(c, mr)
		if !ok {
			continue
		}
		if geometry.NearSegment(p, from, to, threshold) {
			return i
		}
	}
	return -1
}

// NodeAt returns the topmost node whose widget contains the world point, or -1.
func (m *Model) NodeAt(x, y float64, mr Measurer) int {
	p := geometry.Point{X: x, Y: y}
	for i := len(m.nodes) - 1; i >= 0; i-- {
		n := m.nodes[i]
		w, h := mr.Measure(n)
		if (geometry.Rect{X: n.X, Y: n.Y, W: w, H: h}).Contains(p) {
			return n.ID
		}
	}
	return -1
}
