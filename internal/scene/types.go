package scene

// ConnectionType is the kind of a connection between two nodes.
type ConnectionType string

const (
	PositiveReinforcement ConnectionType = "positive_reinforcement"
	NegativeReinforcement ConnectionType = "negative_reinforcement"
	PositivePunishment    ConnectionType = "positive_punishment"
	NegativePunishment    ConnectionType = "negative_punishment"
	Other                 ConnectionType = "other"
)

// TypeInfo is the fixed display name and color of a connection type.
type TypeInfo struct {
	Name  string
	Color string
}

var connectionTypes = map[ConnectionType]TypeInfo{
	PositiveReinforcement: {Name: "Reforço Positivo", Color: "#10b981"},
	NegativeReinforcement: {Name: "Reforço Negativo", Color: "#3b82f6"},
	PositivePunishment:    {Name: "Punição Positiva", Color: "#ef4444"},
	NegativePunishment:    {Name: "Punição Negativa", Color: "#f97316"},
	Other:                 {Name: "Outro", Color: "#8b5cf6"},
}

// ConnectionTypes lists the types in presentation order.
var ConnectionTypes = []ConnectionType{
	PositiveReinforcement,
	NegativeReinforcement,
	PositivePunishment,
	NegativePunishment,
	Other,
}

// Lookup returns the display info of t.
func Lookup(t ConnectionType) (TypeInfo, bool) {
	info, ok := connectionTypes[t]
	return info, ok
}

// Node is a labeled box placed in world space. X and Y are the top-left
// corner; width and height belong to the rendered widget, not the model.
type Node struct {
	ID   int
	Name string
	X    float64
	Y    float64
}

// Connection links two nodes. Color is copied from the type table when the
// connection is created.
type Connection struct {
	From  int
	To    int
	Type  ConnectionType
	Label string
	Color string
}

// Joins reports whether c connects a and b in either direction.
func (c Connection) Joins(a, b int) bool {
	return (c.From == a && c.To == b) || (c.From == b && c.To == a)
}

// Touches reports whether c references the node id at either end.
func (c Connection) Touches(id int) bool {
	return c.From == id || c.To == id
}

// Measurer reports the rendered size of a node's widget in world units.
type Measurer interface {
	Measure(n Node) (width, height float64)
}

// MeasurerFunc adapts a function to Measurer.
type MeasurerFunc func(n Node) (float64, float64)

func (f MeasurerFunc) Measure(n Node) (float64, float64) { return f(n) }
