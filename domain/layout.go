package domain

// NodeKind distinguishes layout tree nodes.
type NodeKind string

const (
	NodeContainer NodeKind = "container"
	NodeSlot      NodeKind = "slot"
	NodeHeading   NodeKind = "heading"
	NodeBadge     NodeKind = "badge"
)

type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// NodeRole names what a container represents within a card.
type NodeRole string

const (
	RoleCard         NodeRole = "card"
	RoleStack        NodeRole = "stack"
	RoleRow          NodeRole = "row"
	RoleTextStack    NodeRole = "text_stack"
	RolePublisherRow NodeRole = "publisher_row"
)

// NoCell marks nodes that are not owned by a cell.
const NoCell = -1

// LayoutNode is one node of a card's display tree.
type LayoutNode struct {
	Kind            NodeKind      `json:"kind"`
	Role            NodeRole      `json:"role,omitempty"`
	Orientation     Orientation   `json:"orientation,omitempty"`
	Cell            int           `json:"cell"`
	Slot            SlotName      `json:"slot,omitempty"`
	Label           string        `json:"label,omitempty"`
	EffectiveHeight int           `json:"effective_height,omitempty"`
	Children        []*LayoutNode `json:"children,omitempty"`
}

func NewContainer(role NodeRole, orientation Orientation, cell int, children ...*LayoutNode) *LayoutNode {
	return &LayoutNode{Kind: NodeContainer, Role: role, Orientation: orientation, Cell: cell, Children: children}
}

func NewSlotNode(cell int, slot SlotName) *LayoutNode {
	return &LayoutNode{Kind: NodeSlot, Cell: cell, Slot: slot}
}

func NewHeading(label string) *LayoutNode {
	return &LayoutNode{Kind: NodeHeading, Cell: NoCell, Label: label}
}

func NewBadge(cell int, label string) *LayoutNode {
	return &LayoutNode{Kind: NodeBadge, Cell: cell, Label: label}
}

// Walk visits the subtree depth first, parents before children.
func (n *LayoutNode) Walk(fn func(*LayoutNode)) {
	if n == nil {
		return
	}
	fn(n)
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Find returns every node in the subtree matching pred.
func (n *LayoutNode) Find(pred func(*LayoutNode) bool) []*LayoutNode {
	var out []*LayoutNode
	n.Walk(func(node *LayoutNode) {
		if pred(node) {
			out = append(out, node)
		}
	})
	return out
}

// LayoutTree is the result of building one card.
type LayoutTree struct {
	CardType CardType
	Position int
	Root     *LayoutNode
	Cells    []*CellViewModel
	Liveness *Liveness
}

// IsEmpty reports whether nothing was built, as for an unsupported card type.
func (t *LayoutTree) IsEmpty() bool {
	return t == nil || t.Root == nil
}

// CellOrder lists cell indexes in the order their slots appear in the tree.
func (t *LayoutTree) CellOrder() []int {
	if t.IsEmpty() {
		return nil
	}
	seen := make(map[int]bool)
	var order []int
	t.Root.Walk(func(n *LayoutNode) {
		if n.Kind != NodeSlot || n.Cell == NoCell || seen[n.Cell] {
			return
		}
		seen[n.Cell] = true
		order = append(order, n.Cell)
	})
	return order
}
