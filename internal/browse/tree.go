package browse

import "stayhunt/internal/domain"

// Tree is the two-level expandable location -> sub-location navigation
// surface, built client-side from the flat stats the API serves. Node
// order follows the server's (count descending); expansion state is
// per-node and defaults to collapsed.
type Tree struct {
	Locations []*LocationNode
}

type LocationNode struct {
	Name         string
	Count        int
	Expanded     bool
	SubLocations []SubNode
}

type SubNode struct {
	Name  string
	Count int
}

// NewTree builds the tree, preserving the order of stats and of each
// stat's sub-locations.
func NewTree(stats []domain.LocationStat) *Tree {
	t := &Tree{Locations: make([]*LocationNode, 0, len(stats))}
	for _, st := range stats {
		n := &LocationNode{Name: st.Location, Count: st.Count}
		for _, sub := range st.SubLocations {
			n.SubLocations = append(n.SubLocations, SubNode{Name: sub.Name, Count: sub.Count})
		}
		t.Locations = append(t.Locations, n)
	}
	return t
}

// Node returns the location node by name, or nil.
func (t *Tree) Node(location string) *LocationNode {
	for _, n := range t.Locations {
		if n.Name == location {
			return n
		}
	}
	return nil
}

// Toggle flips a location's disclosure state and reports the new state.
func (t *Tree) Toggle(location string) bool {
	if n := t.Node(location); n != nil {
		n.Expanded = !n.Expanded
		return n.Expanded
	}
	return false
}

// ExpandFirst pre-expands the top location, for screens whose location
// section starts open.
func (t *Tree) ExpandFirst() {
	if len(t.Locations) > 0 {
		t.Locations[0].Expanded = true
	}
}
