package services

import (
	"github.com/google/uuid"

	"github.com/ghuser/stowage/services/item/domain"
	"github.com/ghuser/stowage/services/item/domain/models"
)

// Node is one item placed in a materialized tree.
type Node struct {
	Item     models.Item
	Children []*Node

	// Truncated marks a node whose name is already on the path from the
	// tree root. It is emitted as a leaf and reported in Tree.Cycles.
	Truncated bool

	// Shadowed marks an item whose name is carried by an earlier item in
	// store order. Children of that name attach to the earlier item only.
	Shadowed bool
}

// Cycle records where materialization stopped descending.
type Cycle struct {
	ItemID uuid.UUID
	Name   string
	// Path lists names from the tree root down to the revisited name.
	Path []string
}

// Tree is the hierarchy derived below a single name.
type Tree struct {
	Name string
	// Item is the first item carrying Name, nil when none does.
	Item     *models.Item
	Children []*Node
	Cycles   []Cycle
	// Size counts nodes below the tree root.
	Size int
}

// names maps each name to the index of the first item carrying it.
type names map[string]int

func indexNames(items []models.Item) names {
	idx := make(names, len(items))
	for i := range items {
		n := items[i].Name.String()
		if _, ok := idx[n]; !ok {
			idx[n] = i
		}
	}
	return idx
}

func indexOf(items []models.Item, id uuid.UUID) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// ChildrenOf returns the items whose location equals location exactly, in
// store order. Names are compared case-sensitively with no normalization.
func ChildrenOf(items []models.Item, location string) []models.Item {
	var out []models.Item
	for _, it := range items {
		if it.Location == location {
			out = append(out, it)
		}
	}
	return out
}

// Materialize builds the tree below rootName depth-first, preserving store
// order at each level. Only the first item carrying a name is expanded, so
// every item appears under at most one parent; later items sharing a name
// are shadowed leaves. A first-carrier whose name is already on the current
// path is emitted as a truncated leaf and recorded as a cycle. Malformed data never errors.
func Materialize(items []models.Item, rootName string) *Tree {
	idx := indexNames(items)
	t := &Tree{Name: rootName}
	if i, ok := idx[rootName]; ok {
		item := items[i]
		t.Item = &item
	}

	b := &treeBuilder{items: items, first: idx, onPath: map[string]bool{rootName: true}, tree: t}
	b.path = []string{rootName}
	t.Children = b.expand(rootName)
	return t
}

type treeBuilder struct {
	items  []models.Item
	first  names
	onPath map[string]bool
	path   []string
	tree   *Tree
}

func (b *treeBuilder) expand(name string) []*Node {
	var nodes []*Node
	for i := range b.items {
		it := b.items[i]
		if it.Location != name {
			continue
		}
		b.tree.Size++
		n := &Node{Item: it}
		child := it.Name.String()

		switch {
		case b.first[child] != i:
			n.Shadowed = true
		case b.onPath[child]:
			n.Truncated = true
			path := make([]string, len(b.path), len(b.path)+1)
			copy(path, b.path)
			b.tree.Cycles = append(b.tree.Cycles, Cycle{ItemID: it.ID, Name: child, Path: append(path, child)})
		default:
			b.onPath[child] = true
			b.path = append(b.path, child)
			n.Children = b.expand(child)
			b.path = b.path[:len(b.path)-1]
			delete(b.onPath, child)
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// Walk visits every node of the tree in depth-first order.
func (t *Tree) Walk(fn func(n *Node)) {
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			fn(n)
			walk(n.Children)
		}
	}
	walk(t.Children)
}

// Ancestors returns the resolved parents of id, nearest first. Each step
// follows Location to the first item carrying that name. The walk stops at
// an empty or dangling location and at an item it has already visited.
func Ancestors(items []models.Item, id uuid.UUID) ([]models.Item, error) {
	i := indexOf(items, id)
	if i < 0 {
		return nil, domain.NotFound(id)
	}
	return ancestorsAt(items, indexNames(items), i), nil
}

func ancestorsAt(items []models.Item, first names, i int) []models.Item {
	var out []models.Item
	seen := map[int]bool{i: true}
	for loc := items[i].Location; loc != ""; {
		p, ok := first[loc]
		if !ok || seen[p] {
			break
		}
		seen[p] = true
		out = append(out, items[p])
		loc = items[p].Location
	}
	return out
}

// DepthOf returns the number of resolved ancestors of id. The root is 0.
func DepthOf(items []models.Item, id uuid.UUID) (int, error) {
	a, err := Ancestors(items, id)
	if err != nil {
		return 0, err
	}
	return len(a), nil
}

// IsLeaf reports whether no item names id's item as its location.
func IsLeaf(items []models.Item, id uuid.UUID) (bool, error) {
	i := indexOf(items, id)
	if i < 0 {
		return false, domain.NotFound(id)
	}
	name := items[i].Name.String()
	for _, it := range items {
		if it.Location == name {
			return false, nil
		}
	}
	return true, nil
}

// ParentOf returns the first item in store order whose name matches id's
// location. It returns nil for the root and for a dangling location.
func ParentOf(items []models.Item, id uuid.UUID) (*models.Item, error) {
	i := indexOf(items, id)
	if i < 0 {
		return nil, domain.NotFound(id)
	}
	loc := items[i].Location
	if loc == "" {
		return nil, nil
	}
	p, ok := indexNames(items)[loc]
	if !ok {
		return nil, nil
	}
	parent := items[p]
	return &parent, nil
}

// RootOf returns the item flagged as root.
func RootOf(items []models.Item) (models.Item, bool) {
	for _, it := range items {
		if it.IsRoot {
			return it, true
		}
	}
	return models.Item{}, false
}

// IsDangling reports whether a non-empty location names no item.
func IsDangling(items []models.Item, location string) bool {
	if location == "" {
		return false
	}
	_, ok := indexNames(items)[location]
	return !ok
}

// Orphans returns the non-root items with no parent: their location is
// empty or matches no item name.
func Orphans(items []models.Item) []models.Item {
	idx := indexNames(items)
	var out []models.Item
	for _, it := range items {
		if it.IsRoot {
			continue
		}
		if _, ok := idx[it.Location]; it.Location == "" || !ok {
			out = append(out, it)
		}
	}
	return out
}

// Unreachable returns the non-root items that do not appear in the tree
// materialized from the root, in store order. This covers orphans, their
// descendants and islands closed by a location cycle.
func Unreachable(items []models.Item) []models.Item {
	reached := map[uuid.UUID]bool{}
	if root, ok := RootOf(items); ok {
		reached[root.ID] = true
		Materialize(items, root.Name.String()).Walk(func(n *Node) {
			reached[n.Item.ID] = true
		})
	}
	var out []models.Item
	for _, it := range items {
		if !it.IsRoot && !reached[it.ID] {
			out = append(out, it)
		}
	}
	return out
}

// CreatesCycle reports whether setting id's location to location would put
// id among its own ancestors.
func CreatesCycle(items []models.Item, id uuid.UUID, location string) bool {
	if location == "" {
		return false
	}
	first := indexNames(items)
	seen := map[int]bool{}
	for loc := location; loc != ""; {
		p, ok := first[loc]
		if !ok || seen[p] {
			return false
		}
		if items[p].ID == id {
			return true
		}
		seen[p] = true
		loc = items[p].Location
	}
	return false
}

// CountLocatedIn returns how many items use name as their location.
func CountLocatedIn(items []models.Item, name string) int {
	n := 0
	for _, it := range items {
		if it.Location == name {
			n++
		}
	}
	return n
}

// HasName reports whether any item carries name.
func HasName(items []models.Item, name string) bool {
	for _, it := range items {
		if it.Name.Names(name) {
			return true
		}
	}
	return false
}
