package services

import (
	"github.com/google/uuid"

	pkgcache "github.com/ghuser/stowage/pkg/cache"
	"github.com/ghuser/stowage/services/item/domain/models"
	domainsvcs "github.com/ghuser/stowage/services/item/domain/services"
)

func toCachedTree(t *domainsvcs.Tree) *pkgcache.CachedTree {
	out := &pkgcache.CachedTree{
		Name:     t.Name,
		Children: toCachedNodes(t.Children),
		Size:     t.Size,
	}
	if t.Item != nil {
		id := t.Item.ID
		out.ItemID = &id
	}
	for _, c := range t.Cycles {
		out.Cycles = append(out.Cycles, pkgcache.CachedCycle{ItemID: c.ItemID, Name: c.Name, Path: c.Path})
	}
	return out
}

func toCachedNodes(nodes []*domainsvcs.Node) []pkgcache.CachedNode {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]pkgcache.CachedNode, len(nodes))
	for i, n := range nodes {
		out[i] = pkgcache.CachedNode{
			ID:        n.Item.ID,
			Truncated: n.Truncated,
			Shadowed:  n.Shadowed,
			Children:  toCachedNodes(n.Children),
		}
	}
	return out
}

// fromCachedTree rebuilds a tree from cached ids and the snapshot the cache
// key was derived from. It reports false when an id is not in items.
func fromCachedTree(c *pkgcache.CachedTree, items []models.Item) (*domainsvcs.Tree, bool) {
	byID := make(map[uuid.UUID]models.Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	t := &domainsvcs.Tree{Name: c.Name, Size: c.Size}
	if c.ItemID != nil {
		it, ok := byID[*c.ItemID]
		if !ok {
			return nil, false
		}
		t.Item = &it
	}
	children, ok := fromCachedNodes(c.Children, byID)
	if !ok {
		return nil, false
	}
	t.Children = children
	for _, cy := range c.Cycles {
		t.Cycles = append(t.Cycles, domainsvcs.Cycle{ItemID: cy.ItemID, Name: cy.Name, Path: cy.Path})
	}
	return t, true
}

func fromCachedNodes(nodes []pkgcache.CachedNode, byID map[uuid.UUID]models.Item) ([]*domainsvcs.Node, bool) {
	if len(nodes) == 0 {
		return nil, true
	}
	out := make([]*domainsvcs.Node, len(nodes))
	for i, n := range nodes {
		it, ok := byID[n.ID]
		if !ok {
			return nil, false
		}
		children, ok := fromCachedNodes(n.Children, byID)
		if !ok {
			return nil, false
		}
		out[i] = &domainsvcs.Node{Item: it, Truncated: n.Truncated, Shadowed: n.Shadowed, Children: children}
	}
	return out, true
}
