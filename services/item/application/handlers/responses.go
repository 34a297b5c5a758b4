package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	appsvcs "github.com/ghuser/stowage/services/item/application/services"
	itemdomain "github.com/ghuser/stowage/services/item/domain"
	"github.com/ghuser/stowage/services/item/domain/models"
	domainsvcs "github.com/ghuser/stowage/services/item/domain/services"
)

// ItemResponse is the wire form of a catalog item.
type ItemResponse struct {
	ID          uuid.UUID `json:"id"          example:"123e4567-e89b-12d3-a456-426614174000"`
	Name        string    `json:"name"        example:"Office cabinet"`
	Description string    `json:"description" example:"Metal cabinet for documents"`
	Location    string    `json:"location"    example:"All things"`
	ImageURL    string    `json:"image_url"   example:"/placeholder.svg"`
	IsRoot      bool      `json:"is_root"     example:"false"`
	CreatedAt   time.Time `json:"created_at"  example:"2024-01-15T10:30:00Z"`
	UpdatedAt   time.Time `json:"updated_at"  example:"2024-01-15T10:30:00Z"`
} // @name ItemResponse

// WarningResponse describes a non-fatal condition of a committed mutation.
type WarningResponse struct {
	Code    string `json:"code"    example:"dangling_location"`
	Message string `json:"message" example:"location \"Attic\" matches no existing item"`
} // @name WarningResponse

// MutationResponse is returned by every successful write.
type MutationResponse struct {
	Item     ItemResponse      `json:"item"`
	Warnings []WarningResponse `json:"warnings,omitempty"`
} // @name MutationResponse

// ListItemsResponse is the full catalog with its snapshot identity.
type ListItemsResponse struct {
	Items   []ItemResponse `json:"items"`
	Total   int            `json:"total"   example:"3"`
	Epoch   uuid.UUID      `json:"epoch"   example:"550e8400-e29b-41d4-a716-446655440000"`
	Version uint64         `json:"version" example:"7"`
} // @name ListItemsResponse

// ItemsResponse wraps a plain list of items.
type ItemsResponse struct {
	Items []ItemResponse `json:"items"`
} // @name ItemsResponse

// TreeNodeResponse is one node of a materialized tree.
type TreeNodeResponse struct {
	Item      ItemResponse       `json:"item"`
	Truncated bool               `json:"truncated,omitempty"`
	Shadowed  bool               `json:"shadowed,omitempty"`
	Children  []TreeNodeResponse `json:"children"`
} // @name TreeNodeResponse

// CycleResponse reports where tree expansion stopped on a revisited name.
type CycleResponse struct {
	ItemID uuid.UUID `json:"item_id"`
	Name   string    `json:"name" example:"Office cabinet"`
	Path   []string  `json:"path"`
} // @name CycleResponse

// TreeResponse is the hierarchy below a single name.
type TreeResponse struct {
	Name     string             `json:"name" example:"All things"`
	Item     *ItemResponse      `json:"item"`
	Children []TreeNodeResponse `json:"children"`
	Cycles   []CycleResponse    `json:"cycles"`
	Size     int                `json:"size" example:"2"`
} // @name TreeResponse

// FactsResponse holds the derived hierarchy properties of one item.
type FactsResponse struct {
	Item      ItemResponse   `json:"item"`
	Depth     int            `json:"depth"   example:"1"`
	IsLeaf    bool           `json:"is_leaf" example:"false"`
	Parent    *ItemResponse  `json:"parent"`
	Ancestors []ItemResponse `json:"ancestors"`
} // @name FactsResponse

// OrphansResponse lists items cut off from the root.
type OrphansResponse struct {
	Orphans     []ItemResponse `json:"orphans"`
	Unreachable []ItemResponse `json:"unreachable"`
} // @name OrphansResponse

// ExportResponse is a portable catalog document.
type ExportResponse struct {
	ExportedAt time.Time      `json:"exported_at" example:"2024-01-15T10:30:00Z"`
	Items      []ItemResponse `json:"items"`
} // @name ExportResponse

// ActivityEntryResponse is one audit trail entry.
type ActivityEntryResponse struct {
	EventID          uuid.UUID `json:"event_id"`
	Action           string    `json:"action" example:"relocated"`
	ItemID           uuid.UUID `json:"item_id"`
	EditorID         uuid.UUID `json:"editor_id"`
	Name             string    `json:"name" example:"Office cabinet"`
	Location         string    `json:"location" example:"All things"`
	PreviousLocation string    `json:"previous_location,omitempty" example:"Attic"`
	Warnings         []string  `json:"warnings"`
	OccurredAt       time.Time `json:"occurred_at"`
} // @name ActivityEntryResponse

// ActivityResponse lists recent catalog edits, newest first.
type ActivityResponse struct {
	Entries []ActivityEntryResponse `json:"entries"`
} // @name ActivityResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"item not found"`
} // @name ErrorResponse

func toItemResponse(it models.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name.String(),
		Description: it.Description,
		Location:    it.Location,
		ImageURL:    it.ImageURL,
		IsRoot:      it.IsRoot,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

func toItemResponses(items []models.Item) []ItemResponse {
	return lo.Map(items, func(it models.Item, _ int) ItemResponse {
		return toItemResponse(it)
	})
}

func toItemResponsePtr(it *models.Item) *ItemResponse {
	if it == nil {
		return nil
	}
	r := toItemResponse(*it)
	return &r
}

func toMutationResponse(out *appsvcs.Outcome) MutationResponse {
	resp := MutationResponse{Item: toItemResponse(out.Item)}
	if len(out.Warnings) > 0 {
		resp.Warnings = lo.Map(out.Warnings, func(w itemdomain.Warning, _ int) WarningResponse {
			return WarningResponse{Code: string(w.Code), Message: w.Message}
		})
	}
	return resp
}

func toTreeNodes(nodes []*domainsvcs.Node) []TreeNodeResponse {
	return lo.Map(nodes, func(n *domainsvcs.Node, _ int) TreeNodeResponse {
		return TreeNodeResponse{
			Item:      toItemResponse(n.Item),
			Truncated: n.Truncated,
			Shadowed:  n.Shadowed,
			Children:  toTreeNodes(n.Children),
		}
	})
}

func toTreeResponse(t *domainsvcs.Tree) TreeResponse {
	return TreeResponse{
		Name:     t.Name,
		Item:     toItemResponsePtr(t.Item),
		Children: toTreeNodes(t.Children),
		Cycles: lo.Map(t.Cycles, func(c domainsvcs.Cycle, _ int) CycleResponse {
			return CycleResponse{ItemID: c.ItemID, Name: c.Name, Path: c.Path}
		}),
		Size: t.Size,
	}
}

func toActivityResponse(entries []models.Activity) ActivityResponse {
	return ActivityResponse{
		Entries: lo.Map(entries, func(a models.Activity, _ int) ActivityEntryResponse {
			warnings := a.Warnings
			if warnings == nil {
				warnings = []string{}
			}
			return ActivityEntryResponse{
				EventID:          a.EventID,
				Action:           a.Action,
				ItemID:           a.ItemID,
				EditorID:         a.EditorID,
				Name:             a.Name,
				Location:         a.Location,
				PreviousLocation: a.PreviousLocation,
				Warnings:         warnings,
				OccurredAt:       a.OccurredAt,
			}
		}),
	}
}
