package handler

import (
	"errors"
	"net/http"

	"geosplit/internal/models"
	"geosplit/internal/quadtree"
	"geosplit/internal/service"

	"github.com/gin-gonic/gin"
)

// SplitHandler handles partition requests
type SplitHandler struct {
	service SplitService
}

// Service interface for dependency injection
type SplitService interface {
	Partition(points []models.Point, bounds quadtree.Bounds, capacity int) ([]quadtree.Leaf, error)
}

// NewSplitHandler creates a new split handler
func NewSplitHandler(svc SplitService) *SplitHandler {
	return &SplitHandler{service: svc}
}

// SplitRequest is the POST /split body. Bounds default to the full globe
// when omitted.
type SplitRequest struct {
	Bounds   *BoundsRequest `json:"bounds"`
	Capacity int            `json:"capacity"`
	Points   []models.Point `json:"points"`
}

// BoundsRequest is the root rectangle of the partition.
type BoundsRequest struct {
	MinLatitude  float64 `json:"min_latitude"`
	MaxLatitude  float64 `json:"max_latitude"`
	MinLongitude float64 `json:"min_longitude"`
	MaxLongitude float64 `json:"max_longitude"`
}

// SplitResponse is the partition result.
type SplitResponse struct {
	PointCount int            `json:"point_count"`
	LeafCount  int            `json:"leaf_count"`
	Leaves     []LeafResponse `json:"leaves"`
}

// LeafResponse is one non-empty leaf with its derived identifier.
type LeafResponse struct {
	ID     string         `json:"id"`
	Points []models.Point `json:"points"`
}

// Split handles POST /split requests
func (h *SplitHandler) Split(c *gin.Context) {
	var req SplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	bounds := quadtree.Globe
	if req.Bounds != nil {
		bounds = quadtree.Bounds{
			MinLat: req.Bounds.MinLatitude,
			MaxLat: req.Bounds.MaxLatitude,
			MinLon: req.Bounds.MinLongitude,
			MaxLon: req.Bounds.MaxLongitude,
		}
	}

	leaves, err := h.service.Partition(req.Points, bounds, req.Capacity)
	if err != nil {
		if errors.Is(err, quadtree.ErrInvalidCapacity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "capacity must be a positive integer"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	resp := SplitResponse{
		PointCount: len(req.Points),
		LeafCount:  len(leaves),
		Leaves:     make([]LeafResponse, 0, len(leaves)),
	}
	for _, leaf := range leaves {
		resp.Leaves = append(resp.Leaves, LeafResponse{
			ID:     service.LeafID(leaf.Path),
			Points: leaf.Points,
		})
	}

	c.JSON(http.StatusOK, resp)
}
