package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"geosplit/internal/models"
	"geosplit/internal/quadtree"
)

// PointSource yields point records one at a time and returns io.EOF when
// the input is exhausted.
type PointSource interface {
	Next() (models.Point, error)
}

// LeafWriter persists one leaf under its derived identifier.
type LeafWriter interface {
	WriteLeaf(ctx context.Context, id string, points []models.Point) error
}

// SplitService contains the core business logic for partitioning points
// into capacity-bounded geographic leaves.
type SplitService struct {
	writer LeafWriter
}

// NewSplitService creates a new split service. The writer receives the
// enumerated leaves from Split; it may be nil when only Partition is used.
func NewSplitService(writer LeafWriter) *SplitService {
	return &SplitService{writer: writer}
}

// Result summarizes one completed split run.
type Result struct {
	PointCount int
	LeafCount  int
}

// LeafID derives the output identifier for a leaf: "root" followed by the
// quadrant codes on the path, e.g. "rootSWNE". The root leaf of a tree that
// never split is just "root".
func LeafID(path quadtree.Path) string {
	return "root" + path.String()
}

// Partition builds a quadtree over the given points and returns its
// non-empty leaves. Nothing is written.
func (s *SplitService) Partition(points []models.Point, bounds quadtree.Bounds, capacity int) ([]quadtree.Leaf, error) {
	tree, err := quadtree.New(bounds, capacity)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	for _, p := range points {
		tree.Insert(p)
	}
	return tree.Leaves(), nil
}

// Split drains the source into a quadtree and hands every non-empty leaf to
// the writer. A read or write failure aborts the run.
func (s *SplitService) Split(ctx context.Context, src PointSource, bounds quadtree.Bounds, capacity int) (*Result, error) {
	tree, err := quadtree.New(bounds, capacity)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	count := 0
	for {
		p, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("service: failed to read point: %w", err)
		}
		tree.Insert(p)
		count++
	}

	leaves := tree.Leaves()
	for _, leaf := range leaves {
		id := LeafID(leaf.Path)
		if err := s.writer.WriteLeaf(ctx, id, leaf.Points); err != nil {
			return nil, fmt.Errorf("service: failed to write leaf %s: %w", id, err)
		}
	}

	return &Result{PointCount: count, LeafCount: len(leaves)}, nil
}
