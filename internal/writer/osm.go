// Package writer provides leaf sinks: each one persists a leaf's points
// under a path-derived identifier.
package writer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"geosplit/internal/models"
)

const (
	osmHeader = "<?xml version='1.0' encoding='UTF-8'?>\n" +
		"<osm version='0.6' upload='never' download='never' generator='JOSM'>\n"
	osmFooter = "</osm>"
)

// OSMWriter writes each leaf as a standalone <id>.osm file in a directory.
// String and []byte payloads are assumed to be serialized node elements and
// are written verbatim; for any other payload a minimal node element is
// synthesized from the point's coordinates.
type OSMWriter struct {
	dir string
}

// NewOSMWriter writes leaf files into dir, which must already exist.
func NewOSMWriter(dir string) *OSMWriter {
	return &OSMWriter{dir: dir}
}

// WriteLeaf persists one leaf as <dir>/<id>.osm.
func (w *OSMWriter) WriteLeaf(_ context.Context, id string, points []models.Point) error {
	var buf bytes.Buffer
	buf.WriteString(osmHeader)
	for _, p := range points {
		buf.WriteString(nodeXML(p))
	}
	buf.WriteString(osmFooter)

	name := filepath.Join(w.dir, id+".osm")
	if err := os.WriteFile(name, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writer: failed to write leaf file: %w", err)
	}
	return nil
}

func nodeXML(p models.Point) string {
	switch v := p.Payload.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return "<node lat='" + strconv.FormatFloat(p.Latitude, 'f', -1, 64) +
			"' lon='" + strconv.FormatFloat(p.Longitude, 'f', -1, 64) + "'/>"
	}
}
