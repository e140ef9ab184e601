// Package reader provides point sources over the supported input encodings.
// Each reader yields one point per call to Next and returns io.EOF once the
// input is exhausted.
package reader

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"geosplit/internal/models"
)

// osmNode captures a <node> element with all of its attributes and tags so
// the payload can be re-serialized without loss.
type osmNode struct {
	XMLName xml.Name   `xml:"node"`
	Attrs   []xml.Attr `xml:",any,attr"`
	Tags    []osmTag   `xml:"tag"`
}

type osmTag struct {
	Key   string `xml:"k,attr"`
	Value string `xml:"v,attr"`
}

func (n osmNode) coords() (lat, lon float64, err error) {
	var haveLat, haveLon bool
	for _, a := range n.Attrs {
		switch a.Name.Local {
		case "lat":
			lat, err = strconv.ParseFloat(a.Value, 64)
			haveLat = true
		case "lon":
			lon, err = strconv.ParseFloat(a.Value, 64)
			haveLon = true
		}
		if err != nil {
			return 0, 0, fmt.Errorf("reader: invalid %s attribute: %q", a.Name.Local, a.Value)
		}
	}
	if !haveLat || !haveLon {
		return 0, 0, errors.New("reader: node element missing lat/lon attributes")
	}
	return lat, lon, nil
}

// OSMReader streams <node> elements out of an OSM XML document. Ways,
// relations and any other elements are skipped. The payload of each point is
// the node element re-serialized as a string.
type OSMReader struct {
	dec    *xml.Decoder
	closer io.Closer
}

// NewOSMReader reads OSM XML from r.
func NewOSMReader(r io.Reader) *OSMReader {
	return &OSMReader{dec: xml.NewDecoder(r)}
}

// OpenOSM opens an .osm file for reading.
func OpenOSM(path string) (*OSMReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reader: failed to open file: %w", err)
	}
	return &OSMReader{dec: xml.NewDecoder(f), closer: f}, nil
}

// Next returns the next node in document order, or io.EOF.
func (r *OSMReader) Next() (models.Point, error) {
	for {
		tok, err := r.dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return models.Point{}, io.EOF
			}
			return models.Point{}, fmt.Errorf("reader: malformed OSM document: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "node" {
			continue
		}

		var n osmNode
		if err := r.dec.DecodeElement(&n, &se); err != nil {
			return models.Point{}, fmt.Errorf("reader: malformed node element: %w", err)
		}

		lat, lon, err := n.coords()
		if err != nil {
			return models.Point{}, err
		}

		raw, err := xml.Marshal(n)
		if err != nil {
			return models.Point{}, fmt.Errorf("reader: failed to serialize node: %w", err)
		}

		return models.Point{Latitude: lat, Longitude: lon, Payload: string(raw)}, nil
	}
}

// Close closes the underlying file, if any.
func (r *OSMReader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
