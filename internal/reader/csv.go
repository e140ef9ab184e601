package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"geosplit/internal/models"
)

// CSVReader yields one point per CSV record. The latitude and longitude
// columns are configurable; the payload of each point is the full record.
type CSVReader struct {
	csv        *csv.Reader
	closer     io.Closer
	latCol     int
	lonCol     int
	skipHeader bool
}

// NewCSVReader reads records from r, taking coordinates from the given
// zero-based columns. When header is true the first record is discarded.
func NewCSVReader(r io.Reader, latCol, lonCol int, header bool) *CSVReader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // Allow variable number of fields
	return &CSVReader{csv: cr, latCol: latCol, lonCol: lonCol, skipHeader: header}
}

// OpenCSV opens a CSV file for reading.
func OpenCSV(path string, latCol, lonCol int, header bool) (*CSVReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reader: failed to open file: %w", err)
	}
	r := NewCSVReader(f, latCol, lonCol, header)
	r.closer = f
	return r, nil
}

// Next returns the next record as a point, or io.EOF.
func (r *CSVReader) Next() (models.Point, error) {
	if r.skipHeader {
		r.skipHeader = false
		if _, err := r.csv.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return models.Point{}, io.EOF
			}
			return models.Point{}, fmt.Errorf("reader: failed to read header: %w", err)
		}
	}

	record, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return models.Point{}, io.EOF
		}
		return models.Point{}, fmt.Errorf("reader: failed to read record: %w", err)
	}

	if len(record) <= r.latCol || len(record) <= r.lonCol {
		return models.Point{}, fmt.Errorf("reader: invalid record length: %d", len(record))
	}

	lat, err := strconv.ParseFloat(record[r.latCol], 64)
	if err != nil {
		return models.Point{}, fmt.Errorf("reader: invalid latitude: %s", record[r.latCol])
	}

	lon, err := strconv.ParseFloat(record[r.lonCol], 64)
	if err != nil {
		return models.Point{}, fmt.Errorf("reader: invalid longitude: %s", record[r.lonCol])
	}

	return models.Point{Latitude: lat, Longitude: lon, Payload: record}, nil
}

// Close closes the underlying file, if any.
func (r *CSVReader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
