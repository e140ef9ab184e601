package reader

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVReader_Next(t *testing.T) {
	input := "name,lat,lon\n" +
		"tokyo,35.681236,139.767125\n" +
		"sydney,-33.8688,151.2093\n"

	r := NewCSVReader(strings.NewReader(input), 1, 2, true)

	first, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, 35.681236, first.Latitude)
	assert.Equal(t, 139.767125, first.Longitude)
	assert.Equal(t, []string{"tokyo", "35.681236", "139.767125"}, first.Payload)

	second, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, -33.8688, second.Latitude)
	assert.Equal(t, 151.2093, second.Longitude)

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestCSVReader_NoHeader(t *testing.T) {
	r := NewCSVReader(strings.NewReader("1.5,2.5\n"), 0, 1, false)

	p, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, 1.5, p.Latitude)
	assert.Equal(t, 2.5, p.Longitude)
}

func TestCSVReader_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		latCol   int
		lonCol   int
		contains string
	}{
		{
			name:     "record too short",
			input:    "only-one-field\n",
			latCol:   1,
			lonCol:   2,
			contains: "invalid record length",
		},
		{
			name:     "bad latitude",
			input:    "north,10\n",
			latCol:   0,
			lonCol:   1,
			contains: "invalid latitude",
		},
		{
			name:     "bad longitude",
			input:    "10,east\n",
			latCol:   0,
			lonCol:   1,
			contains: "invalid longitude",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewCSVReader(strings.NewReader(tt.input), tt.latCol, tt.lonCol, false)
			_, err := r.Next()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestCSVReader_HeaderOnly(t *testing.T) {
	r := NewCSVReader(strings.NewReader("lat,lon\n"), 0, 1, true)
	_, err := r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestOpenCSV_MissingFile(t *testing.T) {
	_, err := OpenCSV("testdata/does-not-exist.csv", 0, 1, true)
	assert.Error(t, err)
}
