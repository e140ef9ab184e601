package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"

	"geosplit/internal/config"
	"geosplit/internal/reader"
	"geosplit/internal/service"
	"geosplit/internal/writer"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

func main() {
	file := flag.String("file", "", "Path to the input file (.osm or .csv)")
	format := flag.String("format", "", "Input format: osm or csv (default: by file extension)")
	out := flag.String("out", "", "Directory for the output files (default: OUTPUT_DIR from config)")
	capacity := flag.Int("capacity", 0, "Maximum points per leaf (default: LEAF_CAPACITY from config)")
	minLat := flag.Float64("min-lat", -90, "Minimum latitude of the root rectangle (default: MIN_LATITUDE from config)")
	maxLat := flag.Float64("max-lat", 90, "Maximum latitude of the root rectangle (default: MAX_LATITUDE from config)")
	minLon := flag.Float64("min-lon", -180, "Minimum longitude of the root rectangle (default: MIN_LONGITUDE from config)")
	maxLon := flag.Float64("max-lon", 180, "Maximum longitude of the root rectangle (default: MAX_LONGITUDE from config)")
	useDB := flag.Bool("db", false, "Write leaves to PostgreSQL (DB_SOURCE from config) instead of files")
	latCol := flag.Int("lat-col", 0, "CSV column holding the latitude")
	lonCol := flag.Int("lon-col", 1, "CSV column holding the longitude")
	csvHeader := flag.Bool("csv-header", true, "Skip the first CSV record as a header")
	flag.Parse()

	if *file == "" {
		log.Fatal().Msg("-file flag is required")
	}

	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	leafCapacity := *capacity
	if leafCapacity == 0 {
		leafCapacity = cfg.LeafCapacity
	}

	outDir := *out
	if outDir == "" {
		outDir = cfg.OutputDir
	}

	ctx := context.Background()

	var src service.PointSource
	switch resolveFormat(*file, *format) {
	case "osm":
		r, err := reader.OpenOSM(*file)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot open input file")
		}
		defer r.Close()
		src = r
	case "csv":
		r, err := reader.OpenCSV(*file, *latCol, *lonCol, *csvHeader)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot open input file")
		}
		defer r.Close()
		src = r
	default:
		log.Fatal().Str("format", *format).Msg("unsupported input format")
	}

	var leafWriter service.LeafWriter
	if *useDB {
		pool, err := pgxpool.New(ctx, cfg.DBSource)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to db")
		}
		defer pool.Close()

		pw := writer.NewPostgresWriter(pool)
		if err := pw.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("cannot create schema")
		}
		leafWriter = pw
	} else {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			log.Fatal().Err(err).Msg("cannot create output directory")
		}
		leafWriter = writer.NewOSMWriter(outDir)
	}

	// Config supplies the root rectangle; bounds flags the user actually
	// passed take precedence.
	bounds := cfg.Bounds()
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "min-lat":
			bounds.MinLat = *minLat
		case "max-lat":
			bounds.MaxLat = *maxLat
		case "min-lon":
			bounds.MinLon = *minLon
		case "max-lon":
			bounds.MaxLon = *maxLon
		}
	})

	svc := service.NewSplitService(leafWriter)
	result, err := svc.Split(ctx, src, bounds, leafCapacity)
	if err != nil {
		log.Fatal().Err(err).Msg("split failed")
	}

	log.Info().
		Int("points", result.PointCount).
		Int("leaves", result.LeafCount).
		Msg("split complete")
}

// resolveFormat picks the input format from the flag, falling back to the
// file extension.
func resolveFormat(file, format string) string {
	if format != "" {
		return strings.ToLower(format)
	}
	switch strings.ToLower(filepath.Ext(file)) {
	case ".osm", ".xml":
		return "osm"
	case ".csv":
		return "csv"
	}
	return ""
}
