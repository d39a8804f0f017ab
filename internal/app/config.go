package app

import (
	"strings"
	"time"

	"github.com/yungbote/strokesheet/internal/data/db"
	"github.com/yungbote/strokesheet/internal/platform/envutil"
	"github.com/yungbote/strokesheet/internal/platform/gcp"
	"github.com/yungbote/strokesheet/internal/platform/logger"
)

const (
	StrokeSourceFile = "file"
	StrokeSourceDB   = "db"
)

type Config struct {
	Environment string
	Version     string
	Port        string
	CORSOrigins []string

	WorkRoot       string
	GraphicsPath   string
	DictionaryPath string
	StrokeSource   string
	DB             db.Config

	DefaultCellSize   int
	DefaultCharacters string
	KeepArtifacts     bool
	StrokeWeight      string

	Converter       string
	ConverterBinary string
	ConvertTimeout  time.Duration

	RedisAddr     string
	SheetCacheTTL time.Duration
	Bucket        gcp.BucketConfig
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Environment: envutil.String("APP_ENV", "development", log),
		Version:     envutil.String("APP_VERSION", "dev", log),
		Port:        envutil.String("PORT", "8080", log),
		CORSOrigins: splitList(envutil.String("CORS_ALLOWED_ORIGINS", "", log)),

		WorkRoot:       envutil.String("WORK_ROOT", "/tmp/strokesheet", log),
		GraphicsPath:   envutil.String("GRAPHICS_TXT_PATH", "graphics.txt", log),
		DictionaryPath: envutil.String("DICTIONARY_TXT_PATH", "dictionary.txt", log),
		StrokeSource:   strings.ToLower(envutil.String("STROKE_SOURCE", StrokeSourceFile, log)),
		DB:             db.ConfigFromEnv(log),

		DefaultCellSize:   envutil.Int("DEFAULT_CELL_SIZE", 10, log),
		DefaultCharacters: envutil.String("DEFAULT_CHARACTERS", "X", log),
		KeepArtifacts:     envutil.Bool("KEEP_ARTIFACTS", false, log),
		StrokeWeight:      envutil.String("SHEET_STROKE_WEIGHT", "reveal", log),

		Converter:       envutil.String("SVG_CONVERTER", "rsvg-convert", log),
		ConverterBinary: envutil.String("SVG_CONVERTER_BIN", "", log),
		ConvertTimeout:  envutil.Seconds("SVG_CONVERT_TIMEOUT_SECONDS", 2*time.Minute, log),

		RedisAddr:     envutil.String("REDIS_ADDR", "", log),
		SheetCacheTTL: envutil.Seconds("SHEET_CACHE_TTL_SECONDS", time.Hour, log),
		Bucket: gcp.BucketConfig{
			Name:      envutil.String("SHEET_GCS_BUCKET_NAME", "", log),
			CDNDomain: envutil.String("SHEET_CDN_DOMAIN", "", log),
		},
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
