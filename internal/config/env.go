package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "MEDIAPREP_"

// LoadEnv applies overrides from the process environment onto cfg. When
// dotenv names a file, it is loaded first without replacing variables that
// are already set; a missing file is not an error. Flags parsed afterwards
// take precedence over anything set here.
func LoadEnv(cfg *Config, dotenv string) error {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	cfg.InputDir = getEnv("INPUT_DIR", cfg.InputDir)
	cfg.OutputDir = getEnv("OUTPUT_DIR", cfg.OutputDir)
	cfg.FFmpegPath = getEnv("FFMPEG", cfg.FFmpegPath)
	cfg.FFprobePath = getEnv("FFPROBE", cfg.FFprobePath)
	cfg.Preset = getEnv("PRESET", cfg.Preset)
	cfg.LogFile = getEnv("LOG_FILE", cfg.LogFile)

	var err error
	if cfg.CRF, err = getEnvAsInt("CRF", cfg.CRF); err != nil {
		return err
	}
	if cfg.Quality, err = getEnvAsInt("QUALITY", cfg.Quality); err != nil {
		return err
	}
	if cfg.MaxWidth, err = getEnvAsInt("MAX_WIDTH", cfg.MaxWidth); err != nil {
		return err
	}
	if cfg.MaxHeight, err = getEnvAsInt("MAX_HEIGHT", cfg.MaxHeight); err != nil {
		return err
	}
	if cfg.Workers, err = getEnvAsInt("WORKERS", cfg.Workers); err != nil {
		return err
	}

	if v := getEnv("FORMAT", ""); v != "" {
		if err := (&formatValue{&cfg.Format}).Set(v); err != nil {
			return err
		}
	}
	if v := getEnv("COLOR", ""); v != "" {
		if err := (&colorModeValue{&cfg.ColorMode}).Set(v); err != nil {
			return err
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(EnvPrefix + key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}
	return parseInt(value, EnvPrefix+key)
}

// parseInt parses a string as an integer for numeric settings; returns a clear error on failure.
func parseInt(s, name string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New(name + " must be a whole number (got " + strconv.Quote(s) + ")")
	}
	return n, nil
}
