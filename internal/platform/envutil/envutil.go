package envutil

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/strokesheet/internal/platform/logger"
)

func String(name, def string, log *logger.Logger) string {
	if log != nil {
		log = log.With("env_var", name)
	}
	v, ok := os.LookupEnv(name)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		if log != nil {
			log.Debug("Environment variable not found, using default", "default", def)
		}
		return def
	}
	if log != nil {
		log.Debug("Environment variable found, using environment", "environment", v)
	}
	return v
}

func Int(name string, def int, log *logger.Logger) int {
	if log != nil {
		log = log.With("env_var", name)
	}
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		if log != nil {
			log.Debug("Environment variable could not be parsed as int, using default", "providedVal", v, "defaultVal", def, "error", err)
		}
		return def
	}
	return i
}

func Bool(name string, def bool, log *logger.Logger) bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	switch v {
	case "":
		return def
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		if log != nil {
			log.Debug("Environment variable could not be parsed as bool, using default", "env_var", name, "providedVal", v, "defaultVal", def)
		}
		return def
	}
}

func Seconds(name string, def time.Duration, log *logger.Logger) time.Duration {
	n := Int(name, int(def/time.Second), log)
	if n < 0 {
		return def
	}
	return time.Duration(n) * time.Second
}
