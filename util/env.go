package util

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvNoColor is read once at startup; the remaining PM1_* variables are
// read by config.Load each time a preference is built.
var EnvNoColor = GetEnvBool("PM1_NOCOLOR", false)

func GetEnvTrimmed(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	val := strings.TrimSpace(v)
	if os.Getenv("PM1_DEBUG") == "1" {
		fmt.Fprintln(os.Stderr, "ENV", key, "detected as", val)
	}
	return val, true
}

func GetEnvBool(key string, def bool) bool {
	if val, ok := GetEnvTrimmed(key); ok {
		switch val {
		case "1":
			return true
		case "0":
			return false
		default:
			return def
		}
	}
	return def
}

func GetEnvDefault(key string, def string) string {
	if val, ok := GetEnvTrimmed(key); ok {
		return val
	}
	return def
}

func GetEnvInt(key string, def int) int {
	if val, ok := GetEnvTrimmed(key); ok {
		num, err := strconv.Atoi(val)
		if err != nil {
			return def
		}
		return num
	}
	return def
}
