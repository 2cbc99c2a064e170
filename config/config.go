package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// New snapshots the process environment. Later changes to the environment
// are not seen.
func New() map[string]string {
	environ := os.Environ()
	config := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, _ := strings.Cut(entry, "=")
		if key != "" {
			config[key] = value
		}
	}
	return config
}

// Merge copies every entry of extra into config without overwriting keys
// that already hold a non-blank value. Values from the process environment
// win.
func Merge(config map[string]string, extra map[string]string) map[string]string {
	if config == nil {
		config = make(map[string]string, len(extra))
	}
	for k, v := range extra {
		if lookup(config, k) == "" {
			config[k] = v
		}
	}
	return config
}

// lookup returns the trimmed value for key. Blank and missing keys are
// treated the same.
func lookup(config map[string]string, key string) string {
	return strings.TrimSpace(config[key])
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if v := lookup(config, key); v != "" {
		return v
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	asInt, err := strconv.Atoi(lookup(config, key))
	if err != nil {
		return defaultValue
	}
	return asInt
}

func GetBool(config map[string]string, key string, defaultValue bool) bool {
	asBool, err := strconv.ParseBool(lookup(config, key))
	if err != nil {
		return defaultValue
	}
	return asBool
}

// GetSeconds reads an integer number of seconds as a time.Duration.
func GetSeconds(config map[string]string, key string, defaultSeconds int) time.Duration {
	return time.Duration(GetInt(config, key, defaultSeconds)) * time.Second
}

// GetStrings splits a comma separated value, dropping blanks.
func GetStrings(config map[string]string, key string) []string {
	raw := GetString(config, key, "")
	if raw == "" {
		return nil
	}

	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}

// GetPairs parses "k1:v1,k2:v2". The value keeps everything after the first
// colon so bcrypt hashes survive intact.
func GetPairs(config map[string]string, key string) map[string]string {
	pairs := make(map[string]string)
	for _, entry := range GetStrings(config, key) {
		k, v, ok := strings.Cut(entry, ":")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			continue
		}
		pairs[k] = strings.TrimSpace(v)
	}
	return pairs
}
