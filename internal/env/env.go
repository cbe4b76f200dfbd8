package env

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

func Must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}
func Get(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" { return v }
	return def
}
func GetInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" { return def }
	i, err := strconv.Atoi(v)
	if err != nil { return def }
	return i
}
func GetFloat(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" { return def }
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil { return def }
	return f
}
func GetBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" { return def }
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil { return def }
	return b
}
// GetDuration accepts Go durations ("90s") or plain seconds ("90").
func GetDuration(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" { return def }
	if d, err := time.ParseDuration(v); err == nil { return d }
	if s, err := strconv.Atoi(v); err == nil { return time.Duration(s) * time.Second }
	return def
}
// GetList splits a comma separated value, dropping empty items.
func GetList(k string, def []string) []string {
	v := os.Getenv(k)
	if strings.TrimSpace(v) == "" { return def }
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" { out = append(out, p) }
	}
	return out
}
