package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr         string
	ServiceName      string
	KafkaBrokers     []string // empty = event publishing disabled
	SessionCookie    string
	NthOrderDiscount int
	DiscountPercent  float64
	DiscountPrefix   string
	DiscountCodeLen  int
}

func Load() Config {
	return Config{
		HTTPAddr:         getenv("HTTP_ADDR", ":8080"),
		ServiceName:      getenv("SERVICE_NAME", "store-api"),
		KafkaBrokers:     splitCSV(getenv("KAFKA_BROKERS", "")),
		SessionCookie:    getenv("SESSION_COOKIE_NAME", "session_id"),
		NthOrderDiscount: getint("NTH_ORDER_DISCOUNT", 3),
		DiscountPercent:  getfloat("DISCOUNT_PERCENTAGE", 10),
		DiscountPrefix:   getenv("DISCOUNT_CODE_PREFIX", "SAVE10"),
		DiscountCodeLen:  getint("DISCOUNT_CODE_LENGTH", 8),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getint falls back to def on junk or anything below 1; the nth-order
// threshold and code length are both meaningless at zero.
func getint(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil || i < 1 {
		return def
	}
	return i
}

func getfloat(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 || f > 100 {
		return def
	}
	return f
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
