// Package config reads the environment variables spec §6 lists:
// FRI_QUERIES, BF_DEBUG, SKIP_CONSTRAINTS.
package config

import (
	"os"
	"strconv"
)

const defaultFRIQueries = 84

// FRIQueries reads FRI_QUERIES (spec §6); defaults to 84 when unset,
// unparseable or not positive. Nothing in this module calls it: the
// MerklePCS stand-in runs no FRI queries.
func FRIQueries() int {
	v := os.Getenv("FRI_QUERIES")
	if v == "" {
		return defaultFRIQueries
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return defaultFRIQueries
	}
	return n
}

// Debug enables constraint-debug mode (spec §6), off by default.
func Debug() bool {
	return boolEnv("BF_DEBUG")
}

// SkipConstraints disables the debug constraint walk even when Debug
// is enabled (spec §6).
func SkipConstraints() bool {
	return boolEnv("SKIP_CONSTRAINTS")
}

func boolEnv(name string) bool {
	v := os.Getenv(name)
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}
