// Package id generates prefixed NanoID identifiers.
//
// Prefixes in use: "artist", "art" (artworks), "cat" (catalogues),
// "rec" (recommendations), "job" (snapshot reloads).
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Generate creates a prefixed unique ID, e.g. "cat-V1StGXR8_Z5jdHi6B-myT".
//
// NanoIDs are URL-friendly and shorter than UUIDs (21 characters against 36)
// with a larger alphabet, so entropy per character is higher.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics when the system cannot supply
// secure randomness. Reserve it for initialization paths where failing the
// whole program is the right call.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}
