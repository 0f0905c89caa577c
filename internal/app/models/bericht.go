package models

import (
	"time"

	"github.com/goccy/go-json"
)

// Bericht is the archived form of an assembled document bundle. The bundle is
// stored as its canonical JSON payload so that custom FHIR marshalling rules
// survive the round trip through MongoDB unchanged.
type Bericht struct {
	ID        string    `bson:"_id"`
	CreatedAt time.Time `bson:"createdAt"`
	BundleRaw []byte    `bson:"bundleRaw"`
}

type BerichtAssembledEvent struct {
	BerichtID   string          `json:"berichtId"`
	GeneratedAt string          `json:"generatedAt"`
	Bundle      json.RawMessage `json:"bundle"`
}
