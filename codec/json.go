package codec

import "encoding/json"

// JSON is the standard-library JSON codec.
//
// Snapshot headers are small map-like structures, for which JSON is
// stable and portable. Implement Codec and pass it via
// pangraph.WithCodec if a different header encoding is required.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec used for newly written snapshots. Existing
// files are self-describing and are opened by resolving the codec name
// recorded in their header.
var Default Codec = JSON{}
