package models

// Point represents a single geotagged record, pairing a geographic coordinate with an opaque payload owned by the caller.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Payload   any     `json:"payload,omitempty"`
}
