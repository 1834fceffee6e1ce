// README: Common value types shared across modules.
package types

// ID is an opaque user identifier assigned by the messaging platform.
type ID string

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64 `json:"latitude"`
	Lng float64 `json:"longitude"`
}
