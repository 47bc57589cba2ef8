package domain

import (
	"encoding/json"
	"fmt"
)

// LocationStat is the server-computed summary of property counts for one
// location and its sub-locations. Ordered by count descending on the wire.
type LocationStat struct {
	Location     string             `json:"location"`
	Count        int                `json:"count"`
	SubLocations []SubLocationCount `json:"sub_locations"`
}

// SubLocationCount is one (sub-location -> count) pair. On the wire it is a
// single-key JSON object, e.g. {"Lataguri": 12}, so order is carried by the
// enclosing array rather than by object keys.
type SubLocationCount struct {
	Name  string
	Count int
}

func (s SubLocationCount) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]int{s.Name: s.Count})
}

func (s *SubLocationCount) UnmarshalJSON(b []byte) error {
	var m map[string]int
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	if len(m) != 1 {
		return fmt.Errorf("sub_location entry must have exactly one key, got %d", len(m))
	}
	for name, count := range m {
		s.Name = name
		s.Count = count
	}
	return nil
}
