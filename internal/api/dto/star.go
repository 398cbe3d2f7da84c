package dto

type DistanceEntryResponse struct {
	System   string  `json:"system"`
	Distance float64 `json:"distance"`
}

type StarResponse struct {
	Name       string                  `json:"name"`
	X          float64                 `json:"x"`
	Y          float64                 `json:"y"`
	Z          float64                 `json:"z"`
	Calculated bool                    `json:"calculated"`
	Distances  []DistanceEntryResponse `json:"distances,omitempty"`
}

type ListStarsResponse struct {
	Stars []StarResponse `json:"stars"`
}
