package dto

type DistanceEntryRequest struct {
	System   string  `json:"system"`
	Distance float64 `json:"distance"`
}

type CoordinateResponse struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type LocateRequest struct {
	Distances []DistanceEntryRequest `json:"distances"`
}

type LocateResponse struct {
	Outcome            string               `json:"outcome"`
	Location           *CoordinateResponse  `json:"location,omitempty"`
	Candidates         []CoordinateResponse `json:"candidates,omitempty"`
	SuggestedReference string               `json:"suggested_reference,omitempty"`
	PointsEvaluated    int                  `json:"points_evaluated"`
}

type VerifyRequest struct {
	Name string `json:"name"`
}

type VerifyResponse struct {
	Star            string              `json:"star"`
	Outcome         string              `json:"outcome"`
	Recorded        CoordinateResponse  `json:"recorded"`
	Location        *CoordinateResponse `json:"location,omitempty"`
	PointsEvaluated int                 `json:"points_evaluated"`
	Cached          bool                `json:"cached"`
}

type ImportRequest struct {
	System string  `json:"system"`
	Radius float64 `json:"radius"`
}

type ImportResponse struct {
	Imported int `json:"imported"`
}
