package model

// Team is a league franchise as reported by the backend.
type Team struct {
	ID        string  `json:"id,omitempty"`
	TeamName  string  `json:"team_name"`
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	PointsFor float64 `json:"points_for,omitempty"`
}
