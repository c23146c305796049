package model

// Player is a free agent as reported by the league backend. The scoring
// fields are passed through for display, only ID matters for bid validation.
type Player struct {
	ID                 int      `json:"id"`
	Name               string   `json:"name"`
	Position           Position `json:"position"`
	Team               string   `json:"team"`
	ProjectedPoints    float64  `json:"projected_points"`
	TotalPoints        float64  `json:"total_points"`
	AvgPoints          float64  `json:"avg_points"`
	ProjectedAvgPoints float64  `json:"projected_avg_points"`
	Status             string   `json:"status"`
}

// FreeAgentStatus reports whether a single player is currently biddable.
type FreeAgentStatus struct {
	PlayerID    int  `json:"playerId"`
	IsFreeAgent bool `json:"isFreeAgent"`
	IsRostered  bool `json:"isRostered"`
}
