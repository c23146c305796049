package espn

import (
	"strings"

	"github.com/msto2/bid-tool/model"
)

type espnPlayer struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	Position           string  `json:"position"`
	Team               string  `json:"team"`
	ProjectedPoints    float64 `json:"projected_points"`
	TotalPoints        float64 `json:"total_points"`
	AvgPoints          float64 `json:"avg_points"`
	ProjectedAvgPoints float64 `json:"projected_avg_points"`
	Status             string  `json:"status"`
}

func (p *espnPlayer) toPlayer() *model.Player {
	return &model.Player{
		ID:                 p.ID,
		Name:               p.Name,
		Position:           model.ParsePosition(p.Position),
		Team:               p.Team,
		ProjectedPoints:    p.ProjectedPoints,
		TotalPoints:        p.TotalPoints,
		AvgPoints:          p.AvgPoints,
		ProjectedAvgPoints: p.ProjectedAvgPoints,
		Status:             p.Status,
	}
}

func positionPath(pos model.Position) string {
	return strings.ToLower(string(pos))
}
