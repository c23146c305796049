package model

// Bidder identifies the team making an offer.
type Bidder struct {
	TeamID string `json:"teamId"`
	Name   string `json:"name"`
}

// Contract holds the terms being offered to a player.
type Contract struct {
	Years  int `json:"years"`
	Salary int `json:"salary"`
}

// Bid is one team's outstanding offer for one free agent. A team may hold at
// most one active bid per player; a newer bid replaces the older one. The
// player display fields are denormalized so the bid board can render without
// another backend round trip.
type Bid struct {
	ID             string   `json:"id"`
	PlayerID       int      `json:"playerId"`
	PlayerName     string   `json:"playerName"`
	PlayerPosition Position `json:"playerPosition"`
	PlayerTeam     string   `json:"playerTeam"`
	Bidder         Bidder   `json:"bidder"`
	Contract       Contract `json:"contract"`
	// Timestamp is epoch milliseconds, matching what the front end sends.
	Timestamp int64 `json:"timestamp"`
}

// MissingFields returns the names of the required fields that are absent or
// unusable. An empty result means the bid is acceptable.
func (b *Bid) MissingFields() []string {
	var missing []string
	if b.PlayerID == 0 {
		missing = append(missing, "playerId")
	}
	if b.PlayerName == "" {
		missing = append(missing, "playerName")
	}
	if b.Bidder.TeamID == "" {
		missing = append(missing, "bidder.teamId")
	}
	if b.Bidder.Name == "" {
		missing = append(missing, "bidder.name")
	}
	if b.Contract.Years <= 0 {
		missing = append(missing, "contract.years")
	}
	if b.Contract.Salary <= 0 {
		missing = append(missing, "contract.salary")
	}
	return missing
}
