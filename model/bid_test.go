package model

import (
	"reflect"
	"testing"
)

func TestMissingFields(t *testing.T) {
	valid := Bid{
		PlayerID:       4241457,
		PlayerName:     "Najee Harris",
		PlayerPosition: POS_RB,
		PlayerTeam:     "LAC",
		Bidder:         Bidder{TeamID: "7", Name: "Mighty Ducks"},
		Contract:       Contract{Years: 3, Salary: 30},
	}

	tests := map[string]struct {
		mutate func(b *Bid)
		want   []string
	}{
		"valid bid":       {mutate: func(b *Bid) {}, want: nil},
		"no player id":    {mutate: func(b *Bid) { b.PlayerID = 0 }, want: []string{"playerId"}},
		"no player name":  {mutate: func(b *Bid) { b.PlayerName = "" }, want: []string{"playerName"}},
		"no team id":      {mutate: func(b *Bid) { b.Bidder.TeamID = "" }, want: []string{"bidder.teamId"}},
		"no bidder name":  {mutate: func(b *Bid) { b.Bidder.Name = "" }, want: []string{"bidder.name"}},
		"zero years":      {mutate: func(b *Bid) { b.Contract.Years = 0 }, want: []string{"contract.years"}},
		"negative salary": {mutate: func(b *Bid) { b.Contract.Salary = -5 }, want: []string{"contract.salary"}},
		"empty bidder": {
			mutate: func(b *Bid) { b.Bidder = Bidder{} },
			want:   []string{"bidder.teamId", "bidder.name"},
		},
		"empty contract": {
			mutate: func(b *Bid) { b.Contract = Contract{} },
			want:   []string{"contract.years", "contract.salary"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			b := valid
			tc.mutate(&b)
			got := b.MissingFields()
			if !reflect.DeepEqual(tc.want, got) {
				t.Errorf("missing fields incorrect, wanted: %v, got: %v", tc.want, got)
			}
		})
	}
}
