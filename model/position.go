package model

import (
	"strings"
)

type Position string

const (
	POS_UNKNOWN Position = "UNK"
	POS_QB      Position = "QB"
	POS_RB      Position = "RB"
	POS_WR      Position = "WR"
	POS_TE      Position = "TE"
	POS_DT      Position = "DT"
	POS_DE      Position = "DE"
	POS_LB      Position = "LB"
	POS_CB      Position = "CB"
	POS_S       Position = "S"
	POS_K       Position = "K"
)

// BiddablePositions lists every position the league tracks free agents for.
// The eligibility refresh issues one backend query per entry.
var BiddablePositions = []Position{
	POS_QB,
	POS_RB,
	POS_WR,
	POS_TE,
	POS_DT,
	POS_DE,
	POS_LB,
	POS_CB,
	POS_S,
	POS_K,
}

func ParsePosition(pos string) Position {
	pos = strings.ToLower(pos)
	switch pos {
	case "qb":
		return POS_QB
	case "rb":
		return POS_RB
	case "wr":
		return POS_WR
	case "te":
		return POS_TE
	case "dt":
		return POS_DT
	case "de":
		return POS_DE
	case "lb":
		return POS_LB
	case "cb":
		return POS_CB
	case "s":
		return POS_S
	case "k":
		return POS_K
	default:
		return POS_UNKNOWN
	}
}
