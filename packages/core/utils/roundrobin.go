package utils

// Pairing is one fixture of a round-robin round.
type Pairing struct {
	Home uint
	Away uint
}

// byeTeam is the synthetic slot inserted for odd team counts. Real team
// ids are never zero.
const byeTeam uint = 0

// GenerateRoundRobin builds a round-robin schedule with the circle
// method: one team stays fixed while the rest rotate. With an odd team
// count a synthetic bye slot is inserted and pairings against it are
// dropped, so exactly one team sits out each round. Output is fully
// determined by the input ordering.
func GenerateRoundRobin(teamIDs []uint, doubleRoundTrip bool) [][]Pairing {
	if len(teamIDs) < 2 {
		return nil
	}

	ids := make([]uint, len(teamIDs))
	copy(ids, teamIDs)
	if len(ids)%2 == 1 {
		ids = append(ids, byeTeam)
	}

	n := len(ids)
	fixed := ids[0]
	rotating := ids[1:] // n-1 teams rotating across n-1 rounds

	rounds := make([][]Pairing, 0, n-1)
	for r := 0; r < n-1; r++ {
		pairs := make([]Pairing, 0, n/2)

		// Alternate the fixed team's side so home counts stay balanced.
		opponent := rotating[r%(n-1)]
		if r%2 == 0 {
			pairs = appendPairing(pairs, fixed, opponent)
		} else {
			pairs = appendPairing(pairs, opponent, fixed)
		}

		for i := 1; i < n/2; i++ {
			home := rotating[(r+i)%(n-1)]
			away := rotating[(r-i+(n-1))%(n-1)]
			pairs = appendPairing(pairs, home, away)
		}

		rounds = append(rounds, pairs)
	}

	if doubleRoundTrip {
		for _, round := range rounds[:n-1] {
			mirror := make([]Pairing, len(round))
			for i, p := range round {
				mirror[i] = Pairing{Home: p.Away, Away: p.Home}
			}
			rounds = append(rounds, mirror)
		}
	}

	return rounds
}

func appendPairing(pairs []Pairing, home, away uint) []Pairing {
	if home == byeTeam || away == byeTeam {
		return pairs
	}
	return append(pairs, Pairing{Home: home, Away: away})
}
