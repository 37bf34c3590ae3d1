package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRoundRobinEven(t *testing.T) {
	teams := []uint{1, 2, 3, 4}
	rounds := GenerateRoundRobin(teams, false)

	require.Len(t, rounds, 3)

	seen := map[string]bool{}
	for _, round := range rounds {
		assert.Len(t, round, 2)

		playing := map[uint]bool{}
		for _, p := range round {
			assert.False(t, playing[p.Home], "team %d plays twice in one round", p.Home)
			assert.False(t, playing[p.Away], "team %d plays twice in one round", p.Away)
			playing[p.Home] = true
			playing[p.Away] = true

			key := pairKey(p)
			assert.False(t, seen[key], "pairing %s repeated", key)
			seen[key] = true
		}
	}

	// Every unordered pair appears exactly once.
	assert.Len(t, seen, 6)
}

func TestGenerateRoundRobinOddUsesBye(t *testing.T) {
	teams := []uint{10, 20, 30, 40, 50}
	rounds := GenerateRoundRobin(teams, false)

	// 5 teams behave as 6 with a bye slot: 5 rounds, 2 real pairings each.
	require.Len(t, rounds, 5)

	byeCounts := map[uint]int{}
	for _, round := range rounds {
		assert.Len(t, round, 2)

		playing := map[uint]bool{}
		for _, p := range round {
			assert.NotZero(t, p.Home)
			assert.NotZero(t, p.Away)
			playing[p.Home] = true
			playing[p.Away] = true
		}

		for _, id := range teams {
			if !playing[id] {
				byeCounts[id]++
			}
		}
	}

	// Each team sits out exactly once.
	for _, id := range teams {
		assert.Equal(t, 1, byeCounts[id], "team %d byes", id)
	}
}

func TestGenerateRoundRobinDouble(t *testing.T) {
	teams := []uint{1, 2, 3, 4}
	rounds := GenerateRoundRobin(teams, true)

	require.Len(t, rounds, 6)

	// The second half mirrors the first with home and away swapped.
	for i := 0; i < 3; i++ {
		mirror := rounds[i+3]
		require.Len(t, mirror, len(rounds[i]))
		for j, p := range rounds[i] {
			assert.Equal(t, p.Home, mirror[j].Away)
			assert.Equal(t, p.Away, mirror[j].Home)
		}
	}
}

func TestGenerateRoundRobinDeterministic(t *testing.T) {
	teams := []uint{7, 3, 9, 1}
	a := GenerateRoundRobin(teams, false)
	b := GenerateRoundRobin(teams, false)
	assert.Equal(t, a, b)
}

func TestGenerateRoundRobinTooFewTeams(t *testing.T) {
	assert.Nil(t, GenerateRoundRobin(nil, false))
	assert.Nil(t, GenerateRoundRobin([]uint{1}, false))
}

func pairKey(p Pairing) string {
	a, b := p.Home, p.Away
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d-%d", a, b)
}
