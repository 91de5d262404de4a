package aggregator

import (
	"github.com/pable/doubles-league/internal/model"
)

// ComputePlayerStats aggregates a player's all-time record. Every partner
// qualifies for the best/worst partner pick. Only matches where the player's
// own team has exactly two members count.
func ComputePlayerStats(playerID int64, matches []model.Match) model.PlayerStats {
	return ComputePlayerStatsMin(playerID, matches, 1)
}

// ComputePlayerStatsMin is ComputePlayerStats with a minimum number of
// games together before a partner can be named best or worst.
func ComputePlayerStatsMin(playerID int64, matches []model.Match, minGames int) model.PlayerStats {
	if minGames < 1 {
		minGames = 1
	}
	s := model.PlayerStats{
		PlayerID: playerID,
		PerType:  make(map[model.MatchType]model.WinLoss, len(model.MatchTypes)),
		Partners: make(map[int64]model.PartnerStats),
	}
	for _, t := range model.MatchTypes {
		s.PerType[t] = model.WinLoss{}
	}

	for _, m := range matches {
		side := m.Side(playerID)
		if side == 0 {
			continue
		}
		own, myScore, oppScore := m.TeamA, m.ScoreA, m.ScoreB
		if side == 'B' {
			own, myScore, oppScore = m.TeamB, m.ScoreB, m.ScoreA
		}
		if len(own) != 2 {
			continue
		}
		// A draw is not a win.
		won := myScore > oppScore

		s.Matches++
		wl := s.PerType[m.Type]
		if won {
			s.Wins++
			wl.Wins++
		} else {
			s.Losses++
			wl.Losses++
		}
		s.PerType[m.Type] = wl

		partner := own[0]
		if partner == playerID {
			partner = own[1]
		}
		ps := s.Partners[partner]
		ps.Games++
		if won {
			ps.Wins++
		} else {
			ps.Losses++
		}
		s.Partners[partner] = ps
	}

	if s.Matches > 0 {
		s.WinRate = float64(s.Wins) / float64(s.Matches) * 100
	}
	s.BestPartner, s.BestPartnerWinRate = pickPartner(s.Partners, minGames, true)
	s.WorstPartner, s.WorstPartnerWinRate = pickPartner(s.Partners, minGames, false)
	return s
}

// pickPartner returns the partner with the highest (best) or lowest win
// rate among those with at least minGames games. Ties prefer more games,
// then the lowest partner id.
func pickPartner(partners map[int64]model.PartnerStats, minGames int, best bool) (*int64, *float64) {
	var (
		found    bool
		bestID   int64
		bestRate float64
		bestN    int
	)
	for id, ps := range partners {
		if ps.Games < minGames {
			continue
		}
		rate := ps.WinRate()
		better := !found
		if found {
			switch {
			case rate != bestRate:
				better = (rate > bestRate) == best
			case ps.Games != bestN:
				better = ps.Games > bestN
			default:
				better = id < bestID
			}
		}
		if better {
			found, bestID, bestRate, bestN = true, id, rate, ps.Games
		}
	}
	if !found {
		return nil, nil
	}
	return &bestID, &bestRate
}
