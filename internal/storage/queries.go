package storage

import (
	"math"

	"github.com/pable/go-cricket-stats/internal/model"
)

// SeasonExists reports whether a season with the given year is stored.
func (db *DB) SeasonExists(year int) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM seasons WHERE year = ?", year).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MostToss returns the team that won the most tosses in the season.
// Ties break on team name, matching the deterministic ordering of the output.
func (db *DB) MostToss(year int) ([]model.TeamCount, error) {
	return db.teamCounts(`
		SELECT t.name, COUNT(*) AS c
		FROM matches m
		JOIN seasons s ON s.id = m.season_id
		JOIN teams t ON t.id = m.toss_winner_id
		WHERE s.year = ?
		GROUP BY t.id
		ORDER BY c DESC, t.name
		LIMIT 1`, year)
}

// TopWinners returns the top-n teams by wins among normal-result matches.
func (db *DB) TopWinners(year, limit int) ([]model.TeamCount, error) {
	return db.teamCounts(`
		SELECT t.name, COUNT(*) AS c
		FROM matches m
		JOIN seasons s ON s.id = m.season_id
		JOIN teams t ON t.id = m.winner_id
		WHERE s.year = ? AND m.result = 1
		GROUP BY t.id
		ORDER BY c DESC, t.name
		LIMIT ?`, year, limit)
}

// MaxPlayerAward returns every player tied on the maximum man-of-the-match
// award count for the season, not just one.
func (db *DB) MaxPlayerAward(year int) ([]model.PlayerCount, error) {
	rows, err := db.conn.Query(`
		SELECT p.name, COUNT(*) AS c
		FROM matches m
		JOIN seasons s ON s.id = m.season_id
		JOIN players p ON p.id = m.man_of_match_id
		WHERE s.year = ?
		GROUP BY p.id
		ORDER BY c DESC, p.name`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all []model.PlayerCount
	for rows.Next() {
		var pc model.PlayerCount
		if err := rows.Scan(&pc.Player, &pc.Count); err != nil {
			return nil, err
		}
		all = append(all, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	top := all[0].Count
	out := all[:0:0]
	for _, pc := range all {
		if pc.Count == top {
			out = append(out, pc)
		}
	}
	return out, nil
}

// MostWinLocation returns the (venue, team) pair with the most wins among
// normal-result matches.
func (db *DB) MostWinLocation(year int) ([]model.VenueTeamCount, error) {
	rows, err := db.conn.Query(`
		SELECT v.name, t.name, COUNT(*) AS c
		FROM matches m
		JOIN seasons s ON s.id = m.season_id
		JOIN venues v ON v.id = m.venue_id
		JOIN teams t ON t.id = m.winner_id
		WHERE s.year = ? AND m.result = 1
		GROUP BY v.id, t.id
		ORDER BY c DESC, v.name, t.name
		LIMIT 1`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.VenueTeamCount
	for rows.Next() {
		var vt model.VenueTeamCount
		if err := rows.Scan(&vt.Venue, &vt.Team, &vt.Count); err != nil {
			return nil, err
		}
		out = append(out, vt)
	}
	return out, rows.Err()
}

// BatFirstPercent returns the percentage of tosses where the winning team
// chose to bat, over all bat/field decisions of the season, rounded to two
// decimals. A season with no recorded decisions yields zero.
func (db *DB) BatFirstPercent(year int) (model.BatFirst, error) {
	var bat, batAndField int
	err := db.conn.QueryRow(`
		SELECT
			COUNT(CASE WHEN m.toss_decision = 1 THEN 1 END),
			COUNT(CASE WHEN m.toss_decision IN (1, 2) THEN 1 END)
		FROM matches m
		JOIN seasons s ON s.id = m.season_id
		WHERE s.year = ?`, year).Scan(&bat, &batAndField)
	if err != nil {
		return model.BatFirst{}, err
	}
	if batAndField == 0 {
		return model.BatFirst{PercentTeamDecidedBatFirst: 0}, nil
	}
	pct := float64(bat) * 100 / float64(batAndField)
	return model.BatFirst{PercentTeamDecidedBatFirst: math.Round(pct*100) / 100}, nil
}

// MostHostedLocation returns the venue that hosted the most matches.
func (db *DB) MostHostedLocation(year int) ([]model.VenueCount, error) {
	rows, err := db.conn.Query(`
		SELECT v.name, COUNT(*) AS c
		FROM matches m
		JOIN seasons s ON s.id = m.season_id
		JOIN venues v ON v.id = m.venue_id
		WHERE s.year = ?
		GROUP BY v.id
		ORDER BY c DESC, v.name
		LIMIT 1`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.VenueCount
	for rows.Next() {
		var vc model.VenueCount
		if err := rows.Scan(&vc.Venue, &vc.Count); err != nil {
			return nil, err
		}
		out = append(out, vc)
	}
	return out, rows.Err()
}

// HighestRunMargin returns every match won by the season's maximum run
// margin (tie-inclusive).
func (db *DB) HighestRunMargin(year int) ([]model.WinMargin, error) {
	return db.maxMargins(year, int(model.WonByRuns))
}

// TeamWonByHighestWickets returns every match won by the season's maximum
// wicket margin (tie-inclusive).
func (db *DB) TeamWonByHighestWickets(year int) ([]model.WinMargin, error) {
	return db.maxMargins(year, int(model.WonByWickets))
}

func (db *DB) maxMargins(year, wonBy int) ([]model.WinMargin, error) {
	rows, err := db.conn.Query(`
		SELECT t.name, m.win_margin
		FROM matches m
		JOIN seasons s ON s.id = m.season_id
		JOIN teams t ON t.id = m.winner_id
		WHERE s.year = ? AND m.won_by = ?
		AND m.win_margin = (
			SELECT MAX(m2.win_margin)
			FROM matches m2
			JOIN seasons s2 ON s2.id = m2.season_id
			WHERE s2.year = ? AND m2.won_by = ?)
		ORDER BY t.name`, year, wonBy, year, wonBy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.WinMargin
	for rows.Next() {
		var wm model.WinMargin
		if err := rows.Scan(&wm.Team, &wm.Margin); err != nil {
			return nil, err
		}
		out = append(out, wm)
	}
	return out, rows.Err()
}

// TeamWickets returns the full ranked list of teams by wickets taken while
// bowling, counting deliveries with a wicket-class dismissal.
func (db *DB) TeamWickets(year int) ([]model.TeamCount, error) {
	return db.teamCounts(`
		SELECT t.name, COUNT(*) AS c
		FROM deliveries d
		JOIN matches m ON m.id = d.match_id
		JOIN seasons s ON s.id = m.season_id
		JOIN teams t ON t.id = d.bowling_team_id
		WHERE s.year = ? AND d.dismissal_kind != 0
		GROUP BY t.id
		ORDER BY c DESC, t.name`, year)
}

// TeamWonTossMatches counts, among normal-result matches of the season, the
// wins of every team that won at least one toss in such a match. The toss and
// the win are not required to come from the same match; this mirrors the
// documented two-pass behavior and can overcount against a stricter reading.
func (db *DB) TeamWonTossMatches(year int) ([]model.TeamCount, error) {
	return db.teamCounts(`
		SELECT t.name, COUNT(*) AS c
		FROM matches m
		JOIN seasons s ON s.id = m.season_id
		JOIN teams t ON t.id = m.winner_id
		WHERE s.year = ? AND m.result = 1
		AND m.winner_id IN (
			SELECT DISTINCT m2.toss_winner_id
			FROM matches m2
			JOIN seasons s2 ON s2.id = m2.season_id
			WHERE s2.year = ? AND m2.result = 1)
		GROUP BY t.id
		ORDER BY c DESC, t.name`, year, year)
}

func (db *DB) teamCounts(query string, args ...any) ([]model.TeamCount, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TeamCount
	for rows.Next() {
		var tc model.TeamCount
		if err := rows.Scan(&tc.Team, &tc.Count); err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

// ListSeasons returns all stored seasons with match and delivery counts,
// newest first.
func (db *DB) ListSeasons() ([]model.SeasonSummary, error) {
	rows, err := db.conn.Query(`
		SELECT s.year,
		       (SELECT COUNT(*) FROM matches m WHERE m.season_id = s.id),
		       (SELECT COUNT(*) FROM deliveries d
		        JOIN matches m ON m.id = d.match_id WHERE m.season_id = s.id)
		FROM seasons s
		ORDER BY s.year DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SeasonSummary
	for rows.Next() {
		var ss model.SeasonSummary
		if err := rows.Scan(&ss.Year, &ss.Matches, &ss.Deliveries); err != nil {
			return nil, err
		}
		out = append(out, ss)
	}
	return out, rows.Err()
}

// GetOverview returns database-wide entity counts.
func (db *DB) GetOverview() (model.Overview, error) {
	var ov model.Overview
	err := db.conn.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM seasons),
			(SELECT COUNT(*) FROM cities),
			(SELECT COUNT(*) FROM venues),
			(SELECT COUNT(*) FROM teams),
			(SELECT COUNT(*) FROM umpires),
			(SELECT COUNT(*) FROM players),
			(SELECT COUNT(*) FROM matches),
			(SELECT COUNT(*) FROM deliveries)`).
		Scan(&ov.Seasons, &ov.Cities, &ov.Venues, &ov.Teams,
			&ov.Umpires, &ov.Players, &ov.Matches, &ov.Deliveries)
	return ov, err
}
