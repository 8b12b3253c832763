package storage

import (
	"fmt"

	"github.com/pable/go-cricket-stats/internal/model"
)

// The insert methods below are one bulk pass per entity type, each inside its
// own transaction with a prepared statement. Plain INSERT is used on purpose:
// the importer assumes a virgin store, and a unique-name collision on re-run
// is a hard failure rather than an implicit upsert.

// InsertSeasons inserts one season per distinct year and returns year → id.
func (db *DB) InsertSeasons(years []int) (map[int]int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO seasons(year) VALUES (?)`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	ids := make(map[int]int64, len(years))
	for _, year := range years {
		res, err := stmt.Exec(year)
		if err != nil {
			return nil, fmt.Errorf("insert season %d: %w", year, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		ids[year] = id
	}
	return ids, tx.Commit()
}

// InsertCities inserts one city per distinct name and returns name → id.
func (db *DB) InsertCities(names []string) (map[string]int64, error) {
	return db.insertNamed("cities", names)
}

// InsertTeams inserts one team per distinct name and returns name → id.
func (db *DB) InsertTeams(names []string) (map[string]int64, error) {
	return db.insertNamed("teams", names)
}

// InsertUmpires inserts one umpire per distinct name and returns name → id.
func (db *DB) InsertUmpires(names []string) (map[string]int64, error) {
	return db.insertNamed("umpires", names)
}

// InsertPlayers inserts one player per distinct name and returns name → id.
func (db *DB) InsertPlayers(names []string) (map[string]int64, error) {
	return db.insertNamed("players", names)
}

func (db *DB) insertNamed(table string, names []string) (map[string]int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(fmt.Sprintf(`INSERT INTO %s(name) VALUES (?)`, table))
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	ids := make(map[string]int64, len(names))
	for _, name := range names {
		res, err := stmt.Exec(name)
		if err != nil {
			return nil, fmt.Errorf("insert %s %q: %w", table, name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		ids[name] = id
	}
	return ids, tx.Commit()
}

// InsertVenues inserts venues and returns their ids in input order.
func (db *DB) InsertVenues(venues []model.Venue) ([]int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO venues(city_id, name) VALUES (?, ?)`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	ids := make([]int64, 0, len(venues))
	for _, v := range venues {
		res, err := stmt.Exec(v.CityID, v.Name)
		if err != nil {
			return nil, fmt.Errorf("insert venue %q: %w", v.Name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, tx.Commit()
}

// InsertMatches bulk-inserts match rows and returns source id → stored id,
// which the importer uses to link delivery rows.
func (db *DB) InsertMatches(matches []model.Match) (map[int64]int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO matches(
			source_id, season_id, venue_id, match_date,
			team1_id, team2_id, toss_winner_id, toss_decision,
			result, dl_applied, winner_id, won_by, win_margin,
			man_of_match_id, umpire1_id, umpire2_id, umpire3_id
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	ids := make(map[int64]int64, len(matches))
	for _, m := range matches {
		res, err := stmt.Exec(
			m.SourceID, m.SeasonID, m.VenueID, m.Date,
			m.Team1ID, m.Team2ID, m.TossWinnerID, int(m.TossDecision),
			int(m.Result), m.DLApplied, nullID(m.WinnerID), int(m.WonBy), m.WinMargin,
			nullID(m.ManOfMatchID), nullID(m.Umpire1ID), nullID(m.Umpire2ID), nullID(m.Umpire3ID),
		)
		if err != nil {
			return nil, fmt.Errorf("insert match %d: %w", m.SourceID, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		ids[m.SourceID] = id
	}
	return ids, tx.Commit()
}

// InsertDeliveries bulk-inserts delivery rows in a transaction.
func (db *DB) InsertDeliveries(deliveries []model.Delivery) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO deliveries(
			match_id, inning, over_number, ball,
			batting_team_id, bowling_team_id,
			batsman_id, bowler_id, non_striker_id, is_super_over,
			wide_runs, bye_runs, leg_bye_runs, no_ball_runs,
			penalty_runs, batsman_runs, extra_runs,
			dismissal_kind, dismissed_id, fielder_id
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range deliveries {
		_, err := stmt.Exec(
			d.MatchID, d.Inning, d.Over, d.Ball,
			d.BattingTeamID, d.BowlingTeamID,
			d.BatsmanID, d.BowlerID, d.NonStrikerID, boolInt(d.IsSuperOver),
			d.WideRuns, d.ByeRuns, d.LegByeRuns, d.NoBallRuns,
			d.PenaltyRuns, d.BatsmanRuns, d.ExtraRuns,
			int(d.DismissalKind), nullID(d.DismissedID), nullID(d.FielderID),
		)
		if err != nil {
			return fmt.Errorf("insert delivery match=%d inning=%d over=%d ball=%d: %w",
				d.MatchID, d.Inning, d.Over, d.Ball, err)
		}
	}
	return tx.Commit()
}

func nullID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
