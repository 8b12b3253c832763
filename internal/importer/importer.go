// Package importer loads a season's match and delivery CSV files into the
// relational store. It is a one-shot batch: master entities are deduplicated
// in memory and bulk-inserted once each, in dependency order, because later
// inserts reference earlier ones by id. Re-running against a populated store
// fails on the unique-name constraints; there is no upsert path.
package importer

import (
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/pable/go-cricket-stats/internal/model"
	"github.com/pable/go-cricket-stats/internal/storage"
)

// Required columns of the two source files.
var (
	matchColumns = []string{
		"id", "season", "city", "venue", "date", "team1", "team2",
		"toss_winner", "toss_decision", "result", "dl_applied", "winner",
		"win_by_runs", "win_by_wickets", "player_of_match",
		"umpire1", "umpire2", "umpire3",
	}
	deliveryColumns = []string{
		"match_id", "inning", "batting_team", "bowling_team", "over", "ball",
		"batsman", "non_striker", "bowler", "is_super_over",
		"wide_runs", "bye_runs", "legbye_runs", "noball_runs", "penalty_runs",
		"batsman_runs", "extra_runs", "player_dismissed", "dismissal_kind",
		"fielder",
	}
)

// Result reports what an import run inserted and skipped.
type Result struct {
	Seasons    int
	Cities     int
	Venues     int
	Teams      int
	Umpires    int
	Players    int
	Matches    int
	Deliveries int

	SkippedMatches    int
	SkippedDeliveries int
}

// Importer normalizes the flat season files into the store.
type Importer struct {
	db  *storage.DB
	log *zap.Logger
}

// New returns an Importer writing to db. A nil logger is replaced with a nop.
func New(db *storage.DB, log *zap.Logger) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{db: db, log: log}
}

// Run imports the two files. Row-level problems are logged and skipped;
// anything that stops the whole import (unreadable file, store failure,
// unique-constraint collision on re-run) is returned as an error.
func (im *Importer) Run(matchesPath, deliveriesPath string) (*Result, error) {
	matches, err := loadTable(matchesPath, matchColumns...)
	if err != nil {
		return nil, err
	}
	deliveries, err := loadTable(deliveriesPath, deliveryColumns...)
	if err != nil {
		return nil, err
	}

	res := &Result{}

	seasonIDs, err := im.insertSeasons(matches, res)
	if err != nil {
		return nil, err
	}
	venueIDs, err := im.insertCityVenues(matches, res)
	if err != nil {
		return nil, err
	}
	teamIDs, err := im.insertTeams(matches, res)
	if err != nil {
		return nil, err
	}
	umpireIDs, err := im.insertUmpires(matches, res)
	if err != nil {
		return nil, err
	}
	playerIDs, err := im.insertPlayers(matches, deliveries, res)
	if err != nil {
		return nil, err
	}

	matchIDs, err := im.insertMatches(matches, seasonIDs, venueIDs, teamIDs, umpireIDs, playerIDs, res)
	if err != nil {
		return nil, err
	}
	if err := im.insertDeliveries(deliveries, matchIDs, teamIDs, playerIDs, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (im *Importer) insertSeasons(t *table, res *Result) (map[int]int64, error) {
	distinct := map[int]bool{}
	for _, row := range t.rows {
		year, err := strconv.Atoi(t.get(row, "season"))
		if err != nil {
			im.log.Warn("skipping non-numeric season value", zap.String("season", t.get(row, "season")))
			continue
		}
		distinct[year] = true
	}
	years := make([]int, 0, len(distinct))
	for y := range distinct {
		years = append(years, y)
	}
	sort.Ints(years)

	ids, err := im.db.InsertSeasons(years)
	if err != nil {
		return nil, fmt.Errorf("insert seasons: %w", err)
	}
	res.Seasons = len(ids)
	return ids, nil
}

// insertCityVenues creates the city master set, then venues keyed by the
// concatenated city+venue pair so the same stadium name in two cities stays
// distinct.
func (im *Importer) insertCityVenues(t *table, res *Result) (map[string]int64, error) {
	cities := distinctColumn(t, "city")
	cityIDs, err := im.db.InsertCities(cities)
	if err != nil {
		return nil, fmt.Errorf("insert cities: %w", err)
	}
	res.Cities = len(cityIDs)

	seen := map[string]bool{}
	var keys []string
	for _, row := range t.rows {
		city, venue := t.get(row, "city"), t.get(row, "venue")
		if city == "" || venue == "" {
			continue
		}
		key := city + "__" + venue
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	venues := make([]model.Venue, 0, len(keys))
	for _, key := range keys {
		city, name, _ := cutKey(key)
		venues = append(venues, model.Venue{CityID: cityIDs[city], Name: name})
	}
	ids, err := im.db.InsertVenues(venues)
	if err != nil {
		return nil, fmt.Errorf("insert venues: %w", err)
	}
	res.Venues = len(ids)

	venueIDs := make(map[string]int64, len(keys))
	for i, key := range keys {
		venueIDs[key] = ids[i]
	}
	return venueIDs, nil
}

func (im *Importer) insertTeams(t *table, res *Result) (map[string]int64, error) {
	names := distinctColumn(t, "team1", "team2")
	ids, err := im.db.InsertTeams(names)
	if err != nil {
		return nil, fmt.Errorf("insert teams: %w", err)
	}
	res.Teams = len(ids)
	return ids, nil
}

func (im *Importer) insertUmpires(t *table, res *Result) (map[string]int64, error) {
	names := distinctColumn(t, "umpire1", "umpire2", "umpire3")
	ids, err := im.db.InsertUmpires(names)
	if err != nil {
		return nil, fmt.Errorf("insert umpires: %w", err)
	}
	res.Umpires = len(ids)
	return ids, nil
}

func (im *Importer) insertPlayers(matches, deliveries *table, res *Result) (map[string]int64, error) {
	seen := map[string]bool{}
	var names []string
	add := func(t *table, cols ...string) {
		for _, row := range t.rows {
			for _, col := range cols {
				if v := t.get(row, col); v != "" && !seen[v] {
					seen[v] = true
					names = append(names, v)
				}
			}
		}
	}
	add(matches, "player_of_match")
	add(deliveries, "batsman", "non_striker", "bowler", "fielder", "player_dismissed")
	sort.Strings(names)

	ids, err := im.db.InsertPlayers(names)
	if err != nil {
		return nil, fmt.Errorf("insert players: %w", err)
	}
	res.Players = len(ids)
	return ids, nil
}

func (im *Importer) insertMatches(
	t *table,
	seasonIDs map[int]int64,
	venueIDs map[string]int64,
	teamIDs map[string]int64,
	umpireIDs map[string]int64,
	playerIDs map[string]int64,
	res *Result,
) (map[int64]int64, error) {
	var rows []model.Match
	for _, row := range t.rows {
		m, err := im.buildMatch(t, row, seasonIDs, venueIDs, teamIDs, umpireIDs, playerIDs)
		if err != nil {
			res.SkippedMatches++
			im.log.Warn("skipping match row",
				zap.String("source_id", t.get(row, "id")),
				zap.Error(err))
			continue
		}
		rows = append(rows, *m)
	}

	ids, err := im.db.InsertMatches(rows)
	if err != nil {
		return nil, fmt.Errorf("insert matches: %w", err)
	}
	res.Matches = len(ids)
	return ids, nil
}

func (im *Importer) buildMatch(
	t *table, row []string,
	seasonIDs map[int]int64,
	venueIDs map[string]int64,
	teamIDs map[string]int64,
	umpireIDs map[string]int64,
	playerIDs map[string]int64,
) (*model.Match, error) {
	city, venue := t.get(row, "city"), t.get(row, "venue")
	if city == "" || venue == "" {
		return nil, fmt.Errorf("missing city or venue")
	}
	venueID, ok := venueIDs[city+"__"+venue]
	if !ok {
		return nil, fmt.Errorf("unknown venue %q in %q", venue, city)
	}

	sourceID, err := strconv.ParseInt(t.get(row, "id"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("non-numeric match id %q", t.get(row, "id"))
	}
	year, err := strconv.Atoi(t.get(row, "season"))
	if err != nil {
		return nil, fmt.Errorf("non-numeric season %q", t.get(row, "season"))
	}
	seasonID, ok := seasonIDs[year]
	if !ok {
		return nil, fmt.Errorf("unknown season %d", year)
	}

	team1, ok := teamIDs[t.get(row, "team1")]
	if !ok {
		return nil, fmt.Errorf("unknown team %q", t.get(row, "team1"))
	}
	team2, ok := teamIDs[t.get(row, "team2")]
	if !ok {
		return nil, fmt.Errorf("unknown team %q", t.get(row, "team2"))
	}
	tossWinner, ok := teamIDs[t.get(row, "toss_winner")]
	if !ok {
		return nil, fmt.Errorf("unknown toss winner %q", t.get(row, "toss_winner"))
	}

	tossDecision, ok := model.ParseTossDecision(t.get(row, "toss_decision"))
	if !ok {
		return nil, fmt.Errorf("unresolvable toss decision %q", t.get(row, "toss_decision"))
	}
	result, ok := model.ParseMatchResult(t.get(row, "result"))
	if !ok {
		return nil, fmt.Errorf("unresolvable result %q", t.get(row, "result"))
	}

	var winnerID int64
	if w := t.get(row, "winner"); w != "" {
		if winnerID, ok = teamIDs[w]; !ok {
			return nil, fmt.Errorf("unknown winner %q", w)
		}
	}

	// Classify the winning margin: a positive run margin wins over a
	// positive wicket margin, anything else is unknown with margin 0.
	wonBy, margin := model.WonByUnknown, 0
	if runs := t.getInt(row, "win_by_runs"); runs > 0 {
		wonBy, margin = model.WonByRuns, runs
	} else if wickets := t.getInt(row, "win_by_wickets"); wickets > 0 {
		wonBy, margin = model.WonByWickets, wickets
	}

	return &model.Match{
		SourceID:     sourceID,
		SeasonID:     seasonID,
		VenueID:      venueID,
		Date:         t.get(row, "date"),
		Team1ID:      team1,
		Team2ID:      team2,
		TossWinnerID: tossWinner,
		TossDecision: tossDecision,
		Result:       result,
		DLApplied:    t.getInt(row, "dl_applied"),
		WinnerID:     winnerID,
		WonBy:        wonBy,
		WinMargin:    margin,
		ManOfMatchID: playerIDs[t.get(row, "player_of_match")],
		Umpire1ID:    umpireIDs[t.get(row, "umpire1")],
		Umpire2ID:    umpireIDs[t.get(row, "umpire2")],
		Umpire3ID:    umpireIDs[t.get(row, "umpire3")],
	}, nil
}

func (im *Importer) insertDeliveries(
	t *table,
	matchIDs map[int64]int64,
	teamIDs map[string]int64,
	playerIDs map[string]int64,
	res *Result,
) error {
	var rows []model.Delivery
	for _, row := range t.rows {
		d, err := im.buildDelivery(t, row, matchIDs, teamIDs, playerIDs)
		if err != nil {
			res.SkippedDeliveries++
			im.log.Warn("skipping delivery row",
				zap.String("match_id", t.get(row, "match_id")),
				zap.Error(err))
			continue
		}
		rows = append(rows, *d)
	}

	if err := im.db.InsertDeliveries(rows); err != nil {
		return fmt.Errorf("insert deliveries: %w", err)
	}
	res.Deliveries = len(rows)
	return nil
}

func (im *Importer) buildDelivery(
	t *table, row []string,
	matchIDs map[int64]int64,
	teamIDs map[string]int64,
	playerIDs map[string]int64,
) (*model.Delivery, error) {
	sourceID, err := strconv.ParseInt(t.get(row, "match_id"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("non-numeric match_id %q", t.get(row, "match_id"))
	}
	matchID, ok := matchIDs[sourceID]
	if !ok {
		// Deliveries of a skipped or unknown match have no match to
		// reference and are dropped with it.
		return nil, fmt.Errorf("no stored match for source id %d", sourceID)
	}

	batting, ok := teamIDs[t.get(row, "batting_team")]
	if !ok {
		return nil, fmt.Errorf("unknown batting team %q", t.get(row, "batting_team"))
	}
	bowling, ok := teamIDs[t.get(row, "bowling_team")]
	if !ok {
		return nil, fmt.Errorf("unknown bowling team %q", t.get(row, "bowling_team"))
	}
	batsman, ok := playerIDs[t.get(row, "batsman")]
	if !ok {
		return nil, fmt.Errorf("unknown batsman %q", t.get(row, "batsman"))
	}
	bowler, ok := playerIDs[t.get(row, "bowler")]
	if !ok {
		return nil, fmt.Errorf("unknown bowler %q", t.get(row, "bowler"))
	}
	nonStriker, ok := playerIDs[t.get(row, "non_striker")]
	if !ok {
		return nil, fmt.Errorf("unknown non-striker %q", t.get(row, "non_striker"))
	}

	return &model.Delivery{
		MatchID:       matchID,
		Inning:        t.getInt(row, "inning"),
		Over:          t.getInt(row, "over"),
		Ball:          t.getInt(row, "ball"),
		BattingTeamID: batting,
		BowlingTeamID: bowling,
		BatsmanID:     batsman,
		BowlerID:      bowler,
		NonStrikerID:  nonStriker,
		IsSuperOver:   t.getInt(row, "is_super_over") != 0,
		WideRuns:      t.getInt(row, "wide_runs"),
		ByeRuns:       t.getInt(row, "bye_runs"),
		LegByeRuns:    t.getInt(row, "legbye_runs"),
		NoBallRuns:    t.getInt(row, "noball_runs"),
		PenaltyRuns:   t.getInt(row, "penalty_runs"),
		BatsmanRuns:   t.getInt(row, "batsman_runs"),
		ExtraRuns:     t.getInt(row, "extra_runs"),
		DismissalKind: model.ParseDismissalKind(t.get(row, "dismissal_kind")),
		DismissedID:   playerIDs[t.get(row, "player_dismissed")],
		FielderID:     playerIDs[t.get(row, "fielder")],
	}, nil
}

// distinctColumn returns the sorted union of non-empty values across the
// given columns.
func distinctColumn(t *table, cols ...string) []string {
	seen := map[string]bool{}
	var out []string
	for _, row := range t.rows {
		for _, col := range cols {
			if v := t.get(row, col); v != "" && !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	sort.Strings(out)
	return out
}

func cutKey(key string) (city, venue string, ok bool) {
	for i := 0; i+1 < len(key); i++ {
		if key[i] == '_' && key[i+1] == '_' {
			return key[:i], key[i+2:], true
		}
	}
	return key, "", false
}
