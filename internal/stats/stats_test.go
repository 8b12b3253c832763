package stats

import (
	"errors"
	"testing"

	"github.com/pable/go-cricket-stats/internal/model"
	"github.com/pable/go-cricket-stats/internal/storage"
)

func openSeededDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	seasons, err := db.InsertSeasons([]int{2017})
	if err != nil {
		t.Fatalf("insert seasons: %v", err)
	}
	cities, err := db.InsertCities([]string{"Mumbai"})
	if err != nil {
		t.Fatalf("insert cities: %v", err)
	}
	venues, err := db.InsertVenues([]model.Venue{{CityID: cities["Mumbai"], Name: "Wankhede"}})
	if err != nil {
		t.Fatalf("insert venues: %v", err)
	}
	teams, err := db.InsertTeams([]string{"CSK", "MI"})
	if err != nil {
		t.Fatalf("insert teams: %v", err)
	}
	players, err := db.InsertPlayers([]string{"Rohit"})
	if err != nil {
		t.Fatalf("insert players: %v", err)
	}

	_, err = db.InsertMatches([]model.Match{{
		SourceID: 1, SeasonID: seasons[2017], VenueID: venues[0], Date: "2017-04-05",
		Team1ID: teams["MI"], Team2ID: teams["CSK"], TossWinnerID: teams["MI"],
		TossDecision: model.TossBat, Result: model.ResultNormal,
		WinnerID: teams["MI"], WonBy: model.WonByRuns, WinMargin: 40,
		ManOfMatchID: players["Rohit"],
	}})
	if err != nil {
		t.Fatalf("insert matches: %v", err)
	}
	return db
}

func TestParseKind(t *testing.T) {
	for _, name := range Names() {
		kind, ok := ParseKind(name)
		if !ok {
			t.Errorf("ParseKind(%q) failed", name)
		}
		if kind.String() != name {
			t.Errorf("kind %v renders as %q, want %q", int(kind), kind.String(), name)
		}
	}
	if _, ok := ParseKind("most_sixes"); ok {
		t.Error("expected unknown statistic name to not parse")
	}
}

func TestNamesComplete(t *testing.T) {
	if len(Names()) != 11 {
		t.Errorf("expected 11 statistics, got %d: %v", len(Names()), Names())
	}
}

// Every statistic rejects a bad year before touching match data.
func TestRunValidatesYear(t *testing.T) {
	db := openSeededDB(t)

	for _, name := range Names() {
		kind, _ := ParseKind(name)

		_, err := Run(db, kind, "20x7")
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: non-numeric year: got %v, want ValidationError", name, err)
		}

		_, err = Run(db, kind, "1999")
		if !errors.As(err, &verr) {
			t.Errorf("%s: unknown season: got %v, want ValidationError", name, err)
		}
	}
}

// Every statistic dispatches against a valid season without error and
// produces a payload.
func TestRunAllKinds(t *testing.T) {
	db := openSeededDB(t)

	for _, name := range Names() {
		kind, _ := ParseKind(name)
		res, err := Run(db, kind, "2017")
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if res.Payload == nil {
			t.Errorf("%s: nil payload", name)
		}
		if len(res.Columns) == 0 {
			t.Errorf("%s: no columns", name)
		}
	}
}

func TestRunMostToss(t *testing.T) {
	db := openSeededDB(t)

	res, err := Run(db, MostToss, "2017")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	tc, ok := res.Payload.([]model.TeamCount)
	if !ok {
		t.Fatalf("payload type %T", res.Payload)
	}
	if len(tc) != 1 || tc[0].Team != "MI" || tc[0].Count != 1 {
		t.Errorf("unexpected payload: %v", tc)
	}
	if len(res.Rows) != 1 || res.Rows[0][0] != "MI" {
		t.Errorf("unexpected rows: %v", res.Rows)
	}
}

// An empty season yields empty collections, except the bat-first ratio
// which substitutes 0.
func TestRunEmptySeason(t *testing.T) {
	db := openSeededDB(t)
	if _, err := db.InsertSeasons([]int{2016}); err != nil {
		t.Fatalf("insert season: %v", err)
	}

	res, err := Run(db, TeamBatFirst, "2016")
	if err != nil {
		t.Fatalf("Run(TeamBatFirst): %v", err)
	}
	bf, ok := res.Payload.(model.BatFirst)
	if !ok {
		t.Fatalf("payload type %T", res.Payload)
	}
	if bf.PercentTeamDecidedBatFirst != 0 {
		t.Errorf("expected 0 percent, got %v", bf.PercentTeamDecidedBatFirst)
	}

	res, err = Run(db, HighestRunMargin, "2016")
	if err != nil {
		t.Fatalf("Run(HighestRunMargin): %v", err)
	}
	wm, ok := res.Payload.([]model.WinMargin)
	if !ok {
		t.Fatalf("payload type %T", res.Payload)
	}
	if len(wm) != 0 {
		t.Errorf("expected empty result, got %v", wm)
	}
	if len(res.Rows) != 0 {
		t.Errorf("expected no table rows, got %v", res.Rows)
	}
}
