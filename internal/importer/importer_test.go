package importer

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"go.uber.org/zap"

	"github.com/pable/go-cricket-stats/internal/storage"
)

const matchHeader = "id,season,city,venue,date,team1,team2,toss_winner,toss_decision,result,dl_applied,winner,win_by_runs,win_by_wickets,player_of_match,umpire1,umpire2,umpire3"

const deliveryHeader = "match_id,inning,batting_team,bowling_team,over,ball,batsman,non_striker,bowler,is_super_over,wide_runs,bye_runs,legbye_runs,noball_runs,penalty_runs,batsman_runs,extra_runs,player_dismissed,dismissal_kind,fielder"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func openMemDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func runImport(t *testing.T, db *storage.DB, matches, deliveries string) *Result {
	t.Helper()
	dir := t.TempDir()
	mPath := writeFile(t, dir, "matches.csv", matchHeader+"\n"+matches)
	dPath := writeFile(t, dir, "deliveries.csv", deliveryHeader+"\n"+deliveries)

	res, err := New(db, zap.NewNop()).Run(mPath, dPath)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	return res
}

func TestImportSeason(t *testing.T) {
	db := openMemDB(t)

	// Two matches share the Mumbai/Wankhede pair; only one venue may result.
	matches := `1,2017,Mumbai,Wankhede,2017-04-05,MI,CSK,MI,bat,normal,0,MI,100,0,Rohit,Asad Rauf,Ian Gould,
2,2017,Mumbai,Wankhede,2017-04-09,MI,KKR,KKR,field,normal,0,KKR,0,7,Narine,Asad Rauf,,
3,2017,Chennai,Chepauk,2017-04-12,CSK,KKR,CSK,BAT,Normal,0,CSK,20,0,Dhoni,Ian Gould,,
`
	deliveries := `1,1,MI,CSK,1,1,Rohit,Lynn,Bravo,0,0,0,0,0,0,4,0,,,
1,1,MI,CSK,1,2,Rohit,Lynn,Bravo,0,0,0,0,0,0,0,0,Rohit,Caught And Bowled,
2,2,KKR,MI,5,3,Narine,Lynn,Bumrah,0,1,0,0,0,0,0,1,Narine,bowled,
3,1,CSK,KKR,10,6,Dhoni,Jadeja,Narine,0,0,0,0,0,0,6,0,,,Lynn
`
	res := runImport(t, db, matches, deliveries)

	if res.Seasons != 1 {
		t.Errorf("seasons: got %d, want 1", res.Seasons)
	}
	if res.Cities != 2 || res.Venues != 2 {
		t.Errorf("cities/venues: got %d/%d, want 2/2", res.Cities, res.Venues)
	}
	if res.Teams != 3 {
		t.Errorf("teams: got %d, want 3", res.Teams)
	}
	if res.Umpires != 2 {
		t.Errorf("umpires: got %d, want 2", res.Umpires)
	}
	if res.Matches != 3 || res.SkippedMatches != 0 {
		t.Errorf("matches: got %d (skipped %d), want 3 (0)", res.Matches, res.SkippedMatches)
	}
	if res.Deliveries != 4 || res.SkippedDeliveries != 0 {
		t.Errorf("deliveries: got %d (skipped %d), want 4 (0)", res.Deliveries, res.SkippedDeliveries)
	}

	// Dedup by the concatenated city+venue key: one Wankhede row.
	_, rows, err := db.QueryRaw("SELECT COUNT(*) FROM venues WHERE name = 'Wankhede'")
	if err != nil {
		t.Fatalf("query venues: %v", err)
	}
	if rows[0][0] != "1" {
		t.Errorf("expected exactly 1 Wankhede venue, got %s", rows[0][0])
	}

	// Mixed-case dismissal text resolves; absent text defaults to not-out.
	_, rows, err = db.QueryRaw("SELECT dismissal_kind, COUNT(*) FROM deliveries GROUP BY dismissal_kind ORDER BY dismissal_kind")
	if err != nil {
		t.Fatalf("query deliveries: %v", err)
	}
	want := map[string]string{"0": "2", "1": "1", "3": "1"} // not-out ×2, bowled, caught-and-bowled
	for _, row := range rows {
		if want[row[0]] != row[1] {
			t.Errorf("dismissal kind %s: got count %s, want %s", row[0], row[1], want[row[0]])
		}
	}

	// The stat queries see the imported season.
	top, err := db.MostToss(2017)
	if err != nil {
		t.Fatalf("MostToss: %v", err)
	}
	if len(top) != 1 {
		t.Fatalf("expected a toss leader, got %v", top)
	}
}

func TestImportSkipsBadMatchRows(t *testing.T) {
	db := openMemDB(t)

	// Row 2 has no city, row 3 an unresolvable toss decision, row 4 an
	// unresolvable result. Only row 1 survives.
	matches := `1,2017,Mumbai,Wankhede,2017-04-05,MI,CSK,MI,bat,normal,0,MI,100,0,,,,
2,2017,,Wankhede,2017-04-06,MI,CSK,CSK,bat,normal,0,CSK,10,0,,,,
3,2017,Mumbai,Wankhede,2017-04-07,MI,CSK,MI,bowl,normal,0,MI,5,0,,,,
4,2017,Mumbai,Wankhede,2017-04-08,MI,CSK,CSK,bat,abandoned,0,,0,0,,,,
`
	res := runImport(t, db, matches, "")

	if res.Matches != 1 {
		t.Errorf("matches: got %d, want 1", res.Matches)
	}
	if res.SkippedMatches != 3 {
		t.Errorf("skipped: got %d, want 3", res.SkippedMatches)
	}
}

func TestImportSkipsDeliveriesOfSkippedMatches(t *testing.T) {
	db := openMemDB(t)

	matches := `1,2017,Mumbai,Wankhede,2017-04-05,MI,CSK,MI,bat,normal,0,MI,100,0,,,,
2,2017,,Wankhede,2017-04-06,MI,CSK,CSK,bat,normal,0,CSK,10,0,,,,
`
	deliveries := `1,1,MI,CSK,1,1,Rohit,Lynn,Bravo,0,0,0,0,0,0,1,0,,,
2,1,MI,CSK,1,1,Rohit,Lynn,Bravo,0,0,0,0,0,0,1,0,,,
`
	res := runImport(t, db, matches, deliveries)

	if res.Deliveries != 1 {
		t.Errorf("deliveries: got %d, want 1", res.Deliveries)
	}
	if res.SkippedDeliveries != 1 {
		t.Errorf("skipped deliveries: got %d, want 1", res.SkippedDeliveries)
	}
}

// Importing the same season twice fails on the unique-name constraints;
// there is no implicit upsert.
func TestImportRerunFails(t *testing.T) {
	db := openMemDB(t)

	matches := `1,2017,Mumbai,Wankhede,2017-04-05,MI,CSK,MI,bat,normal,0,MI,100,0,,,,` + "\n"
	dir := t.TempDir()
	mPath := writeFile(t, dir, "matches.csv", matchHeader+"\n"+matches)
	dPath := writeFile(t, dir, "deliveries.csv", deliveryHeader+"\n")

	im := New(db, zap.NewNop())
	if _, err := im.Run(mPath, dPath); err != nil {
		t.Fatalf("first import: %v", err)
	}
	if _, err := im.Run(mPath, dPath); err == nil {
		t.Error("expected re-import of the same season to fail")
	}
}

func TestImportMissingColumn(t *testing.T) {
	db := openMemDB(t)
	dir := t.TempDir()
	mPath := writeFile(t, dir, "matches.csv", "id,season\n1,2017\n")
	dPath := writeFile(t, dir, "deliveries.csv", deliveryHeader+"\n")

	if _, err := New(db, nil).Run(mPath, dPath); err == nil {
		t.Error("expected an error for a file missing required columns")
	}
}

func TestImportSuperOverAndExtras(t *testing.T) {
	db := openMemDB(t)

	matches := `1,2017,Mumbai,Wankhede,2017-04-05,MI,CSK,MI,bat,tie,0,,0,0,,,,` + "\n"
	deliveries := `1,1,MI,CSK,20,6,Rohit,Pandya,Bravo,1,2,0,1,1,0,0,4,,,` + "\n"
	res := runImport(t, db, matches, deliveries)
	if res.Deliveries != 1 {
		t.Fatalf("deliveries: got %d, want 1", res.Deliveries)
	}

	_, rows, err := db.QueryRaw("SELECT is_super_over, wide_runs, leg_bye_runs, no_ball_runs, extra_runs FROM deliveries")
	if err != nil {
		t.Fatalf("query deliveries: %v", err)
	}
	got := rows[0]
	want := []int{1, 2, 1, 1, 4}
	for i, w := range want {
		if got[i] != strconv.Itoa(w) {
			t.Errorf("column %d: got %s, want %d", i, got[i], w)
		}
	}
}
