// Package stats exposes the season statistics as a fixed set of named
// queries keyed by (statistic, year). Dispatch is a closed enum of kinds
// rather than string comparison chains, so a new statistic that misses a
// handler fails loudly.
package stats

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/pable/go-cricket-stats/internal/model"
	"github.com/pable/go-cricket-stats/internal/storage"
)

// Kind identifies one statistic query.
type Kind int

const (
	MostToss Kind = iota
	Top4Teams
	Top1Team
	MaxPlayerAward
	MostWinLocation
	TeamBatFirst
	MostHostedLocation
	HighestRunMargin
	TeamHighestWicket
	TeamWonByHighestWickets
	TeamWonTossMatches
)

var kindNames = map[Kind]string{
	MostToss:                "most_toss",
	Top4Teams:               "top_4_teams",
	Top1Team:                "top_1_team",
	MaxPlayerAward:          "max_player_award",
	MostWinLocation:         "most_win_location",
	TeamBatFirst:            "team_bat_first",
	MostHostedLocation:      "most_hosted_location",
	HighestRunMargin:        "highest_run_margin",
	TeamHighestWicket:       "team_highest_wicket",
	TeamWonByHighestWickets: "team_won_by_highest_wickets",
	TeamWonTossMatches:      "team_won_toss_matches",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind resolves a statistic name. Unknown names produce no kind.
func ParseKind(name string) (Kind, bool) {
	for k, s := range kindNames {
		if s == name {
			return k, true
		}
	}
	return 0, false
}

// Names returns all statistic names, sorted, for help and shell output.
func Names() []string {
	out := make([]string, 0, len(kindNames))
	for _, s := range kindNames {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// ValidationError rejects a request before any match data is read. Its
// message is surfaced to the caller verbatim.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Result is a uniform tabular payload for one statistic. Rows carry the
// rendered table cells; Payload carries the typed rows for JSON output.
type Result struct {
	Kind    Kind
	Year    int
	Columns []string
	Rows    [][]string
	Payload any
}

// Run validates the year and dispatches the statistic against the store.
// The year must be numeric and must match a stored season; both checks
// happen before the statistic query touches any match data.
func Run(db *storage.DB, kind Kind, year string) (*Result, error) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return nil, &ValidationError{msg: fmt.Sprintf("season %q must be a numeric year", year)}
	}
	exists, err := db.SeasonExists(y)
	if err != nil {
		return nil, fmt.Errorf("check season: %w", err)
	}
	if !exists {
		return nil, &ValidationError{msg: fmt.Sprintf("season %d is not in the database", y)}
	}

	res := &Result{Kind: kind, Year: y}
	switch kind {
	case MostToss:
		tc, err := db.MostToss(y)
		if err != nil {
			return nil, err
		}
		res.teamCounts(tc)
	case Top4Teams:
		tc, err := db.TopWinners(y, 4)
		if err != nil {
			return nil, err
		}
		res.teamCounts(tc)
	case Top1Team:
		tc, err := db.TopWinners(y, 1)
		if err != nil {
			return nil, err
		}
		res.teamCounts(tc)
	case MaxPlayerAward:
		pc, err := db.MaxPlayerAward(y)
		if err != nil {
			return nil, err
		}
		if pc == nil {
			pc = []model.PlayerCount{}
		}
		res.Columns = []string{"PLAYER", "AWARDS"}
		for _, p := range pc {
			res.Rows = append(res.Rows, []string{p.Player, strconv.Itoa(p.Count)})
		}
		res.Payload = pc
	case MostWinLocation:
		vt, err := db.MostWinLocation(y)
		if err != nil {
			return nil, err
		}
		if vt == nil {
			vt = []model.VenueTeamCount{}
		}
		res.Columns = []string{"VENUE", "TEAM", "WINS"}
		for _, v := range vt {
			res.Rows = append(res.Rows, []string{v.Venue, v.Team, strconv.Itoa(v.Count)})
		}
		res.Payload = vt
	case TeamBatFirst:
		bf, err := db.BatFirstPercent(y)
		if err != nil {
			return nil, err
		}
		res.Columns = []string{"BAT_FIRST_%"}
		res.Rows = [][]string{{fmt.Sprintf("%.2f", bf.PercentTeamDecidedBatFirst)}}
		res.Payload = bf
	case MostHostedLocation:
		vc, err := db.MostHostedLocation(y)
		if err != nil {
			return nil, err
		}
		if vc == nil {
			vc = []model.VenueCount{}
		}
		res.Columns = []string{"VENUE", "MATCHES"}
		for _, v := range vc {
			res.Rows = append(res.Rows, []string{v.Venue, strconv.Itoa(v.Count)})
		}
		res.Payload = vc
	case HighestRunMargin:
		wm, err := db.HighestRunMargin(y)
		if err != nil {
			return nil, err
		}
		res.margins(wm, "RUNS")
	case TeamHighestWicket:
		tc, err := db.TeamWickets(y)
		if err != nil {
			return nil, err
		}
		res.Columns = []string{"TEAM", "WICKETS"}
		if tc == nil {
			tc = []model.TeamCount{}
		}
		for _, t := range tc {
			res.Rows = append(res.Rows, []string{t.Team, strconv.Itoa(t.Count)})
		}
		res.Payload = tc
	case TeamWonByHighestWickets:
		wm, err := db.TeamWonByHighestWickets(y)
		if err != nil {
			return nil, err
		}
		res.margins(wm, "WICKETS")
	case TeamWonTossMatches:
		tc, err := db.TeamWonTossMatches(y)
		if err != nil {
			return nil, err
		}
		res.teamCounts(tc)
	default:
		return nil, fmt.Errorf("unhandled statistic kind %d", int(kind))
	}
	return res, nil
}

func (r *Result) teamCounts(tc []model.TeamCount) {
	if tc == nil {
		tc = []model.TeamCount{}
	}
	r.Columns = []string{"TEAM", "COUNT"}
	for _, t := range tc {
		r.Rows = append(r.Rows, []string{t.Team, strconv.Itoa(t.Count)})
	}
	r.Payload = tc
}

func (r *Result) margins(wm []model.WinMargin, unit string) {
	if wm == nil {
		wm = []model.WinMargin{}
	}
	r.Columns = []string{"TEAM", unit}
	for _, w := range wm {
		r.Rows = append(r.Rows, []string{w.Team, strconv.Itoa(w.Margin)})
	}
	r.Payload = wm
}
