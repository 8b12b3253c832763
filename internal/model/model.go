// Package model defines the relational entities of a stored cricket season
// and the closed enumerations used by matches and deliveries.
package model

import "strings"

// TossDecision is what the toss-winning team chose to do first.
type TossDecision int

const (
	TossUnknown TossDecision = 0
	TossBat     TossDecision = 1
	TossField   TossDecision = 2
)

func (d TossDecision) String() string {
	switch d {
	case TossBat:
		return "Bat"
	case TossField:
		return "Field"
	default:
		return "Bad Data"
	}
}

// ParseTossDecision resolves source text against the fixed vocabulary,
// case-insensitively. Unrecognized text is a hard error for the row.
func ParseTossDecision(s string) (TossDecision, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bat":
		return TossBat, true
	case "field":
		return TossField, true
	}
	return TossUnknown, false
}

// MatchResult is the outcome class of a match.
type MatchResult int

const (
	ResultNoResult MatchResult = 0
	ResultNormal   MatchResult = 1
	ResultTie      MatchResult = 2
)

func (r MatchResult) String() string {
	switch r {
	case ResultNormal:
		return "Normal"
	case ResultTie:
		return "Tie"
	default:
		return "No Result"
	}
}

// ParseMatchResult resolves source text against the fixed vocabulary,
// case-insensitively. Unrecognized text is a hard error for the row.
func ParseMatchResult(s string) (MatchResult, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal":
		return ResultNormal, true
	case "tie":
		return ResultTie, true
	case "no result":
		return ResultNoResult, true
	}
	return ResultNoResult, false
}

// WonBy classifies the winning margin unit of a match.
type WonBy int

const (
	WonByUnknown WonBy = 0
	WonByRuns    WonBy = 1
	WonByWickets WonBy = 2
)

func (w WonBy) String() string {
	switch w {
	case WonByRuns:
		return "Runs"
	case WonByWickets:
		return "Wickets"
	default:
		return "Unknown"
	}
}

// DismissalKind is the manner in which a batsman was out on a delivery.
type DismissalKind int

const (
	NotOut              DismissalKind = 0
	Bowled              DismissalKind = 1
	Caught              DismissalKind = 2
	CaughtAndBowled     DismissalKind = 3
	LBW                 DismissalKind = 4
	RunOut              DismissalKind = 5
	Stumped             DismissalKind = 6
	HitWicket           DismissalKind = 7
	ObstructingTheField DismissalKind = 8
	RetiredHurt         DismissalKind = 9
)

// dismissalVocab maps the source-file dismissal text (lowered) to its kind.
var dismissalVocab = map[string]DismissalKind{
	"bowled":                Bowled,
	"caught":                Caught,
	"caught and bowled":     CaughtAndBowled,
	"lbw":                   LBW,
	"run out":               RunOut,
	"stumped":               Stumped,
	"hit wicket":            HitWicket,
	"obstructing the field": ObstructingTheField,
	"retired hurt":          RetiredHurt,
}

var dismissalNames = map[DismissalKind]string{
	NotOut:              "Not Out",
	Bowled:              "Bowled",
	Caught:              "Caught",
	CaughtAndBowled:     "Caught and Bowled",
	LBW:                 "LBW",
	RunOut:              "Run Out",
	Stumped:             "Stumped",
	HitWicket:           "Hit Wicket",
	ObstructingTheField: "Obstructing The Field",
	RetiredHurt:         "Retired Hurt",
}

func (k DismissalKind) String() string {
	if s, ok := dismissalNames[k]; ok {
		return s
	}
	return "Not Out"
}

// IsWicket reports whether the dismissal takes a wicket (anything but NotOut).
func (k DismissalKind) IsWicket() bool {
	return k != NotOut
}

// ParseDismissalKind resolves source text case-insensitively. Missing or
// unrecognized text defaults to NotOut rather than erroring.
func ParseDismissalKind(s string) DismissalKind {
	if k, ok := dismissalVocab[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k
	}
	return NotOut
}

// ---- Master entities (created once per import, never updated) ----

type Season struct {
	ID   int64
	Year int
}

type City struct {
	ID   int64
	Name string
}

// Venue is unique by (city, name); the same stadium name in two cities is
// two distinct venues.
type Venue struct {
	ID     int64
	CityID int64
	Name   string
}

type Team struct {
	ID   int64
	Name string
}

type Umpire struct {
	ID   int64
	Name string
}

type Player struct {
	ID   int64
	Name string
}

// Match is one fixture of a season. Optional references use 0 as "not set";
// the storage layer maps 0 to SQL NULL.
type Match struct {
	ID       int64
	SourceID int64 // id column of the source file, correlates deliveries during import
	SeasonID int64
	VenueID  int64
	Date     string

	Team1ID      int64
	Team2ID      int64
	TossWinnerID int64
	TossDecision TossDecision
	Result       MatchResult
	DLApplied    int
	WinnerID     int64 // 0 when the match had no winner
	WonBy        WonBy
	WinMargin    int   // runs or wickets depending on WonBy, 0 for unknown
	ManOfMatchID int64 // 0 when no award recorded

	Umpire1ID int64
	Umpire2ID int64
	Umpire3ID int64
}

// Delivery is a single ball faced within a match inning.
type Delivery struct {
	ID      int64
	MatchID int64
	Inning  int
	Over    int
	Ball    int

	BattingTeamID int64
	BowlingTeamID int64
	BatsmanID     int64
	BowlerID      int64
	NonStrikerID  int64

	IsSuperOver bool

	WideRuns    int
	ByeRuns     int
	LegByeRuns  int
	NoBallRuns  int
	PenaltyRuns int
	BatsmanRuns int
	ExtraRuns   int

	DismissalKind DismissalKind
	DismissedID   int64 // 0 when nobody was dismissed
	FielderID     int64 // 0 when no fielder involved
}

// ---- Statistic result rows ----

// TeamCount is a (team, match count) grouping row.
type TeamCount struct {
	Team  string `json:"team"`
	Count int    `json:"count"`
}

// PlayerCount is a (player, award count) grouping row.
type PlayerCount struct {
	Player string `json:"player"`
	Count  int    `json:"count"`
}

// VenueCount is a (venue, match count) grouping row.
type VenueCount struct {
	Venue string `json:"venue"`
	Count int    `json:"count"`
}

// VenueTeamCount is a (venue, winning team, win count) grouping row.
type VenueTeamCount struct {
	Venue string `json:"venue"`
	Team  string `json:"team"`
	Count int    `json:"count"`
}

// WinMargin is a (winning team, margin) row for margin-maximum statistics.
type WinMargin struct {
	Team   string `json:"team"`
	Margin int    `json:"margin"`
}

// BatFirst carries the bat-first toss-decision percentage for a season.
type BatFirst struct {
	PercentTeamDecidedBatFirst float64 `json:"percent_team_decided_bat_first"`
}

// SeasonSummary is a per-season row for the list command.
type SeasonSummary struct {
	Year       int
	Matches    int
	Deliveries int
}

// Overview holds database-wide entity counts for the summary command.
type Overview struct {
	Seasons    int
	Cities     int
	Venues     int
	Teams      int
	Umpires    int
	Players    int
	Matches    int
	Deliveries int
}
