package game

import "slices"

// Settings is the host's pre-game configuration.
type Settings struct {
	TeamNames    [2]string
	PlayerCount  int
	TimerSeconds [NumRounds]int
}

// DefaultSettings returns two generic teams, four players and one minute per
// turn in every round.
func DefaultSettings() Settings {
	return Settings{
		TeamNames:    [2]string{"Team A", "Team B"},
		PlayerCount:  4,
		TimerSeconds: [NumRounds]int{DefaultTimerSeconds, DefaultTimerSeconds, DefaultTimerSeconds},
	}
}

// State is a complete snapshot of a game. The engine never mutates a State it
// has returned; every transition builds a new one.
type State struct {
	Screen Screen `json:"screen"`

	Teams        [2]Team        `json:"teams"`
	PlayerCount  int            `json:"playerCount"`
	TimerSeconds [NumRounds]int `json:"timerSeconds"`

	EntryIndex         int    `json:"entryIndex"`
	StartingTeamRound1 TeamID `json:"startingTeamRound1,omitempty"`

	Players []Player `json:"players"`
	Items   []Item   `json:"items"`

	// CurrentRound is 0 before round 1 starts.
	CurrentRound          int               `json:"currentRound"`
	CurrentTeamTurn       TeamID            `json:"currentTeamTurn,omitempty"`
	RoundStartTeam        [NumRounds]TeamID `json:"roundStartTeam"`
	RoundFinisherTeam     [NumRounds]TeamID `json:"roundFinisherTeam"`
	CarryoverForNextRound *Carryover        `json:"carryoverForNextRound,omitempty"`
	// PendingCarryoverSeconds is 0 when no carryover applies to the next turn.
	PendingCarryoverSeconds int `json:"pendingCarryoverSecondsThisRound,omitempty"`

	// Pools is nil before a round's first turn.
	Pools *Pools `json:"roundPools,omitempty"`

	Ledger

	// TurnEndEpochMs is 0 when no turn is running.
	TurnEndEpochMs        int64 `json:"turnEndEpoch,omitempty"`
	TurnDurationSeconds   int   `json:"turnDurationSeconds"`
	TimerSecondsRemaining int   `json:"timerSecondsRemaining"`

	Events    []Event `json:"events"`
	LastError string  `json:"lastError,omitempty"`
}

// NewState returns the clean pre-game baseline for settings.
func NewState(settings Settings) State {
	s := State{
		Screen: ScreenHostSetup,
		Teams: [2]Team{
			{ID: TeamA, Name: settings.TeamNames[0]},
			{ID: TeamB, Name: settings.TeamNames[1]},
		},
		PlayerCount: clamp(settings.PlayerCount, MinPlayers, MaxPlayers),
	}
	for i, secs := range settings.TimerSeconds {
		s.TimerSeconds[i] = clamp(secs, MinTimerSeconds, MaxTimerSeconds)
	}
	return s
}

// Settings returns the setup portion of s.
func (s State) Settings() Settings {
	return Settings{
		TeamNames:    [2]string{s.Teams[0].Name, s.Teams[1].Name},
		PlayerCount:  s.PlayerCount,
		TimerSeconds: s.TimerSeconds,
	}
}

// InProgress reports whether s holds a game worth saving: one that has
// players or a running round and has not reached the final screen.
func (s State) InProgress() bool {
	if s.Screen == ScreenFinal {
		return false
	}
	return s.CurrentRound != 0 || len(s.Players) > 0 || len(s.Items) > 0
}

// Team returns the team with id t.
func (s State) Team(t TeamID) Team {
	return s.Teams[t.index()]
}

// Item returns the item with the given id.
func (s State) Item(id string) (Item, bool) {
	i := slices.IndexFunc(s.Items, func(it Item) bool { return it.ID == id })
	if i < 0 {
		return Item{}, false
	}
	return s.Items[i], true
}

// CurrentItem returns the item being presented, if any.
func (s State) CurrentItem() (Item, bool) {
	if s.Pools == nil || s.Pools.Current == "" {
		return Item{}, false
	}
	return s.Item(s.Pools.Current)
}

// Totals sums every round's scores.
func (s State) Totals() TeamScores {
	return s.Scores.Total()
}

// Winner returns the team with the strictly higher total. tie is true when
// the totals are equal.
func (s State) Winner() (winner TeamID, tie bool) {
	total := s.Totals()
	switch {
	case total.A > total.B:
		return TeamA, false
	case total.B > total.A:
		return TeamB, false
	default:
		return "", true
	}
}

// roundDefaultSeconds returns the configured turn length for round r.
func (s State) roundDefaultSeconds(r int) int {
	if r < 1 || r > NumRounds {
		return DefaultTimerSeconds
	}
	return s.TimerSeconds[r-1]
}

func (s State) itemIDs() []string {
	ids := make([]string, len(s.Items))
	for i, it := range s.Items {
		ids[i] = it.ID
	}
	return ids
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
