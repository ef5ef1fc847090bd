package game

const (
	NumRounds      = 3
	ItemsPerPlayer = 3

	MinPlayers = 2
	MaxPlayers = 30

	MinTimerSeconds     = 5
	MaxTimerSeconds     = 300
	DefaultTimerSeconds = 60
)

// TeamID identifies one of the two teams.
type TeamID string

const (
	TeamA TeamID = "A"
	TeamB TeamID = "B"
)

// Other returns the opposing team.
func (t TeamID) Other() TeamID {
	if t == TeamA {
		return TeamB
	}
	return TeamA
}

// Valid reports whether t names one of the two teams.
func (t TeamID) Valid() bool {
	return t == TeamA || t == TeamB
}

func (t TeamID) index() int {
	if t == TeamB {
		return 1
	}
	return 0
}

// Team is a team and its display name.
type Team struct {
	ID   TeamID `json:"id"`
	Name string `json:"name"`
}

// Player is created once at word entry and never changes.
type Player struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TeamID     TeamID `json:"teamId"`
	EntryIndex int    `json:"entryIndex"`
}

// Item is a word or phrase in the bowl.
type Item struct {
	ID             string `json:"id"`
	DisplayText    string `json:"displayText"`
	NormalizedText string `json:"normalizedText"`
	OwnerPlayerID  string `json:"ownerPlayerId"`
}

// Carryover is time left on the clock when a team cleared the bowl.
type Carryover struct {
	Seconds int    `json:"seconds"`
	TeamID  TeamID `json:"teamId"`
}

// Screen is a state of the game flow.
type Screen string

const (
	ScreenHostSetup     Screen = "hostSetup"
	ScreenWordEntry     Screen = "wordEntry"
	ScreenEntryHandoff  Screen = "entryHandoff"
	ScreenReady         Screen = "ready"
	ScreenTurnHandoff   Screen = "turnHandoff"
	ScreenTurnStart     Screen = "turnStart"
	ScreenTurnActive    Screen = "turnActive"
	ScreenTimeUp        Screen = "timeUp"
	ScreenRoundComplete Screen = "roundComplete"
	ScreenFinal         Screen = "final"
)

// String returns the string representation of the screen
func (s Screen) String() string {
	return string(s)
}
