package game

// ActionType names an action, mainly for logging.
type ActionType string

const (
	ActionSetTeamName         ActionType = "SET_TEAM_NAME"
	ActionSetPlayerCount      ActionType = "SET_PLAYER_COUNT"
	ActionSetTimerSeconds     ActionType = "SET_TIMER_SECONDS"
	ActionStartWordEntry      ActionType = "HOST_START_WORD_ENTRY"
	ActionSubmitPlayer        ActionType = "ENTRY_SUBMIT_PLAYER"
	ActionEntryContinue       ActionType = "ENTRY_CONTINUE"
	ActionStartRound1         ActionType = "READY_START_ROUND1"
	ActionTurnHandoffContinue ActionType = "TURN_HANDOFF_CONTINUE"
	ActionTurnStart           ActionType = "TURN_START"
	ActionSyncTimer           ActionType = "TURN_SYNC_TIMER"
	ActionGuessed             ActionType = "TURN_GUESSED"
	ActionPassed              ActionType = "TURN_PASSED"
	ActionUndo                ActionType = "TURN_UNDO"
	ActionTimeUpAck           ActionType = "TIME_UP_ACK"
	ActionRoundProceed        ActionType = "ROUND_PROCEED"
	ActionRestartRound        ActionType = "HOST_RESTART_ROUND"
	ActionRestartGame         ActionType = "HOST_RESTART_GAME"
)

// Action is one input to the engine.
type Action interface {
	Type() ActionType
}

// SetTeamName renames a team before the game starts.
type SetTeamName struct {
	Team TeamID
	Name string
}

// SetPlayerCount sets how many players will enter items.
type SetPlayerCount struct {
	Count int
}

// SetTimerSeconds sets the turn length of Round, or of every round when Round is 0.
type SetTimerSeconds struct {
	Round   int
	Seconds int
}

// StartWordEntry leaves host setup and opens word entry.
type StartWordEntry struct{}

// SubmitPlayer adds a player and their items to the bowl. When Team is empty
// players alternate A, B, A, ... by entry order.
type SubmitPlayer struct {
	Name  string
	Team  TeamID
	Items []string
}

// EntryContinue hands the device to the next player during word entry.
type EntryContinue struct{}

// StartRound1 begins the first round once every player has entered items.
type StartRound1 struct{}

// TurnHandoffContinue is tapped once the device reaches the next clue giver.
type TurnHandoffContinue struct{}

// StartTurn starts the clock and presents the first item.
type StartTurn struct{}

// SyncTimer recomputes the remaining time from a wall clock reading.
type SyncTimer struct {
	NowMs int64
}

// Guessed scores the presented item.
type Guessed struct{}

// Passed defers the presented item.
type Passed struct{}

// Undo reverts the last guess or pass of the running turn.
type Undo struct{}

// TimeUpAck acknowledges the end of a turn.
type TimeUpAck struct{}

// RoundProceed moves on from the round summary.
type RoundProceed struct{}

// RestartRound replays the current round from scratch.
type RestartRound struct{}

// RestartGame discards the game and returns to host setup.
type RestartGame struct{}

func (SetTeamName) Type() ActionType         { return ActionSetTeamName }
func (SetPlayerCount) Type() ActionType      { return ActionSetPlayerCount }
func (SetTimerSeconds) Type() ActionType     { return ActionSetTimerSeconds }
func (StartWordEntry) Type() ActionType      { return ActionStartWordEntry }
func (SubmitPlayer) Type() ActionType        { return ActionSubmitPlayer }
func (EntryContinue) Type() ActionType       { return ActionEntryContinue }
func (StartRound1) Type() ActionType         { return ActionStartRound1 }
func (TurnHandoffContinue) Type() ActionType { return ActionTurnHandoffContinue }
func (StartTurn) Type() ActionType           { return ActionTurnStart }
func (SyncTimer) Type() ActionType           { return ActionSyncTimer }
func (Guessed) Type() ActionType             { return ActionGuessed }
func (Passed) Type() ActionType              { return ActionPassed }
func (Undo) Type() ActionType                { return ActionUndo }
func (TimeUpAck) Type() ActionType           { return ActionTimeUpAck }
func (RoundProceed) Type() ActionType        { return ActionRoundProceed }
func (RestartRound) Type() ActionType        { return ActionRestartRound }
func (RestartGame) Type() ActionType         { return ActionRestartGame }
