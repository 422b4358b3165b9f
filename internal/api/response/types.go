package response

import (
	"time"

	"github.com/mcoot/dartscore-go/internal/model"
)

// Player represents a player in API responses
type Player struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Score           int    `json:"score"`
	IsCurrentPlayer bool   `json:"is_current_player"`
	DartsThrown     int    `json:"darts_thrown"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p model.Player) Player {
	return Player{
		ID:              string(p.ID),
		Name:            p.Name,
		Score:           p.Score,
		IsCurrentPlayer: p.IsCurrentPlayer,
		DartsThrown:     p.DartsThrown,
	}
}

// Hit is a scored board result
type Hit struct {
	Sector     int    `json:"sector"`
	Multiplier string `json:"multiplier"`
	Points     int    `json:"points"`
	Label      string `json:"label"`
}

// HitFromModel converts a model.Hit
func HitFromModel(h model.Hit) Hit {
	return Hit{
		Sector:     h.Sector,
		Multiplier: string(h.Multiplier),
		Points:     h.Points,
		Label:      h.Label(),
	}
}

// Throw represents a logged dart
type Throw struct {
	ID         string    `json:"id"`
	PlayerID   string    `json:"player_id"`
	Sector     int       `json:"sector"`
	Multiplier string    `json:"multiplier"`
	Points     int       `json:"points"`
	Label      string    `json:"label"`
	Applied    bool      `json:"applied"`
	Timestamp  time.Time `json:"timestamp"`
}

// ThrowFromModel converts a model.Throw
func ThrowFromModel(t model.Throw) Throw {
	return Throw{
		ID:         string(t.ID),
		PlayerID:   string(t.PlayerID),
		Sector:     t.Sector,
		Multiplier: string(t.Multiplier),
		Points:     t.Points,
		Label:      t.Hit().Label(),
		Applied:    t.Applied,
		Timestamp:  t.Timestamp,
	}
}

// Turn represents a completed turn
type Turn struct {
	ID          string    `json:"id"`
	PlayerID    string    `json:"player_id"`
	PlayerName  string    `json:"player_name"`
	Throws      []Throw   `json:"throws"`
	TotalPoints int       `json:"total_points"`
	TurnNumber  int       `json:"turn_number"`
	Timestamp   time.Time `json:"timestamp"`
}

// TurnFromModel converts a model.Turn
func TurnFromModel(t model.Turn) Turn {
	throws := make([]Throw, len(t.Throws))
	for i, th := range t.Throws {
		throws[i] = ThrowFromModel(th)
	}
	return Turn{
		ID:          t.ID,
		PlayerID:    string(t.PlayerID),
		PlayerName:  t.PlayerName,
		Throws:      throws,
		TotalPoints: t.TotalPoints,
		TurnNumber:  t.TurnNumber,
		Timestamp:   t.Timestamp,
	}
}

// Game is the full game snapshot. The live feeds push the same shape.
type Game struct {
	ID                 string    `json:"id"`
	Players            []Player  `json:"players"`
	CurrentPlayerIndex int       `json:"current_player_index"`
	Throws             []Throw   `json:"throws"`
	Turns              []Turn    `json:"turns"`
	GameType           string    `json:"game_type"`
	Phase              string    `json:"phase"`
	IsFinished         bool      `json:"is_finished"`
	Winner             *string   `json:"winner"`
	StartingScore      int       `json:"starting_score"`
	DoubleOut          bool      `json:"double_out"`
	TotalTurns         int       `json:"total_turns"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// GameFromModel converts a model.GameState
func GameFromModel(g *model.GameState) Game {
	players := make([]Player, len(g.Players))
	for i, p := range g.Players {
		players[i] = PlayerFromModel(p)
	}
	throws := make([]Throw, len(g.Throws))
	for i, t := range g.Throws {
		throws[i] = ThrowFromModel(t)
	}
	turns := make([]Turn, len(g.Turns))
	for i, t := range g.Turns {
		turns[i] = TurnFromModel(t)
	}

	var winner *string
	if g.Winner != "" {
		w := string(g.Winner)
		winner = &w
	}

	return Game{
		ID:                 string(g.ID),
		Players:            players,
		CurrentPlayerIndex: g.CurrentPlayerIndex,
		Throws:             throws,
		Turns:              turns,
		GameType:           string(g.GameType),
		Phase:              string(g.Phase()),
		IsFinished:         g.IsFinished,
		Winner:             winner,
		StartingScore:      g.StartingScore,
		DoubleOut:          g.DoubleOut,
		TotalTurns:         g.TotalTurns,
		CreatedAt:          g.CreatedAt,
		UpdatedAt:          g.UpdatedAt,
	}
}

// GameInfo is a game listing entry
type GameInfo struct {
	ID          string    `json:"id"`
	PlayerCount int       `json:"player_count"`
	Phase       string    `json:"phase"`
	Winner      string    `json:"winner,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GameList is the response for listing games
type GameList struct {
	Games []GameInfo `json:"games"`
}

// GameListFromModel converts listing entries
func GameListFromModel(infos []model.GameInfo) GameList {
	games := make([]GameInfo, len(infos))
	for i, info := range infos {
		games[i] = GameInfo{
			ID:          string(info.ID),
			PlayerCount: info.PlayerCount,
			Phase:       string(info.Phase),
			Winner:      string(info.Winner),
			UpdatedAt:   info.UpdatedAt,
		}
	}
	return GameList{Games: games}
}

// Resolution is the response for resolving a board position
type Resolution struct {
	OnBoard bool `json:"on_board"`
	Hit     *Hit `json:"hit,omitempty"`
}

// BotDart describes a bot throw
type BotDart struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	OnBoard  bool    `json:"on_board"`
	Hit      Hit     `json:"hit"`
	Strategy string  `json:"strategy"`
}

// BotThrowResponse is the response for a bot throw
type BotThrowResponse struct {
	Darts []BotDart `json:"darts"`
	Game  Game      `json:"game"`
}

// StatisticsHistory is the response for the exported statistics list
type StatisticsHistory struct {
	Games []model.GameStatistics `json:"games"`
}

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}
