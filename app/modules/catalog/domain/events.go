package catalogdomain

import "time"

// GamePlayedV1 is published every time a client reports a play.
const GamePlayedV1 = "arcade.game.played.v1"

// GamePlayedPayloadV1 describes one play of a game. It is only ever logged.
type GamePlayedPayloadV1 struct {
	GameID   GameID    `json:"gameId"`
	GameName string    `json:"gameName"`
	PlayedAt time.Time `json:"playedAt"`
}
