package main

import "encoding/json"

// Client -> Server message types
const (
	MsgStart  = "start"  // begin a run
	MsgInput  = "input"  // lane steering
	MsgPause  = "pause"
	MsgResume = "resume"
	MsgMenu   = "menu"   // abandon run, back to menu
	MsgScores = "scores" // request leaderboard
)

// Server -> Client message types
const (
	MsgState    = "state"
	MsgWelcome  = "welcome"
	MsgGameOver = "game_over"
	MsgTop      = "top"
	MsgError    = "error"
)

// Envelope wraps all outgoing messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages — json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// ClientInput carries one steering message
type ClientInput struct {
	Left  bool `json:"l"` // move one lane left
	Right bool `json:"r"` // move one lane right
}

// CarState is broadcast per car each state frame
type CarState struct {
	X    float64 `json:"x" msgpack:"x"`
	Y    float64 `json:"y" msgpack:"y"`
	Lane int     `json:"ln" msgpack:"ln"`
}

// PowerUpState is broadcast per falling pickup
type PowerUpState struct {
	X    float64 `json:"x" msgpack:"x"`
	Y    float64 `json:"y" msgpack:"y"`
	Type int     `json:"pt" msgpack:"pt"`
}

// EffectState is broadcast per running timed effect
type EffectState struct {
	Type      int    `json:"pt" msgpack:"pt"`
	TicksLeft uint64 `json:"tl" msgpack:"tl"`
}

// GameState is the full state broadcast, sent as a msgpack binary frame
type GameState struct {
	Tick       uint64         `json:"tick" msgpack:"tick"`
	Phase      string         `json:"ph" msgpack:"ph"`
	Player     CarState       `json:"p" msgpack:"p"`
	Traffic    []CarState     `json:"tr" msgpack:"tr"`
	PowerUps   []PowerUpState `json:"pu" msgpack:"pu"`
	Effects    []EffectState  `json:"fx" msgpack:"fx"`
	Score      int            `json:"sc" msgpack:"sc"`
	Best       int            `json:"hi" msgpack:"hi"`
	Lives      int            `json:"lv" msgpack:"lv"`
	Level      int            `json:"lvl" msgpack:"lvl"`
	Streak     int            `json:"st" msgpack:"st"`
	Invincible bool           `json:"inv" msgpack:"inv"`
}

// WelcomeMsg is sent when a game is attached to the connection
type WelcomeMsg struct {
	GameID string `json:"gid"`
	Lanes  int    `json:"lanes"`
	Best   int    `json:"hi"`
}

// GameOverMsg is sent when the run ends
type GameOverMsg struct {
	Score     int   `json:"sc"`
	Best      int   `json:"hi"`
	MaxStreak int   `json:"mst"`
	Level     int   `json:"lvl"`
	Top       []int `json:"top"`
}

// TopScoresMsg is the leaderboard response
type TopScoresMsg struct {
	Top []int `json:"top"`
}

// ErrorMsg sends error to client
type ErrorMsg struct {
	Msg string `json:"msg"`
}
