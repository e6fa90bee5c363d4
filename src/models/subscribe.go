package models

// -----------------------------------------------------------------------------
// SubscribeCommand for websocket client messages
// -----------------------------------------------------------------------------

type MSubscribeCommand struct {
	Command string   `json:"command"`
	Models  []string `json:"models"` // substring filters, empty = everything
}
