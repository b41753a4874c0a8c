// Package control receives pointer and widget events from the overlay renderer.
package control

// Message types sent by the renderer.
const (
	MsgDown         = "down"
	MsgMove         = "move"
	MsgUp           = "up"
	MsgCancel       = "cancel"
	MsgExpansion    = "expansion"
	MsgClickThrough = "clickThrough"
	MsgToggleHub    = "toggleHub"
	MsgInputEnabled = "inputEnabled"
)

// DotID targets the launcher dot in down messages. An empty id also means the dot.
const DotID = "dot"

// Message is a control websocket payload.
type Message struct {
	T       string  `json:"t"`
	ID      string  `json:"id,omitempty"`
	LX      float64 `json:"lx,omitempty"`
	LY      float64 `json:"ly,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	TS      int64   `json:"ts,omitempty"`
	Enabled *bool   `json:"enabled,omitempty"`
}
