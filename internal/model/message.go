package model

import "strings"

// InboundMessage is the webhook envelope delivered by the WhatsApp
// bridge for a single chat message.
type InboundMessage struct {
	From        string `json:"from" binding:"required"`
	Body        string `json:"body" binding:"required"`
	To          string `json:"to"`
	ContactName string `json:"contactName"`
	IsGroupMsg  bool   `json:"isGroupMsg"`
}

// IsGroup reports whether the message came from a group chat, either by
// flag or by the group-style address suffix.
func (m *InboundMessage) IsGroup() bool {
	return m.IsGroupMsg || strings.Contains(m.From, "@g.us")
}

// SenderPhone strips the chat-address suffixes off the sender.
func (m *InboundMessage) SenderPhone() string {
	phone := strings.ReplaceAll(m.From, "@c.us", "")
	return strings.ReplaceAll(phone, "@g.us", "")
}

// Reply is the webhook response; a nil reply means "say nothing".
type Reply struct {
	Reply *string `json:"reply"`
}
