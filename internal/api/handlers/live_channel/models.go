package live_channel

// InboundMessage сообщение, которое участник отправляет в канал
type InboundMessage struct {
	Text string `json:"text"`
}

// ErrorFrame ответ отправителю на отклонённое сообщение
type ErrorFrame struct {
	Type    string `json:"type"` // всегда "error"
	Message string `json:"message"`
}
