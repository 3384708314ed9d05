package message

type SendMessageRequest struct {
	SenderName string `json:"sender_name"`
	Content    string `json:"content" binding:"required"`
}
