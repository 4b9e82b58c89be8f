package domain

// Role identifies who produced a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Turn is one message in a user's conversation history.
type Turn struct {
	UserID  string
	Role    Role
	Content string
}
