package models

// APIResponse is the envelope shared by every endpoint. Optional members are
// omitted when empty so each route only exposes the fields it documents.
type APIResponse struct {
	Success             bool         `json:"success"`
	Message             string       `json:"message,omitempty"`
	IsAcceptingMessages *bool        `json:"isAcceptingMessages,omitempty"`
	Messages            []Message    `json:"messages,omitempty"`
	UpdatedUser         *User        `json:"updatedUser,omitempty"`
	Suggestions         []string     `json:"suggestions,omitempty"`
	Token               string       `json:"token,omitempty"`
	User                *SessionUser `json:"user,omitempty"`
}

// MessagesResponse is returned by GET /get-messages. messages is always
// present, an empty inbox serializes as [].
type MessagesResponse struct {
	Success  bool      `json:"success"`
	Messages []Message `json:"messages"`
}

// SessionUser is the public projection of the signed-in account
type SessionUser struct {
	ID                  string `json:"_id"`
	Username            string `json:"username"`
	IsVerified          bool   `json:"isVerified"`
	IsAcceptingMessages bool   `json:"isAcceptingMessages"`
}
