package models

// SendMessageRequest is the anonymous intake payload
type SendMessageRequest struct {
	Username string `json:"username"`
	Content  string `json:"content"`
}

// AcceptMessagesRequest toggles the acceptance flag. A pointer so a missing
// field can be told apart from false.
type AcceptMessagesRequest struct {
	AcceptMessages *bool `json:"acceptMessages"`
}

// SignUpRequest defines the structure for registration requests
type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyCodeRequest confirms the emailed verification code
type VerifyCodeRequest struct {
	Username string `json:"username"`
	Code     string `json:"code"`
}

// SignInRequest accepts either the email or the username as identifier
type SignInRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}
