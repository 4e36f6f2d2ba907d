// Package validation holds the request schemas. Every function is pure: raw
// input in, field-level errors out, no I/O.
package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/ArowuTest/mystery-message-backend/internal/apperrors"
	"github.com/ArowuTest/mystery-message-backend/internal/models"
	"github.com/go-playground/validator/v10"
)

const (
	MinContentLength  = 10
	MaxContentLength  = 300
	MinUsernameLength = 2
	MaxUsernameLength = 20
	MinPasswordLength = 6
	VerifyCodeLength  = 6
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return v
}

type messageSchema struct {
	Content string `json:"content" validate:"min=10,max=300"`
}

type usernameSchema struct {
	Username string `json:"username" validate:"min=2,max=20,username"`
}

type signUpSchema struct {
	Username string `json:"username" validate:"min=2,max=20,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6"`
}

type verifySchema struct {
	Username string `json:"username" validate:"required"`
	Code     string `json:"code" validate:"len=6,numeric"`
}

type signInSchema struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type sendMessageSchema struct {
	Username string `json:"username" validate:"required"`
	Content  string `json:"content" validate:"min=10,max=300"`
}

type acceptSchema struct {
	AcceptMessages *bool `json:"acceptMessages" validate:"required"`
}

// messages keyed by "<field>.<tag>"
var fieldMessages = map[string]string{
	"content.min":             "Content must be at least 10 characters",
	"content.max":             "Content cannot be more than 300 characters",
	"username.required":       "Username is required",
	"username.min":            "Username must be at least 2 characters",
	"username.max":            "Username must not be more than 20 characters",
	"username.username":       "Username must not contain special characters",
	"email.required":          "Email is required",
	"email.email":             "Invalid email address",
	"password.min":            "Password must be at least 6 characters",
	"password.required":       "Password is required",
	"code.len":                "Verification code must be 6 digits",
	"code.numeric":            "Verification code must be 6 digits",
	"identifier.required":     "Email or username is required",
	"acceptMessages.required": "acceptMessages must be a boolean",
}

// Message validates message content length.
func Message(content string) []apperrors.FieldError {
	return check(messageSchema{Content: content})
}

// Username validates a username on its own, as used by the uniqueness check.
func Username(username string) []apperrors.FieldError {
	return check(usernameSchema{Username: username})
}

// SignUp validates the account schema.
func SignUp(req models.SignUpRequest) []apperrors.FieldError {
	return check(signUpSchema{Username: req.Username, Email: req.Email, Password: req.Password})
}

func VerifyCode(req models.VerifyCodeRequest) []apperrors.FieldError {
	return check(verifySchema{Username: req.Username, Code: req.Code})
}

func SignIn(req models.SignInRequest) []apperrors.FieldError {
	return check(signInSchema{Identifier: req.Identifier, Password: req.Password})
}

func SendMessage(req models.SendMessageRequest) []apperrors.FieldError {
	return check(sendMessageSchema{Username: req.Username, Content: req.Content})
}

func AcceptMessages(req models.AcceptMessagesRequest) []apperrors.FieldError {
	return check(acceptSchema{AcceptMessages: req.AcceptMessages})
}

// AsError wraps field errors in a ValidationFailed error, or returns nil.
func AsError(fields []apperrors.FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return apperrors.Validation("", fields...)
}

func check(schema interface{}) []apperrors.FieldError {
	err := validate.Struct(schema)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []apperrors.FieldError{{Field: "", Message: err.Error()}}
	}
	out := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		out = append(out, apperrors.FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}
