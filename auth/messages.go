package auth

// Code identifies an authentication failure.
type Code string

const (
	CodeWrongPassword Code = "wrong-password"
	CodeUserNotFound  Code = "user-not-found"
	CodeEmailInUse    Code = "email-already-in-use"
	CodeWeakPassword  Code = "weak-password"
	CodeInvalidEmail  Code = "invalid-email"
	CodeUserDisabled  Code = "user-disabled"
	CodePopupClosed   Code = "popup-closed-by-user"
	CodePopupBlocked  Code = "popup-blocked"
	CodeNetwork       Code = "network-request-failed"
	CodeInvalidToken  Code = "invalid-token"
)

// Error is an identity-provider failure carrying a stable code.
type Error struct {
	Code Code
}

func (e *Error) Error() string {
	return string(e.Code)
}

var messages = map[Code]string{
	CodeWrongPassword: "Incorrect password. Please try again.",
	CodeUserNotFound:  "No account found for that email.",
	CodeEmailInUse:    "An account with that email already exists.",
	CodeWeakPassword:  "Password is too weak. Use at least 6 characters.",
	CodeInvalidEmail:  "That email address is not valid.",
	CodeUserDisabled:  "This account has been disabled.",
	CodePopupClosed:   "Sign-in popup was closed before completing.",
	CodePopupBlocked:  "Sign-in popup was blocked by the browser.",
	CodeNetwork:       "Network error. Check your connection and try again.",
	CodeInvalidToken:  "Your session has expired. Please sign in again.",
}

const fallbackMessage = "Something went wrong. Please try again."

// Translate maps an identity-provider error onto its user-facing message.
// Unrecognized errors get the fixed fallback.
func Translate(err error) string {
	if e, ok := err.(*Error); ok {
		if msg, ok := messages[e.Code]; ok {
			return msg
		}
	}
	return fallbackMessage
}
