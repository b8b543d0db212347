package entities

import "strings"

// SessionTokenSeparator joins the user id and the bearer token. It is sent
// percent-encoded on purpose and the API client splits on it verbatim.
const SessionTokenSeparator = "%3A%3A"

// SessionToken is the cookie value the usage API expects: <user_id>%3A%3A<bearer>.
type SessionToken string

// NewSessionToken builds a token from a user id and the raw access token.
func NewSessionToken(userID, bearer string) SessionToken {
	return SessionToken(userID + SessionTokenSeparator + bearer)
}

// UserID returns everything before the first separator.
func (t SessionToken) UserID() string {
	userID, _, _ := strings.Cut(string(t), SessionTokenSeparator)
	return userID
}

func (t SessionToken) String() string {
	return string(t)
}
