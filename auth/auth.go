// Package auth builds the authorization header value for the two
// credential schemes the database accepts. It is deliberately mechanical
// and out of scope for the connection pool itself; callers wire its
// output in via Dispatcher.SetHeader("authorization", ...).
package auth

import (
	"encoding/base64"
	"fmt"
)

// Basic returns the "Basic" authorization header value for username and
// password.
func Basic(username, password string) string {
	raw := username + ":" + password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
}

// Bearer returns the "Bearer" authorization header value for a JWT token.
func Bearer(token string) string {
	return fmt.Sprintf("Bearer %s", token)
}
