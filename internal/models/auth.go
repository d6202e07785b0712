package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the JWT payload for a workflow session token. It binds
// the requester identity established by the LMS sign-in to one workflow
// instance.
type SessionClaims struct {
	UserID     string `json:"user_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	UniqueName string `json:"unique_name"`
	WorkflowID string `json:"workflow_id"`
	jwt.RegisteredClaims
}

// Requester maps the claims back to the identity value handed to the
// notification collaborator.
func (c *SessionClaims) Requester() Requester {
	return Requester{
		UserID:     c.UserID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		UniqueName: c.UniqueName,
	}
}
