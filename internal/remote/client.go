// Package remote is the client for the managed tool's account API.
// Requests are not implemented yet; every call returns ErrNotImplemented.
package remote

import (
	"context"
	"errors"
)

// ErrNotImplemented is returned by every Client method.
var ErrNotImplemented = errors.New("remote API calls are not implemented")

// User is the profile returned by the current-user endpoint.
type User struct {
	Email    string `json:"email"`
	PlanName string `json:"plan_name"`
	PlanTier string `json:"plan_tier"`
	PlanEnd  string `json:"plan_end"`
	APIKey   string `json:"api_key"`
}

// Usage is the credit usage for the current billing period.
type Usage struct {
	UsedPromptCredits int `json:"used_prompt_credits"`
	UsedFlowCredits   int `json:"used_flow_credits"`
}

// Client talks to the remote account API.
type Client struct{}

// NewClient returns a Client.
func NewClient() *Client {
	return &Client{}
}

// FetchCurrentUser returns the profile for authToken.
func (c *Client) FetchCurrentUser(ctx context.Context, authToken string) (*User, error) {
	return nil, ErrNotImplemented
}

// FetchCurrentPeriodUsage returns the usage for bearerToken.
func (c *Client) FetchCurrentPeriodUsage(ctx context.Context, bearerToken string) (*Usage, error) {
	return nil, ErrNotImplemented
}
