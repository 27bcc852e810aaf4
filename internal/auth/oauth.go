package auth

import (
	"fmt"

	"golang.org/x/oauth2"

	"longevity/internal/config"
)

// Strava OAuth endpoints
const (
	authURL  = "https://www.strava.com/oauth/authorize"
	tokenURL = "https://www.strava.com/oauth/token"
)

// CallbackPort is where the local callback server listens during the
// interactive flow.
const CallbackPort = 8089

// Strava expects comma-separated scopes in a single value
var scopes = []string{"read,activity:read_all"}

// NewOAuthConfig builds the oauth2 client config from app credentials
func NewOAuthConfig(cfg config.StravaConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  authURL,
			TokenURL: tokenURL,
		},
		RedirectURL: fmt.Sprintf("http://localhost:%d/callback", CallbackPort),
		Scopes:      scopes,
	}
}

// Result is the outcome of a completed interactive flow
type Result struct {
	Token     *oauth2.Token
	AthleteID int64
}

// athleteID pulls the athlete ID out of the token extras. Strava embeds
// a summary athlete object in its token response.
func athleteID(token *oauth2.Token) int64 {
	athlete, ok := token.Extra("athlete").(map[string]interface{})
	if !ok {
		return 0
	}
	id, ok := athlete["id"].(float64)
	if !ok {
		return 0
	}
	return int64(id)
}
