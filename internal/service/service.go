// Package service holds the forum's business rules between the HTTP handlers and the repositories.
package service

import "forum/internal/models"

func requireAuth(caller models.Caller) error {
	if !caller.Authenticated() {
		return models.NewUnauthorizedError("Authentication credentials were not provided.")
	}
	return nil
}

// pick returns *p when set and fallback otherwise.
func pick[T any](p *T, fallback T) T {
	if p != nil {
		return *p
	}
	return fallback
}
