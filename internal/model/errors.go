package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrWorldNotFound  = errors.New("world not found")

	// Ban errors
	ErrBanNotFound = errors.New("ban not found")
	ErrInvalidDays = errors.New("ban duration must be a whole number of days")

	// Teleport errors
	ErrSelfTeleport     = errors.New("cannot request a teleport to yourself")
	ErrNoPendingRequest = errors.New("no pending teleport request")
	ErrRequestExpired   = errors.New("teleport request expired")
	ErrRequesterOffline = errors.New("requesting player is offline")

	// Spawn errors
	ErrInvalidLocation = errors.New("location has no world")
)
