package config

import "time"

// UI colors
const (
	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	WarningColor = 0xFFAA00
	GoldColor    = 0xFFD700
	PurpleColor  = 0x9B59B6
)

// Timeouts and intervals
const (
	CommandTimeout          = 5 * time.Second
	CommandExecutionTimeout = 10 * time.Second
	VoiceTickInterval       = time.Minute
	ResetConfirmWindow      = 30 * time.Second
	ShutdownTimeout         = 10 * time.Second
)

// Command cooldowns mirror the original prefix-command limits.
const (
	ProfileCooldown     = 2 * time.Second
	ShopCooldown        = 2 * time.Second
	BuyCooldown         = 2 * time.Second
	LeaderboardCooldown = 5 * time.Second
)

// LeaderboardSize is the number of entries shown by the ranking command.
const LeaderboardSize = 5
