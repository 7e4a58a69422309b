package service

import "errors"

var (
	ErrSyncInProgress       = errors.New("sync already in progress")
	ErrChannelNotConfigured = errors.New("channel is not configured")
)
