// Package server wires and runs the bot's HTTP admin server.
//
// It provides orchestration for the server lifecycle, including startup,
// signal handling, and graceful shutdown.
package server
