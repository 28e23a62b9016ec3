// Package server provides the HTTP server for the conduit API.
//
// the server is configured through environment variables
// (see internal/config/config.go for details)
//
// The package wires the handlers for
//   - common infrastructure handlers (health, readiness, version, metrics, docs)
//   - the users API (register, login, current user, update)
//   - the optional static front-end, served for any route the API does not handle
//
// middleware is in internal/server/middleware
package server
