// Package handlers provides the HTTP handlers for the conduit API
// (users and authentication) and the general infrastructure handlers
// (health, version, docs).
package handlers
