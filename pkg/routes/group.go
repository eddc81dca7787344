// Package routes organizes HTTP endpoints into groups registered on a ServeMux.
package routes

import "net/http"

// Middleware wraps an http.Handler with cross-cutting behavior.
type Middleware func(http.Handler) http.Handler

// Route binds one method-and-pattern endpoint to its handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group represents a collection of routes under a common URL prefix.
// Group middleware wraps every route in the group and its children.
type Group struct {
	Prefix      string
	Description string
	Middleware  []Middleware
	Routes      []Route
	Children    []Group
}
