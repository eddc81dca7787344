package routes

import "net/http"

// Register adds all routes from the provided groups to the mux under basePath.
// Method patterns follow ServeMux syntax: "GET /images/{id}".
func Register(mux *http.ServeMux, basePath string, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, basePath, group, nil)
	}
}

func registerGroup(mux *http.ServeMux, basePath string, group Group, inherited []Middleware) {
	middleware := append(inherited, group.Middleware...)

	for _, route := range group.Routes {
		pattern := route.Method + " " + basePath + group.Prefix + route.Pattern
		mux.Handle(pattern, wrap(route.Handler, middleware))
	}

	for _, child := range group.Children {
		child.Prefix = group.Prefix + child.Prefix
		registerGroup(mux, basePath, child, middleware)
	}
}

func wrap(handler http.Handler, middleware []Middleware) http.Handler {
	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler)
	}
	return handler
}
