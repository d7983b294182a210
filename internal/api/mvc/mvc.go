// Package mvc implements the default controller/action route of the back
// office: `/{controller}/{action}/{id}` with Home/Index as defaults. It is a
// thin dispatch table over named actions rather than a full MVC framework.
package mvc

import (
	"backoffice/pkg/logger"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const (
	// DefaultController handles requests to the root path.
	DefaultController = "home"
	// DefaultAction handles requests naming a controller without an action.
	DefaultAction = "index"
)

// Action handles one controller action. id is the optional trailing path
// segment and may be empty.
type Action func(w http.ResponseWriter, r *http.Request, id string)

// Controller maps action names (lowercase) to their handlers.
type Controller map[string]Action

// Router dispatches requests to registered controllers.
type Router struct {
	controllers map[string]Controller
}

// NewRouter returns an empty Router.
func NewRouter() *Router {
	return &Router{controllers: make(map[string]Controller)}
}

// Register adds a controller under the given name. Names are matched
// case-insensitively.
func (rt *Router) Register(name string, c Controller) {
	rt.controllers[strings.ToLower(name)] = c
}

// ServeHTTP resolves `/{controller}/{action}/{id}` against the registered
// controllers, defaulting to Home/Index, and answers 404 for unknown
// controllers or actions.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	controller, action, id := splitRoute(r.URL.Path)

	c, ok := rt.controllers[controller]
	if !ok {
		rt.notFound(w, r)

		return
	}

	act, ok := c[action]
	if !ok {
		rt.notFound(w, r)

		return
	}

	act(w, r, id)
}

// splitRoute breaks a path into controller, action and id segments, applying
// the Home/Index defaults for missing segments.
func splitRoute(path string) (controller, action, id string) {
	controller = DefaultController
	action = DefaultAction

	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) > 0 && parts[0] != "" {
		controller = strings.ToLower(parts[0])
	}
	if len(parts) > 1 && parts[1] != "" {
		action = strings.ToLower(parts[1])
	}
	if len(parts) > 2 {
		id = parts[2]
	}

	return controller, action, id
}

func (rt *Router) notFound(w http.ResponseWriter, r *http.Request) {
	logger.Debug(r.Context(), "no route matched", zap.String("path", r.URL.Path))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"code":"NOT_FOUND","message":"no such route"}`))
}
