package api

import (
	"backoffice/internal/api/mvc"
	"encoding/json"
	"net/http"
	"time"
)

// homeController implements the default Home controller reached by the
// catch-all route.
func homeController(opts Options) mvc.Controller {
	return mvc.Controller{
		"index": func(w http.ResponseWriter, r *http.Request, id string) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"service":     "backoffice",
				"environment": opts.Environment,
				"timestamp":   time.Now().UTC(),
				"docs":        "/docs/",
				"health":      "/health",
			})
		},
	}
}
