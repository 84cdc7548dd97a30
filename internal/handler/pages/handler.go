// Package pages serves the pre-built HTML shells for the browser views.
package pages

import (
	"path/filepath"

	"github.com/gin-gonic/gin"
)

var views = map[string]string{
	"/":             "index.html",
	"/patients":     "patients.html",
	"/appointments": "appointments.html",
}

type Handler struct {
	dir string
}

func NewHandler(dir string) *Handler {
	return &Handler{dir: dir}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	for path, file := range views {
		r.GET(path, h.serve(file))
	}
	r.StaticFS("/static", gin.Dir(filepath.Join(h.dir, "static"), false))
}

func (h *Handler) serve(file string) gin.HandlerFunc {
	full := filepath.Join(h.dir, file)
	return func(c *gin.Context) {
		c.File(full)
	}
}
