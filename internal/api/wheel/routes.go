package wheel

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Register mounts the wheel endpoints on r. Creating and deleting wheels goes
// through operator.
func Register(r chi.Router, h *Handler, operator func(http.Handler) http.Handler) {
	r.Get("/presets", h.Presets)

	r.Route("/wheels", func(rr chi.Router) {
		rr.With(operator).Post("/", h.Create)
		rr.With(operator).Post("/preset/{name}", h.CreateFromPreset)

		rr.Route("/{id}", func(wr chi.Router) {
			wr.Get("/", h.Get)
			wr.With(operator).Delete("/", h.Delete)
			wr.Post("/spin", h.Spin)
			wr.Get("/result", h.Result)
			wr.Post("/reset", h.Reset)
			wr.Get("/events", h.Events)
			wr.Get("/image.png", h.Image)
			wr.Get("/qr.png", h.QR)
		})
	})
}
