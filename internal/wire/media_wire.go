package wire

import (
	"net/http"

	"event-ticketing/internal/adaptor"
	"event-ticketing/internal/data/entity"
	"event-ticketing/pkg/middleware"
	"event-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func wireMedia(r chi.Router, h *adaptor.MediaHandler, uploads afero.Fs, config *utils.Config, log *zap.Logger) {
	r.Route("/api/media", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))

		r.With(middleware.ACL(log, string(entity.RoleAdmin), string(entity.RoleMember))).
			Post("/upload-single", h.UploadSingle)
		r.With(middleware.ACL(log, string(entity.RoleAdmin), string(entity.RoleMember))).
			Post("/upload-multiple", h.UploadMultiple)
		r.Delete("/remove", h.Remove)
	})

	// stored files are served back under the public URL's path
	if uploads != nil {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(afero.NewHttpFs(uploads))))
	}
}
