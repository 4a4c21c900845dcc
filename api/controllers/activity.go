package controllers

import (
	"net/http"

	"github.com/glassph/glass-backend/api/responses"
	"github.com/glassph/glass-backend/api/validators"
	"github.com/glassph/glass-backend/internal/activity"
	"github.com/glassph/glass-backend/pkg/logger"
)

const maxActivityLimit = 100

// AdminRecentActivity returns the latest feed entries for the console.
func AdminRecentActivity(svc activity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 20, 1, maxActivityLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		views, svcErr := svc.ListRecent(r.Context(), limit)
		if svcErr != nil {
			responses.WriteError(r.Context(), logg, w, svcErr)
			return
		}
		responses.WriteSuccess(w, views)
	}
}
