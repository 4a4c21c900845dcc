package controllers

import (
	"net/http"
	"strings"

	"github.com/glassph/glass-backend/api/responses"
	"github.com/glassph/glass-backend/internal/dashboard"
	pkgerrors "github.com/glassph/glass-backend/pkg/errors"
	"github.com/glassph/glass-backend/pkg/logger"
)

// DashboardRecent returns the last 7 days of sales data points.
func DashboardRecent(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := svc.Recent(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, views)
	}
}

// DashboardRange returns sales data points between two inclusive dates.
func DashboardRange(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := strings.TrimSpace(r.URL.Query().Get("start"))
		end := strings.TrimSpace(r.URL.Query().Get("end"))
		if start == "" || end == "" {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "start and end dates are required"))
			return
		}

		views, err := svc.Range(r.Context(), start, end)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, views)
	}
}
