package controllers

import (
	"net/http"

	"github.com/glassph/glass-backend/api/middleware"
	"github.com/glassph/glass-backend/api/responses"
	"github.com/glassph/glass-backend/api/validators"
	"github.com/glassph/glass-backend/internal/addresses"
	"github.com/glassph/glass-backend/pkg/logger"
)

type addAddressRequest struct {
	HouseNumber string `json:"house_number"`
	Street      string `json:"street" validate:"required"`
	Barangay    string `json:"barangay"`
	City        string `json:"city" validate:"required"`
	Province    string `json:"province"`
}

// AddressList returns the caller's address book.
func AddressList(svc addresses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := svc.ListMine(r.Context(), middleware.EmailFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, views)
	}
}

// AddressAdd stores a new delivery address for the caller.
func AddressAdd(svc addresses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addAddressRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Add(r.Context(), addresses.AddInput{
			Email:       middleware.EmailFromContext(r.Context()),
			HouseNumber: req.HouseNumber,
			Street:      req.Street,
			Barangay:    req.Barangay,
			City:        req.City,
			Province:    req.Province,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

// AddressActivate marks one address active and deactivates the rest.
func AddressActivate(svc addresses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "addressId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Activate(r.Context(), middleware.EmailFromContext(r.Context()), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "activated"})
	}
}

// AddressDelete removes an address from the caller's book.
func AddressDelete(svc addresses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "addressId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), middleware.EmailFromContext(r.Context()), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
