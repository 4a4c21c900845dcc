package controllers

import (
	"net/http"

	"github.com/glassph/glass-backend/api/responses"
	"github.com/glassph/glass-backend/api/validators"
	"github.com/glassph/glass-backend/internal/products"
	"github.com/glassph/glass-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type createProductRequest struct {
	Category    string          `json:"category" validate:"required"`
	ProductType string          `json:"product_type" validate:"required"`
	Image       string          `json:"product_image"`
	Name        string          `json:"product_name" validate:"required"`
	Price       decimal.Decimal `json:"product_price" validate:"required"`
	Description string          `json:"product_description" validate:"required"`
}

type updateProductRequest struct {
	Category    *string          `json:"category"`
	ProductType *string          `json:"product_type"`
	Image       *string          `json:"product_image"`
	Name        *string          `json:"product_name"`
	Price       *decimal.Decimal `json:"product_price"`
	Description *string          `json:"product_description"`
}

// ProductList returns the public catalog (archived entries hidden).
func ProductList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := svc.List(r.Context(), false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, views)
	}
}

// ProductDetail returns one catalog entry.
func ProductDetail(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// AdminProductList returns the full catalog including archived entries.
func AdminProductList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := svc.List(r.Context(), true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, views)
	}
}

// AdminProductCreate adds a catalog entry.
func AdminProductCreate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createProductRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Create(r.Context(), products.CreateInput{
			Category:    req.Category,
			ProductType: req.ProductType,
			Image:       req.Image,
			Name:        req.Name,
			Price:       req.Price,
			Description: req.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

// AdminProductUpdate applies partial edits to a catalog entry.
func AdminProductUpdate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateProductRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Update(r.Context(), id, products.UpdateInput{
			Category:    req.Category,
			ProductType: req.ProductType,
			Image:       req.Image,
			Name:        req.Name,
			Price:       req.Price,
			Description: req.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// AdminProductArchive hides a catalog entry from the public list.
func AdminProductArchive(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Archive(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "archived"})
	}
}

// AdminProductDelete removes a catalog entry. Existing order snapshots keep
// their copied fields.
func AdminProductDelete(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
