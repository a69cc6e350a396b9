package quote

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/noah-isme/shipquote/internal/common"
	"github.com/noah-isme/shipquote/internal/pack"
)

// Handler exposes quoting and cache administration over HTTP.
type Handler struct {
	Svc       *Service
	Tasks     *asynq.Client
	Validator *validator.Validate
	Logger    zerolog.Logger
}

type quoteItemPayload struct {
	ProductID       int64   `json:"productId" validate:"required,gt=0"`
	VariationID     int64   `json:"variationId" validate:"gte=0"`
	Qty             int     `json:"qty" validate:"required,gt=0"`
	UnitWeightGram  int     `json:"unitWeightGram" validate:"gte=0"`
	LengthMm        int     `json:"lengthMm" validate:"gte=0"`
	WidthMm         int     `json:"widthMm" validate:"gte=0"`
	HeightMm        int     `json:"heightMm" validate:"gte=0"`
	CategoryIDs     []int64 `json:"categoryIds" validate:"dive,gt=0"`
	ShippingClassID int64   `json:"shippingClassId" validate:"gte=0"`
}

type quoteRequest struct {
	Destination string             `json:"destination"`
	Total       int64              `json:"total" validate:"gte=0"`
	Items       []quoteItemPayload `json:"items" validate:"required,min=1,dive"`
}

func (req quoteRequest) toPackage() pack.Package {
	items := make([]pack.Item, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, pack.Item{
			ProductID:       it.ProductID,
			VariationID:     it.VariationID,
			Qty:             it.Qty,
			UnitWeightGram:  it.UnitWeightGram,
			LengthMm:        it.LengthMm,
			WidthMm:         it.WidthMm,
			HeightMm:        it.HeightMm,
			CategoryIDs:     it.CategoryIDs,
			ShippingClassID: it.ShippingClassID,
		})
	}
	return pack.Package{
		Items:       items,
		Total:       pack.Money(req.Total),
		Destination: strings.TrimSpace(req.Destination),
	}
}

// Quote computes the shipping quote for the posted cart. A cart that ends
// up with no quote (zero fallback rate) is a valid outcome, reported as
// quote: null rather than an error status.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validator != nil {
		if err := h.Validator.Struct(req); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid quote request", validationDetails(err))
			return
		}
	}

	q, ok := h.Svc.Quote(r.Context(), req.toPackage())
	if !ok {
		common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"quote": nil}})
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"quote": q}})
}

// CartChanged accepts the host platform's cart mutation webhook and enqueues
// invalidation of the matching cached quote.
func (h *Handler) CartChanged(w http.ResponseWriter, r *http.Request) {
	if h.Tasks == nil {
		common.JSONError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "task queue not configured", nil)
		return
	}
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	task, err := NewCartChangedTask(req.toPackage())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to build invalidation task", nil)
		return
	}
	if _, err := h.Tasks.EnqueueContext(r.Context(), task); err != nil {
		h.Logger.Error().Err(err).Msg("enqueue cart changed task failed")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to enqueue invalidation", nil)
		return
	}
	common.JSON(w, http.StatusAccepted, map[string]any{"data": map[string]any{"queued": true}})
}

// FlushCache enqueues a full quote cache flush.
func (h *Handler) FlushCache(w http.ResponseWriter, r *http.Request) {
	if h.Tasks == nil {
		common.JSONError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "task queue not configured", nil)
		return
	}
	if _, err := h.Tasks.EnqueueContext(r.Context(), NewFlushCacheTask()); err != nil {
		h.Logger.Error().Err(err).Msg("enqueue cache flush task failed")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to enqueue flush", nil)
		return
	}
	common.JSON(w, http.StatusAccepted, map[string]any{"data": map[string]any{"queued": true}})
}

// FlushCategory enqueues a flush of quotes cached for one product category.
func (h *Handler) FlushCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || categoryID <= 0 {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid category id", nil)
		return
	}
	if h.Tasks == nil {
		common.JSONError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "task queue not configured", nil)
		return
	}
	task, err := NewFlushCategoryTask(categoryID)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to build flush task", nil)
		return
	}
	if _, err := h.Tasks.EnqueueContext(r.Context(), task); err != nil {
		h.Logger.Error().Err(err).Msg("enqueue category flush task failed")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to enqueue flush", nil)
		return
	}
	common.JSON(w, http.StatusAccepted, map[string]any{"data": map[string]any{"queued": true, "categoryId": categoryID}})
}

func validationDetails(err error) any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}
