package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rpattn/roaslytics/internal/domain"
)

// Handler exposes the aggregation engine as read-only HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHTTPHandler routes the analytics endpoints onto one handler.
func NewHTTPHandler(service *Service) http.Handler {
	h := &Handler{service: service}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/tracking/summary", h.trackingSummary)
	mux.HandleFunc("/api/tracking/by_campaign", h.trackingByCampaign)
	mux.HandleFunc("/api/tracking/by_influencer", h.trackingByInfluencer)
	mux.HandleFunc("/api/tracking/roas_analysis", h.roasAnalysis)
	mux.HandleFunc("/api/payouts/summary", h.payoutSummary)
	mux.HandleFunc("/api/payouts/by_basis", h.payoutsByBasis)
	mux.HandleFunc("/api/payouts/by_platform", h.payoutsByPlatform)
	mux.HandleFunc("/api/payouts/by_category", h.payoutsByCategory)
	mux.HandleFunc("/api/payouts/by_influencer", h.payoutsByInfluencer)
	mux.HandleFunc("/api/payouts/efficiency_metrics", h.efficiencyMetrics)
	mux.HandleFunc("/api/payouts/top_performers", h.topPerformers)
	return mux
}

// FilterFromQuery builds an analytics filter from request parameters.
// A date boundary supplied without its counterpart disables range
// filtering rather than erroring.
func FilterFromQuery(q url.Values) (domain.AnalyticsFilter, error) {
	filter := domain.AnalyticsFilter{
		Platform:   q.Get("platform"),
		Category:   q.Get("category"),
		Gender:     q.Get("gender"),
		Brand:      q.Get("brand"),
		Basis:      q.Get("basis"),
		Influencer: q.Get("influencer"),
	}

	start := q.Get("start_date")
	end := q.Get("end_date")
	if start != "" && end != "" {
		startDate, err := time.Parse(time.DateOnly, start)
		if err != nil {
			return domain.AnalyticsFilter{}, fmt.Errorf("invalid start_date %q: must be YYYY-MM-DD", start)
		}
		endDate, err := time.Parse(time.DateOnly, end)
		if err != nil {
			return domain.AnalyticsFilter{}, fmt.Errorf("invalid end_date %q: must be YYYY-MM-DD", end)
		}
		filter.StartDate = &startDate
		filter.EndDate = &endDate
	}

	return filter, nil
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, fn func(context.Context, domain.AnalyticsFilter) (any, error)) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filter, err := FilterFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := fn(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) trackingSummary(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, f domain.AnalyticsFilter) (any, error) {
		return h.service.TrackingSummary(ctx, f)
	})
}

func (h *Handler) trackingByCampaign(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, f domain.AnalyticsFilter) (any, error) {
		return h.service.TrackingByCampaign(ctx, f)
	})
}

func (h *Handler) trackingByInfluencer(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, f domain.AnalyticsFilter) (any, error) {
		return h.service.TrackingByInfluencer(ctx, f)
	})
}

func (h *Handler) roasAnalysis(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, f domain.AnalyticsFilter) (any, error) {
		return h.service.ROASAnalysis(ctx, f)
	})
}

func (h *Handler) payoutSummary(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, f domain.AnalyticsFilter) (any, error) {
		return h.service.PayoutSummary(ctx, f)
	})
}

func (h *Handler) payoutsByBasis(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, f domain.AnalyticsFilter) (any, error) {
		return h.service.PayoutsByBasis(ctx, f)
	})
}

func (h *Handler) payoutsByPlatform(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, f domain.AnalyticsFilter) (any, error) {
		return h.service.PayoutsByPlatform(ctx, f)
	})
}

func (h *Handler) payoutsByCategory(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, f domain.AnalyticsFilter) (any, error) {
		return h.service.PayoutsByCategory(ctx, f)
	})
}

func (h *Handler) payoutsByInfluencer(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, f domain.AnalyticsFilter) (any, error) {
		return h.service.PayoutsByInfluencer(ctx, f)
	})
}

func (h *Handler) efficiencyMetrics(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, f domain.AnalyticsFilter) (any, error) {
		return h.service.EfficiencyMetrics(ctx, f)
	})
}

func (h *Handler) topPerformers(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, f domain.AnalyticsFilter) (any, error) {
		return h.service.TopPerformers(ctx)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
