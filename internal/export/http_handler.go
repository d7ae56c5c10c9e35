package export

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/rpattn/roaslytics/internal/analytics"
)

// Handler streams aggregation result sets as spreadsheet attachments.
type Handler struct {
	service *analytics.Service
}

// NewHTTPHandler wraps the analytics service with a GET export endpoint.
// The report parameter names the breakdown; filters follow the analytics
// query conventions.
func NewHTTPHandler(service *analytics.Service) http.Handler {
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	report := query.Get("report")

	filter, err := analytics.FilterFromQuery(query)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var sheet Sheet
	switch report {
	case "tracking_by_campaign":
		rows, err := h.service.TrackingByCampaign(r.Context(), filter)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		sheet = Sheet{
			Name:    "Campaigns",
			Headers: []string{"campaign", "total_revenue", "total_orders", "avg_order_value"},
		}
		for _, row := range rows {
			sheet.Rows = append(sheet.Rows, []string{
				row.Campaign, row.TotalRevenue.String(), formatInt(row.TotalOrders), row.AvgOrderValue.String(),
			})
		}
	case "payouts_by_basis":
		rows, err := h.service.PayoutsByBasis(r.Context(), filter)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		sheet = Sheet{
			Name:    "Basis",
			Headers: []string{"basis", "total_payout", "total_orders", "avg_rate", "influencer_count", "avg_roas"},
		}
		for _, row := range rows {
			sheet.Rows = append(sheet.Rows, []string{
				row.Basis, row.TotalPayout.String(), formatInt(row.TotalOrders),
				row.AvgRate.String(), formatInt(row.InfluencerCount), row.AvgROAS.String(),
			})
		}
	case "payouts_by_platform":
		rows, err := h.service.PayoutsByPlatform(r.Context(), filter)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		sheet = Sheet{
			Name:    "Platforms",
			Headers: []string{"platform", "total_payout", "total_orders", "influencer_count", "total_revenue", "avg_roas"},
		}
		for _, row := range rows {
			sheet.Rows = append(sheet.Rows, []string{
				row.Platform, row.TotalPayout.String(), formatInt(row.TotalOrders),
				formatInt(row.InfluencerCount), row.TotalRevenue.String(), row.AvgROAS.String(),
			})
		}
	case "payouts_by_category":
		rows, err := h.service.PayoutsByCategory(r.Context(), filter)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		sheet = Sheet{
			Name:    "Categories",
			Headers: []string{"category", "total_payout", "total_orders", "influencer_count", "total_revenue", "avg_roas"},
		}
		for _, row := range rows {
			sheet.Rows = append(sheet.Rows, []string{
				row.Category, row.TotalPayout.String(), formatInt(row.TotalOrders),
				formatInt(row.InfluencerCount), row.TotalRevenue.String(), row.AvgROAS.String(),
			})
		}
	case "payouts_by_influencer":
		rows, err := h.service.PayoutsByInfluencer(r.Context(), filter)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		sheet = Sheet{
			Name:    "Influencers",
			Headers: []string{"influencer_name", "total_payout", "total_orders", "avg_roas"},
		}
		for _, row := range rows {
			sheet.Rows = append(sheet.Rows, []string{
				row.InfluencerName, row.TotalPayout.String(), formatInt(row.TotalOrders), row.AvgROAS.String(),
			})
		}
	case "top_performers":
		rows, err := h.service.TopPerformers(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		sheet = Sheet{
			Name:    "Top Performers",
			Headers: []string{"influencer_name", "total_payout", "total_orders"},
		}
		for _, row := range rows {
			sheet.Rows = append(sheet.Rows, []string{
				row.InfluencerName, row.TotalPayout.String(), formatInt(row.TotalOrders),
			})
		}
	default:
		http.Error(w, fmt.Sprintf("unknown report %q", report), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", report))
	if err := WriteXLSX(w, sheet); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
