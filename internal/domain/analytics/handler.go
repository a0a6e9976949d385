package analytics

import (
	"net/http"

	"github.com/brandbite/brandbite-api/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// DesignerAnalytics handles GET /api/admin/designer-analytics
func (h *Handler) DesignerAnalytics(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.svc.DesignerAnalytics(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, summaries)
}
