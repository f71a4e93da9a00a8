package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/de-tools/booking-atlas/pkg/adapters"
	"github.com/de-tools/booking-atlas/pkg/export/excel"
	"github.com/de-tools/booking-atlas/pkg/models/api"
	"github.com/de-tools/booking-atlas/pkg/models/domain"
	"github.com/de-tools/booking-atlas/pkg/services/refdata"
	"github.com/de-tools/booking-atlas/pkg/services/report"
	"github.com/de-tools/booking-atlas/pkg/services/search"
	"github.com/de-tools/booking-atlas/pkg/services/selection"
)

type Handler struct {
	reports    report.Service
	search     search.Service
	selections *selection.Registry
	lookup     *refdata.Lookup
}

func NewHandler(reports report.Service, search search.Service, selections *selection.Registry, lookup *refdata.Lookup) *Handler {
	return &Handler{
		reports:    reports,
		search:     search,
		selections: selections,
		lookup:     lookup,
	}
}

// SearchProperties serves GET /properties?q=&limit=. Short terms and
// backend failures both come back as an empty list.
func (h *Handler) SearchProperties(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results := h.search.Search(ctx, r.URL.Query().Get("q"), limit)

	response := make([]api.Property, 0, len(results))
	for _, p := range results {
		response = append(response, adapters.MapPropertyDomainToApi(p))
	}
	writeJSON(ctx, w, http.StatusOK, response)
}

func (h *Handler) CreateSelection(w http.ResponseWriter, r *http.Request) {
	sid := h.selections.Create()
	writeJSON(r.Context(), w, http.StatusCreated, api.SelectionCreated{SessionID: sid})
}

func (h *Handler) GetSelection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state, ok := h.selections.Get(chi.URLParam(r, "sid"))
	if !ok {
		writeError(ctx, w, http.StatusNotFound, "unknown selection session")
		return
	}
	writeJSON(ctx, w, http.StatusOK, selectionResponse(state))
}

func (h *Handler) AddToSelection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state, ok := h.selections.Get(chi.URLParam(r, "sid"))
	if !ok {
		writeError(ctx, w, http.StatusNotFound, "unknown selection session")
		return
	}

	var req api.AddPropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	prop, err := h.search.Lookup(ctx, req.PropertyID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("property_id", req.PropertyID).Msg("property lookup failed")
		writeError(ctx, w, http.StatusServiceUnavailable, "property lookup unavailable")
		return
	}
	if prop == nil {
		writeError(ctx, w, http.StatusNotFound, fmt.Sprintf("property %d not found", req.PropertyID))
		return
	}

	switch state.Add(*prop) {
	case selection.AlreadySelected:
		writeError(ctx, w, http.StatusConflict, "property is already selected")
	case selection.AtCapacity:
		writeError(ctx, w, http.StatusConflict,
			fmt.Sprintf("selection is full, at most %d properties", domain.MaxSelectedProperties))
	default:
		writeJSON(ctx, w, http.StatusOK, selectionResponse(state))
	}
}

func (h *Handler) RemoveFromSelection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state, ok := h.selections.Get(chi.URLParam(r, "sid"))
	if !ok {
		writeError(ctx, w, http.StatusNotFound, "unknown selection session")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, "invalid property id")
		return
	}
	if !state.Remove(id) {
		writeError(ctx, w, http.StatusNotFound, fmt.Sprintf("property %d is not selected", id))
		return
	}
	writeJSON(ctx, w, http.StatusOK, selectionResponse(state))
}

func (h *Handler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state, ok := h.selections.Get(chi.URLParam(r, "sid"))
	if !ok {
		writeError(ctx, w, http.StatusNotFound, "unknown selection session")
		return
	}
	state.Clear()
	writeJSON(ctx, w, http.StatusOK, selectionResponse(state))
}

// DropSelection discards the whole session; a new one must be created
// before selecting again.
func (h *Handler) DropSelection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.selections.Drop(chi.URLParam(r, "sid")) {
		writeError(ctx, w, http.StatusNotFound, "unknown selection session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// QueryReport serves POST /reports/query: validates the filter, runs the
// aggregation, and returns the truncated preview with summary scalars.
// Backend failures are a 200 with failed set, not a 5xx.
func (h *Handler) QueryReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	f, ok := h.decodeFilter(ctx, w, r)
	if !ok {
		return
	}

	data, err := h.reports.Run(ctx, f)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	preview := report.Project(data.Rows, domain.ProjectPreview, h.lookup.DateTypeLabel(f.DateType))
	writeJSON(ctx, w, http.StatusOK, api.ReportResponse{
		Table:     adapters.MapTableDomainToApi(preview),
		Summary:   adapters.MapSummaryDomainToApi(data.Summary),
		TotalRows: len(data.Rows),
		Truncated: len(data.Rows) > domain.PreviewRowLimit,
		Failed:    data.Failed,
	})
}

// ExportReport serves POST /reports/export: the same pipeline, rendered
// as an xlsx attachment carrying every row.
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	f, ok := h.decodeFilter(ctx, w, r)
	if !ok {
		return
	}

	data, err := h.reports.Run(ctx, f)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}
	if data.Failed {
		writeError(ctx, w, http.StatusServiceUnavailable, "report data is unavailable")
		return
	}

	doc := h.reports.BuildExport(ctx, f, data)

	var buf bytes.Buffer
	if err := excel.Write(doc, &buf); err != nil {
		logger.Error().Err(err).Msg("failed to render export workbook")
		writeError(ctx, w, http.StatusInternalServerError, "failed to render export")
		return
	}

	filename := excel.Filename(doc.GeneratedAt)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error().Err(err).Str("filename", filename).Msg("failed to stream export")
	}
}

func (h *Handler) decodeFilter(ctx context.Context, w http.ResponseWriter, r *http.Request) (domain.Filter, bool) {
	var req api.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "invalid request body")
		return domain.Filter{}, false
	}

	f, err := filterFromRequest(req)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err.Error())
		return domain.Filter{}, false
	}
	return f, true
}

// filterFromRequest maps the transport shape onto a domain filter. Dates
// must be YYYY-MM-DD; full invariant checking happens in the service.
func filterFromRequest(req api.ReportRequest) (domain.Filter, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return domain.Filter{}, &domain.ValidationError{Field: "start_date", Message: "expected YYYY-MM-DD"}
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return domain.Filter{}, &domain.ValidationError{Field: "end_date", Message: "expected YYYY-MM-DD"}
	}

	return domain.Filter{
		StartDate:   start,
		EndDate:     end,
		DateType:    domain.DateType(req.DateType),
		PropertyIDs: req.PropertyIDs,
		Status:      domain.StatusAll,
	}, nil
}

func selectionResponse(state *selection.State) api.Selection {
	props := state.Properties()
	response := api.Selection{
		Properties: make([]api.Property, 0, len(props)),
		Capacity:   domain.MaxSelectedProperties,
		AtCapacity: state.AtCapacity(),
	}
	for _, p := range props {
		response.Properties = append(response.Properties, adapters.MapPropertyDomainToApi(p))
	}
	return response
}
