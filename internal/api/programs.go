package api

// programs.go - gold program profile endpoints

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/carmsdata/carmsdw/internal/warehouse"
	"github.com/carmsdata/carmsdw/pkg/core"
	"github.com/go-chi/chi/v5"
)

const (
	defaultLimit        = 100
	maxLimit            = 500
	defaultPreviewChars = 900
	maxPreviewChars     = 5000
)

// ProgramListItem is the list-friendly profile payload.
type ProgramListItem struct {
	ProgramStreamID    int64   `json:"program_stream_id"`
	ProgramName        *string `json:"program_name"`
	ProgramStreamName  *string `json:"program_stream_name"`
	ProgramStream      *string `json:"program_stream"`
	DisciplineName     *string `json:"discipline_name"`
	SchoolName         *string `json:"school_name"`
	ProgramSite        *string `json:"program_site"`
	ProgramURL         *string `json:"program_url"`
	Province           string  `json:"province"`
	IsValid            bool    `json:"is_valid"`
	DescriptionPreview *string `json:"description_preview"`
}

// ProgramDetail adds the full description text to the list payload.
type ProgramDetail struct {
	ProgramListItem
	DescriptionText *string `json:"description_text"`
}

// ProgramListResponse is the paginated listing envelope.
type ProgramListResponse struct {
	Items  []ProgramListItem `json:"items"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
	Total  *int64            `json:"total"`
}

// makePreview truncates description text for list views. The cut lands
// on a rune boundary so multibyte text never yields invalid UTF-8.
func makePreview(text *string, previewChars int) *string {
	if text == nil || previewChars <= 0 {
		return nil
	}
	if len(*text) <= previewChars {
		return text
	}
	cut := previewChars
	for cut > 0 && !utf8.RuneStart((*text)[cut]) {
		cut--
	}
	preview := strings.TrimRight((*text)[:cut], " \t\r\n") + "..."
	return &preview
}

func toListItem(r core.GoldProgramProfile, previewChars int) ProgramListItem {
	return ProgramListItem{
		ProgramStreamID:    r.ProgramStreamID,
		ProgramName:        r.ProgramName,
		ProgramStreamName:  r.ProgramStreamName,
		ProgramStream:      r.ProgramStream,
		DisciplineName:     r.DisciplineName,
		SchoolName:         r.SchoolName,
		ProgramSite:        r.ProgramSite,
		ProgramURL:         r.ProgramURL,
		Province:           r.Province,
		IsValid:            r.IsValid,
		DescriptionPreview: makePreview(r.DescriptionText, previewChars),
	}
}

// queryInt parses an integer query parameter with a default and an
// inclusive range. The second return is false on a malformed or
// out-of-range value.
func queryInt(r *http.Request, name string, def, min, max int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min || v > max {
		return 0, false
	}
	return v, true
}

func (s *Server) handleListPrograms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	province := q.Get("province")
	if province != "" && province != core.UnknownProvince {
		if _, ok := core.ProvinceCodes[province]; !ok {
			writeError(w, http.StatusUnprocessableEntity, "invalid province code")
			return
		}
	}

	limit, ok := queryInt(r, "limit", defaultLimit, 1, maxLimit)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "limit must be between 1 and 500")
		return
	}
	offset, ok := queryInt(r, "offset", 0, 0, int(^uint(0)>>1))
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "offset must be non-negative")
		return
	}
	previewChars, ok := queryInt(r, "preview_chars", defaultPreviewChars, 0, maxPreviewChars)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "preview_chars must be between 0 and 5000")
		return
	}

	filter := warehouse.ProfileFilter{
		Discipline: q.Get("discipline"),
		Province:   province,
		School:     q.Get("school"),
		Limit:      limit,
		Offset:     offset,
	}

	var total *int64
	if q.Get("include_total") == "true" {
		t, err := s.store.CountProfiles(r.Context(), filter)
		if err != nil {
			s.logger.Error("failed to count profiles", "error", err)
			writeError(w, http.StatusInternalServerError, "query failed")
			return
		}
		total = &t
	}

	rows, err := s.store.ListProfiles(r.Context(), filter)
	if err != nil {
		s.logger.Error("failed to list profiles", "error", err)
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	items := make([]ProgramListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, toListItem(row, previewChars))
	}

	writeJSON(w, http.StatusOK, ProgramListResponse{
		Items:  items,
		Limit:  limit,
		Offset: offset,
		Total:  total,
	})
}

func (s *Server) handleGetProgram(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "programStreamID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "program id must be an integer")
		return
	}

	row, err := s.store.ProfileByID(r.Context(), id)
	if errors.Is(err, warehouse.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Program not found")
		return
	}
	if err != nil {
		s.logger.Error("failed to get profile", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	// Detail view carries the full text, so no preview is needed.
	writeJSON(w, http.StatusOK, ProgramDetail{
		ProgramListItem: toListItem(*row, 0),
		DescriptionText: row.DescriptionText,
	})
}
