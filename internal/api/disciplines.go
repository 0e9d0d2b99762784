package api

import "net/http"

// DisciplineItem is one valid discipline.
type DisciplineItem struct {
	DisciplineID int64   `json:"discipline_id"`
	Discipline   *string `json:"discipline"`
	Province     *string `json:"province"`
	IsValid      bool    `json:"is_valid"`
}

func (s *Server) handleListDisciplines(w http.ResponseWriter, r *http.Request) {
	rows, err := s.store.ValidDisciplines(r.Context())
	if err != nil {
		s.logger.Error("failed to list disciplines", "error", err)
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	items := make([]DisciplineItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, DisciplineItem{
			DisciplineID: row.DisciplineID,
			Discipline:   row.Discipline,
			Province:     row.Province,
			IsValid:      row.IsValid,
		})
	}
	writeJSON(w, http.StatusOK, items)
}
