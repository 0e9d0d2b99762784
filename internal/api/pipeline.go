package api

// pipeline.go - trigger endpoint for the warehouse pipeline

import "net/http"

// StageCount is one stage's row count within a run response.
type StageCount struct {
	Stage    string `json:"stage"`
	RowCount int64  `json:"row_count"`
}

// PipelineRunResponse reports the outcome of a triggered run.
type PipelineRunResponse struct {
	Status string       `json:"status"`
	Detail string       `json:"detail"`
	RunID  string       `json:"run_id,omitempty"`
	Stages []StageCount `json:"stages,omitempty"`
}

func (s *Server) handlePipelineRun(w http.ResponseWriter, r *http.Request) {
	run, results, err := s.runner.Run(r.Context())

	stages := make([]StageCount, 0, len(results))
	for _, st := range results {
		stages = append(stages, StageCount{Stage: st.Stage, RowCount: st.RowCount})
	}

	if err != nil {
		resp := PipelineRunResponse{
			Status: "error",
			Detail: err.Error(),
			Stages: stages,
		}
		if run != nil {
			resp.RunID = run.ID
		}
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}

	writeJSON(w, http.StatusOK, PipelineRunResponse{
		Status: "success",
		Detail: "pipeline run completed",
		RunID:  run.ID,
		Stages: stages,
	})
}
