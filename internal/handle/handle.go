package handle

import (
	"encoding/json"
	"net/http"

	"medscan/internal/pipeline"
)

type Handle struct {
	proc *pipeline.Processor
}

func New(proc *pipeline.Processor) *Handle {
	return &Handle{proc: proc}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
