package progress

import "time"

// Event types emitted during an import run.
const (
	EventRecord = "import.record" // one record finished (either way)
	EventBrand  = "import.brand"  // one brand finished during a full sync
	EventDone   = "import.done"   // the run finished
)

// ImportEvent is broadcast to connected watchers while a run is in
// flight. Row is set on the CSV path, Brand/Model on the sync path.
type ImportEvent struct {
	Type      string    `json:"type"`
	RunID     string    `json:"run_id"`
	Source    string    `json:"source"` // "csv" or "phone_specs_api"
	Brand     string    `json:"brand,omitempty"`
	Model     string    `json:"model,omitempty"`
	Row       int       `json:"row,omitempty"`
	Error     string    `json:"error,omitempty"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	At        time.Time `json:"at"`
}
