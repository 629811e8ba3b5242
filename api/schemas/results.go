package schemas

import "time"

// Operation names the kind of run that produced a result.
type Operation string

const (
	OpSearch   Operation = "search"
	OpNote     Operation = "note"
	OpComments Operation = "comments"
)

// ResultEnvelope wraps the output of one CLI run.
type ResultEnvelope struct {
	RunID     string      `json:"run_id"`
	Operation Operation   `json:"operation"`
	Query     string      `json:"query"`
	Timestamp time.Time   `json:"timestamp"`
	Notes     []Note      `json:"notes,omitempty"`
	Detail    *NoteDetail `json:"detail,omitempty"`
	Comments  []Comment   `json:"comments,omitempty"`
}

// Records returns the individual items carried by the envelope, in order.
func (e *ResultEnvelope) Records() []interface{} {
	var out []interface{}
	switch {
	case e.Detail != nil:
		out = append(out, e.Detail)
	case e.Operation == OpComments:
		for i := range e.Comments {
			out = append(out, &e.Comments[i])
		}
	default:
		for i := range e.Notes {
			out = append(out, &e.Notes[i])
		}
	}
	return out
}
