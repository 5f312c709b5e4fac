package decklens

import "time"

// Message is a sealed interface representing a transcript entry.
// The unexported marker method prevents external implementations.
type Message interface {
	isMessage()
}

// QueryMessage is one analyst query as submitted.
type QueryMessage struct {
	ID        string
	Text      string
	Mode      AnalysisMode
	Timestamp time.Time
}

func (QueryMessage) isMessage() {}

// AnswerMessage is the archived outcome of one turn: the final accumulated
// turn state, detached from the stream that produced it.
type AnswerMessage struct {
	ID        string
	Response  string
	Code      string
	Steps     []AgentStep
	Execution *ExecutionResult
	Result    *Result
	Err       string
	Timestamp time.Time
}

func (AnswerMessage) isMessage() {}

// Interface compliance checks.
var (
	_ Message = QueryMessage{}
	_ Message = AnswerMessage{}
)

// AnswerFromProgress archives a finished turn as a transcript entry.
func AnswerFromProgress(id string, p Progress, ts time.Time) AnswerMessage {
	return AnswerMessage{
		ID:        id,
		Response:  p.Response,
		Code:      p.Code,
		Steps:     p.Steps,
		Execution: p.Execution,
		Result:    p.Result,
		Err:       p.Err,
		Timestamp: ts,
	}
}
