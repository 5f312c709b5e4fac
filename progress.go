package decklens

// DefaultMaxRetries is the retry budget assumed until the backend states one.
const DefaultMaxRetries = 3

// StepStatus indicates whether a processing stage is still running.
type StepStatus string

const (
	StepRunning   StepStatus = "running"
	StepCompleted StepStatus = "completed"
)

// AgentStep is one processing stage of the current turn. Steps are keyed by
// Node, created on the first event that mentions the node, and updated in
// place afterwards. Insertion order is preserved for the whole turn.
type AgentStep struct {
	Node        string
	Name        string
	Icon        string
	Description string
	Detail      string
	Status      StepStatus
}

// ExecutionResult is the outcome of running generated code. Stdout/Stderr
// stay nil until an event carries them.
type ExecutionResult struct {
	Success bool
	Stdout  *string
	Stderr  *string
}

// Progress is the accumulated state of one query turn. It is exclusively
// owned by the consumption loop for the duration of the turn; callers read
// it once the turn completes or errors.
//
// Apply folds events in arrival order. It tolerates any subset or
// permutation of the nominal event order: every merge is idempotent rather
// than strictly sequenced, since backend behavior varies by query type.
type Progress struct {
	Steps      []AgentStep
	Code       string
	Response   string
	Execution  *ExecutionResult
	RetryCount int
	MaxRetries int
	Streaming  bool
	Result     *Result
	Err        string
}

// NewProgress returns the canonical empty turn state.
func NewProgress() Progress {
	return Progress{MaxRetries: DefaultMaxRetries}
}

// Apply folds one event into the turn state. It is synchronous, performs no
// I/O, and mutates only the receiver.
func (p *Progress) Apply(evt Event) {
	switch e := evt.(type) {
	case EventStart:
		// Full reset, independent of prior contents. Guards against stale
		// data leaking across turns if the caller forgets to reset.
		*p = NewProgress()
		p.Streaming = true

	case EventNodeStart:
		if s := p.step(e.Node); s != nil {
			s.Status = StepRunning
			if e.Name != "" {
				s.Name = e.Name
			}
			if e.Icon != "" {
				s.Icon = e.Icon
			}
			if e.Description != "" {
				s.Description = e.Description
			}
			return
		}
		p.Steps = append(p.Steps, AgentStep{
			Node:        e.Node,
			Name:        e.Name,
			Icon:        e.Icon,
			Description: e.Description,
			Status:      StepRunning,
		})

	case EventNodeDetail:
		if s := p.step(e.Node); s != nil {
			s.Detail = e.Detail
			return
		}
		p.Steps = append(p.Steps, AgentStep{Node: e.Node, Detail: e.Detail, Status: StepRunning})

	case EventNodeComplete:
		if s := p.step(e.Node); s != nil {
			s.Status = StepCompleted
			return
		}
		p.Steps = append(p.Steps, AgentStep{Node: e.Node, Status: StepCompleted})

	case EventCodeLine:
		if p.Code != "" {
			p.Code += "\n"
		}
		p.Code += e.Line

	case EventCodeComplete:
		p.Code = e.Code

	case EventExecutionResult:
		if p.Execution == nil {
			p.Execution = &ExecutionResult{}
		}
		p.Execution.Success = e.Success
		if e.Stdout != nil {
			p.Execution.Stdout = e.Stdout
		}
		if e.Stderr != nil {
			p.Execution.Stderr = e.Stderr
		}

	case EventRetry:
		p.RetryCount = e.Count
		if e.MaxRetries != nil {
			p.MaxRetries = *e.MaxRetries
		}

	case EventResponseStart:
		// Marker only. Text accumulates from EventResponseChunk.

	case EventResponseChunk:
		p.Response += e.Chunk

	case EventResponseComplete:
		p.Response = e.Response

	case EventComplete:
		if e.Result != nil {
			p.Result = e.Result
		}
		p.Streaming = false

	case EventError:
		// Partial text accumulated so far stays visible alongside the error.
		p.Err = e.Message
		p.Streaming = false
	}
}

// Step returns the step for the given node key, or nil if the turn has not
// seen it.
func (p *Progress) Step(node string) *AgentStep {
	return p.step(node)
}

func (p *Progress) step(node string) *AgentStep {
	for i := range p.Steps {
		if p.Steps[i].Node == node {
			return &p.Steps[i]
		}
	}
	return nil
}
