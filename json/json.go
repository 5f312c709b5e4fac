// Package json persists session transcripts as versioned JSON files.
package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mbarreto/decklens"
)

// envelope is the v1 wire format for a persisted session transcript.
type envelope struct {
	Version   int          `json:"version"`
	ID        string       `json:"id"`
	Decks     []string     `json:"decks,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Messages  []messageDTO `json:"messages"`
}

// messageDTO is the JSON representation of a Message with a type
// discriminator.
type messageDTO struct {
	Type      string    `json:"type"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	// query
	Text string `json:"text,omitempty"`
	Mode string `json:"mode,omitempty"`

	// answer
	Response  string     `json:"response,omitempty"`
	Code      string     `json:"code,omitempty"`
	Steps     []stepDTO  `json:"steps,omitempty"`
	Execution *execDTO   `json:"execution,omitempty"`
	Result    *resultDTO `json:"result,omitempty"`
	Error     string     `json:"error,omitempty"`
}

type stepDTO struct {
	Node        string `json:"node"`
	Name        string `json:"name,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
	Detail      string `json:"detail,omitempty"`
	Status      string `json:"status"`
}

type execDTO struct {
	Success bool    `json:"success"`
	Stdout  *string `json:"stdout,omitempty"`
	Stderr  *string `json:"stderr,omitempty"`
}

type resultDTO struct {
	ToolName          string         `json:"tool_name"`
	VisualizationType string         `json:"visualization_type"`
	Data              map[string]any `json:"data,omitempty"`
}

// MarshalSession serializes a Session transcript to JSON in v1 envelope
// format.
func MarshalSession(s decklens.Session) ([]byte, error) {
	env := envelope{
		Version:   1,
		ID:        s.ID,
		Decks:     s.Decks,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Messages:  make([]messageDTO, len(s.Messages)),
	}
	for i, msg := range s.Messages {
		dto, err := marshalMessage(msg)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		env.Messages[i] = dto
	}
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalSession deserializes a Session transcript from JSON in v1
// envelope format.
func UnmarshalSession(data []byte) (decklens.Session, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return decklens.Session{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != 1 {
		return decklens.Session{}, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	msgs := make([]decklens.Message, len(env.Messages))
	for i, dto := range env.Messages {
		msg, err := unmarshalMessage(dto)
		if err != nil {
			return decklens.Session{}, fmt.Errorf("message %d: %w", i, err)
		}
		msgs[i] = msg
	}
	return decklens.Session{
		ID:        env.ID,
		Decks:     env.Decks,
		CreatedAt: env.CreatedAt,
		UpdatedAt: env.UpdatedAt,
		Messages:  msgs,
	}, nil
}

// Save writes a Session transcript to a JSON file, creating parent
// directories as needed. The write is atomic: data lands in a temp file
// first and is renamed into place.
func Save(path string, s decklens.Session) error {
	data, err := MarshalSession(s)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads a Session transcript from a JSON file.
func Load(path string) (decklens.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return decklens.Session{}, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalSession(data)
}

func marshalMessage(msg decklens.Message) (messageDTO, error) {
	switch m := msg.(type) {
	case decklens.QueryMessage:
		return messageDTO{
			Type:      "query",
			ID:        m.ID,
			Text:      m.Text,
			Mode:      string(m.Mode),
			Timestamp: m.Timestamp,
		}, nil
	case decklens.AnswerMessage:
		dto := messageDTO{
			Type:      "answer",
			ID:        m.ID,
			Response:  m.Response,
			Code:      m.Code,
			Error:     m.Err,
			Timestamp: m.Timestamp,
		}
		for _, s := range m.Steps {
			dto.Steps = append(dto.Steps, stepDTO{
				Node:        s.Node,
				Name:        s.Name,
				Icon:        s.Icon,
				Description: s.Description,
				Detail:      s.Detail,
				Status:      string(s.Status),
			})
		}
		if m.Execution != nil {
			dto.Execution = &execDTO{
				Success: m.Execution.Success,
				Stdout:  m.Execution.Stdout,
				Stderr:  m.Execution.Stderr,
			}
		}
		if m.Result != nil {
			dto.Result = &resultDTO{
				ToolName:          m.Result.ToolName,
				VisualizationType: m.Result.VisualizationType,
				Data:              m.Result.Data,
			}
		}
		return dto, nil
	default:
		return messageDTO{}, fmt.Errorf("unknown message type: %T", msg)
	}
}

func unmarshalMessage(dto messageDTO) (decklens.Message, error) {
	switch dto.Type {
	case "query":
		return decklens.QueryMessage{
			ID:        dto.ID,
			Text:      dto.Text,
			Mode:      decklens.AnalysisMode(dto.Mode),
			Timestamp: dto.Timestamp,
		}, nil
	case "answer":
		msg := decklens.AnswerMessage{
			ID:        dto.ID,
			Response:  dto.Response,
			Code:      dto.Code,
			Err:       dto.Error,
			Timestamp: dto.Timestamp,
		}
		for _, s := range dto.Steps {
			msg.Steps = append(msg.Steps, decklens.AgentStep{
				Node:        s.Node,
				Name:        s.Name,
				Icon:        s.Icon,
				Description: s.Description,
				Detail:      s.Detail,
				Status:      decklens.StepStatus(s.Status),
			})
		}
		if dto.Execution != nil {
			msg.Execution = &decklens.ExecutionResult{
				Success: dto.Execution.Success,
				Stdout:  dto.Execution.Stdout,
				Stderr:  dto.Execution.Stderr,
			}
		}
		if dto.Result != nil {
			msg.Result = &decklens.Result{
				ToolName:          dto.Result.ToolName,
				VisualizationType: dto.Result.VisualizationType,
				Data:              decklens.Record(dto.Result.Data),
			}
		}
		return msg, nil
	default:
		return nil, fmt.Errorf("unknown message type: %q", dto.Type)
	}
}
