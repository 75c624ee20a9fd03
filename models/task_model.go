package models

import (
	"strings"

	"github.com/google/uuid"
)

// TaskType tags the six task variants of a Reading exercise. The values are
// the wire tags the platform API expects.
type TaskType string

const (
	TaskMCQ           TaskType = "mcq"
	TaskFillingBlanks TaskType = "filling_blanks"
	TaskMatching      TaskType = "matching"
	TaskQA            TaskType = "qa"
	TaskWriting       TaskType = "writing"
	TaskSpeaking      TaskType = "speaking"
)

// ParseTaskType accepts both wire tags and the display names the editor UI
// historically used ("MCQ", "Filling Blanks", ...).
func ParseTaskType(s string) (TaskType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mcq":
		return TaskMCQ, true
	case "filling_blanks", "filling blanks":
		return TaskFillingBlanks, true
	case "matching":
		return TaskMatching, true
	case "qa":
		return TaskQA, true
	case "writing":
		return TaskWriting, true
	case "speaking":
		return TaskSpeaking, true
	default:
		return "", false
	}
}

type MCQOption struct {
	Value     string `json:"value"`
	IsCorrect bool   `json:"is_correct"`
}

type MCQQuestion struct {
	Text    string      `json:"text"`
	Options []MCQOption `json:"options"`
}

type Blank struct {
	Text     string `json:"text"`
	Answer   string `json:"answer"`
	Position int    `json:"position"`
}

// Task is one graded sub-unit of an exercise. LocalID is assigned by the
// portal and always present; RemoteID is the platform API's id, zero until
// the task has been persisted upstream. A zero RemoteID means save-by-create,
// non-zero means save-by-update.
//
// Only the fields matching Type are meaningful; BuildTaskPayload maps them
// exhaustively onto the per-variant API shape.
type Task struct {
	LocalID     uuid.UUID `json:"local_id"`
	RemoteID    int64     `json:"remote_id,omitempty"`
	Type        TaskType  `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AllowedTime int       `json:"allowed_time"`

	// mcq
	Questions     []MCQQuestion `json:"questions,omitempty"`
	AllowMultiple bool          `json:"allow_multiple,omitempty"`

	// filling_blanks
	Blanks []Blank `json:"blanks,omitempty"`

	// matching
	Group1 []string `json:"group1,omitempty"`
	Group2 []string `json:"group2,omitempty"`

	// matching, qa
	Answers []string `json:"answers,omitempty"`

	// qa, writing, speaking
	Prompts []string `json:"prompts,omitempty"`

	// qa, writing (answer length); filling_blanks (words per blank)
	MinWords int `json:"min_words,omitempty"`
	MaxWords int `json:"max_words,omitempty"`
}

func (t Task) Persisted() bool { return t.RemoteID > 0 }
