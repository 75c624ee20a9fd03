package upstream

import (
	"context"
	"fmt"
	"net/http"
)

type TaskMCQOption struct {
	OptionText string `json:"option_text"`
	IsTrue     bool   `json:"is_true"`
}

type TaskMCQ struct {
	QuestionText  string          `json:"question_text"`
	AllowMultiple bool            `json:"allow_multiple"`
	Options       []TaskMCQOption `json:"options"`
}

type TaskBlank struct {
	QuestionText  string `json:"question_text"`
	CorrectAnswer string `json:"correct_answer"`
	Position      int    `json:"position"`
}

// TaskPayload is the create/update body of the tasks collection. Which of the
// per-variant fields are set depends on Type; the rest stay omitted.
type TaskPayload struct {
	ExerciseID  int64  `json:"exercise_id"`
	TaskID      int64  `json:"task_id,omitempty"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	AllowedTime int    `json:"allowed_time"`

	MCQs            []TaskMCQ   `json:"mcqs,omitempty"`
	FillingBlanks   []TaskBlank `json:"filling_blanks,omitempty"`
	Group1          []string    `json:"group1,omitempty"`
	Group2          []string    `json:"group2,omitempty"`
	Answers         []string    `json:"answers,omitempty"`
	QuestionPrompts []string    `json:"question_prompts,omitempty"`
	MinWords        int         `json:"min_words,omitempty"`
	MaxWords        int         `json:"max_words,omitempty"`
}

// TaskRecord is a persisted task as the API returns it.
type TaskRecord struct {
	TaskID      int64  `json:"task_id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	AllowedTime int    `json:"allowed_time"`

	MCQs            []TaskMCQ   `json:"mcqs"`
	FillingBlanks   []TaskBlank `json:"filling_blanks"`
	Group1          []string    `json:"group1"`
	Group2          []string    `json:"group2"`
	Answers         []string    `json:"answers"`
	QuestionPrompts []string    `json:"question_prompts"`
	MinWords        int         `json:"min_words"`
	MaxWords        int         `json:"max_words"`
}

func (c *Client) ListTasks(ctx context.Context, token string, exerciseID int64) ([]TaskRecord, error) {
	var data struct {
		Tasks []TaskRecord `json:"tasks"`
	}
	path := fmt.Sprintf("/tasks?exercise_id=%d", exerciseID)
	if err := c.request(ctx, http.MethodGet, path, token, nil, &data); err != nil {
		return nil, err
	}
	return data.Tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, token string, p TaskPayload) error {
	return c.request(ctx, http.MethodPost, "/tasks", token, p, nil)
}

func (c *Client) UpdateTask(ctx context.Context, token string, p TaskPayload) error {
	return c.request(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", p.TaskID), token, p, nil)
}

func (c *Client) DeleteTask(ctx context.Context, token string, taskID int64) error {
	return c.request(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", taskID), token, nil, nil)
}
