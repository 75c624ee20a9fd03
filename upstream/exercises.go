package upstream

import (
	"context"
	"fmt"
	"net/http"
)

// Exercise is the wire record of the exercises collection. Asset ids are
// pointers: the API sends null when no asset of that kind is attached.
type Exercise struct {
	ExerciseID  int64   `json:"exercise_id"`
	ModuleID    int     `json:"module_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	AllowedTime int     `json:"allowed_time"`
	PassageID   *int64  `json:"passage_id"`
	ImageID     *int64  `json:"image_id"`
	RecordingID *int64  `json:"recording_id"`
	TaskIDs     []int64 `json:"task_ids"`
}

type ExercisePayload struct {
	ExerciseID  int64   `json:"exercise_id,omitempty"`
	ModuleID    int     `json:"module_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	AllowedTime int     `json:"allowed_time"`
	PassageID   *int64  `json:"passage_id"`
	ImageID     *int64  `json:"image_id"`
	RecordingID *int64  `json:"recording_id"`
}

func (c *Client) ListExercises(ctx context.Context, token string, moduleID int) ([]Exercise, error) {
	var data struct {
		Exercises []Exercise `json:"exercises"`
	}
	path := fmt.Sprintf("/exercises?module_id=%d", moduleID)
	if err := c.request(ctx, http.MethodGet, path, token, nil, &data); err != nil {
		return nil, err
	}
	if data.Exercises == nil {
		return nil, &SchemaError{Endpoint: "/exercises", Field: "data.exercises"}
	}
	return data.Exercises, nil
}

// CreateExercise posts a new exercise and returns the server-assigned id. A
// missing or zero id in the answer is a hard failure: every later task write
// depends on it.
func (c *Client) CreateExercise(ctx context.Context, token string, p ExercisePayload) (int64, error) {
	var data struct {
		Exercise struct {
			ExerciseID int64 `json:"exercise_id"`
		} `json:"exercise"`
	}
	if err := c.request(ctx, http.MethodPost, "/exercises", token, p, &data); err != nil {
		return 0, err
	}
	if data.Exercise.ExerciseID == 0 {
		return 0, &SchemaError{Endpoint: "/exercises", Field: "data.exercise.exercise_id"}
	}
	return data.Exercise.ExerciseID, nil
}

func (c *Client) UpdateExercise(ctx context.Context, token string, exerciseID int64, p ExercisePayload) error {
	return c.request(ctx, http.MethodPut, fmt.Sprintf("/exercises/%d", exerciseID), token, p, nil)
}

func (c *Client) DeleteExercise(ctx context.Context, token string, exerciseID int64) error {
	return c.request(ctx, http.MethodDelete, fmt.Sprintf("/exercises/%d", exerciseID), token, nil, nil)
}
