package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rezotera/iprep_portal/middleware"
	"github.com/rezotera/iprep_portal/models"
	"github.com/rezotera/iprep_portal/services"
)

type ExerciseHandler struct {
	Exercises *services.ExerciseService
	Activity  *services.ActivityLogger
}

func NewExerciseHandler(exercises *services.ExerciseService, activity *services.ActivityLogger) *ExerciseHandler {
	return &ExerciseHandler{Exercises: exercises, Activity: activity}
}

func (h *ExerciseHandler) List(c *fiber.Ctx) error {
	sess := middleware.Session(c)

	module, ok := models.ParseModuleType(c.Query("module"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown module type"})
	}

	exercises, err := h.Exercises.List(c.Context(), sess.UpstreamToken, module)
	if err != nil {
		return upstreamError(c, err, "Failed to load exercises")
	}
	return c.JSON(fiber.Map{"exercises": exercises})
}

func (h *ExerciseHandler) Detail(c *fiber.Ctx) error {
	sess := middleware.Session(c)

	module, ok := models.ParseModuleType(c.Query("module"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown module type"})
	}
	exerciseID, err := strconv.ParseInt(c.Params("exerciseId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exercise id"})
	}

	detail, err := h.Exercises.Detail(c.Context(), sess.UpstreamToken, module, exerciseID)
	if err != nil {
		if errors.Is(err, services.ErrExerciseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exercise not found"})
		}
		return upstreamError(c, err, "Failed to load exercise details")
	}
	return c.JSON(detail)
}

// Save accepts the whole editor submission as one multipart form: metadata
// fields, the optional passage text, the optional image/recording files, and
// the task list as a JSON field.
func (h *ExerciseHandler) Save(c *fiber.Ctx) error {
	sess := middleware.Session(c)

	module, ok := models.ParseModuleType(c.FormValue("module"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown module type"})
	}

	in := services.SaveExerciseInput{
		Module:      module,
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Passage:     c.FormValue("passage"),
	}
	in.ExerciseID, _ = strconv.ParseInt(c.FormValue("exercise_id"), 10, 64)
	in.AllowedTime, _ = strconv.Atoi(c.FormValue("allowed_time"))
	in.PassageID, _ = strconv.ParseInt(c.FormValue("passage_id"), 10, 64)
	in.ImageID, _ = strconv.ParseInt(c.FormValue("image_id"), 10, 64)
	in.RecordingID, _ = strconv.ParseInt(c.FormValue("recording_id"), 10, 64)

	if tasksJSON := c.FormValue("tasks"); tasksJSON != "" {
		if err := json.Unmarshal([]byte(tasksJSON), &in.Tasks); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse tasks JSON"})
		}
		for i := range in.Tasks {
			if in.Tasks[i].LocalID == uuid.Nil {
				in.Tasks[i].LocalID = uuid.New()
			}
		}
	}

	if fh, err := c.FormFile("image"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot read image upload"})
		}
		defer f.Close()
		in.Image = &services.Upload{Filename: fh.Filename, Reader: f}
	}
	if fh, err := c.FormFile("recording"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot read recording upload"})
		}
		defer f.Close()
		in.Recording = &services.Upload{Filename: fh.Filename, Reader: f}
	}

	exerciseID, err := h.Exercises.Save(c.Context(), sess.UpstreamToken, in)
	if err != nil {
		if errors.Is(err, services.ErrTitleRequired) || errors.Is(err, services.ErrReadingNeedsTask) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return upstreamError(c, err, "Save failed")
	}

	action := "created"
	status := fiber.StatusCreated
	if in.ExerciseID > 0 {
		action = "updated"
		status = fiber.StatusOK
	}
	h.Activity.Log(fmt.Sprintf("%s %s exercise '%s'", action, module, in.Title), sess.FullName)

	return c.Status(status).JSON(fiber.Map{
		"message":     fmt.Sprintf("Exercise %s successfully", action),
		"exercise_id": exerciseID,
	})
}

func (h *ExerciseHandler) Delete(c *fiber.Ctx) error {
	sess := middleware.Session(c)

	exerciseID, err := strconv.ParseInt(c.Params("exerciseId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exercise id"})
	}

	if err := h.Exercises.Delete(c.Context(), sess.UpstreamToken, exerciseID); err != nil {
		return upstreamError(c, err, "Delete failed")
	}

	h.Activity.Log(fmt.Sprintf("deleted exercise %d", exerciseID), sess.FullName)
	return c.JSON(fiber.Map{"message": "Deleted successfully"})
}

// RemoveTask deletes a persisted task. Removal is confirmed only after the
// platform acknowledges the delete; the editor keeps never-persisted tasks
// local and does not call this at all.
func (h *ExerciseHandler) RemoveTask(c *fiber.Ctx) error {
	sess := middleware.Session(c)

	taskID, err := strconv.ParseInt(c.Params("taskId"), 10, 64)
	if err != nil || taskID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task id"})
	}

	if err := h.Exercises.RemoveTask(c.Context(), sess.UpstreamToken, models.Task{RemoteID: taskID}); err != nil {
		return upstreamError(c, err, "Failed to delete task")
	}

	h.Activity.Log(fmt.Sprintf("deleted task %d", taskID), sess.FullName)
	return c.JSON(fiber.Map{"message": "Task deleted"})
}
