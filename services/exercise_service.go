package services

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/rezotera/iprep_portal/models"
	"github.com/rezotera/iprep_portal/upstream"
	"golang.org/x/sync/errgroup"
)

const defaultAllowedTime = 40

var (
	ErrTitleRequired    = errors.New("title is required")
	ErrReadingNeedsTask = errors.New("please add at least one task for the Reading module")
	ErrExerciseNotFound = errors.New("exercise not found")

	errPassageUpload   = errors.New("failed to upload passage")
	errImageUpload     = errors.New("failed to upload image")
	errRecordingUpload = errors.New("failed to upload recording")
)

// ExerciseService runs the editor workflow against the platform API: asset
// uploads, parent exercise upsert, and the per-task fan-out. It holds no
// state of its own; everything is keyed by the caller's session token.
type ExerciseService struct {
	api *upstream.Client
}

func NewExerciseService(api *upstream.Client) *ExerciseService {
	return &ExerciseService{api: api}
}

// Upload is a pending file from the editor form.
type Upload struct {
	Filename string
	Reader   io.Reader
}

// SaveExerciseInput carries everything the editor submits in one save.
// ExerciseID zero means create; asset ids carry over from a previous save
// unless a new passage/file replaces them.
type SaveExerciseInput struct {
	Module      models.ModuleType
	ExerciseID  int64
	Title       string
	Description string
	AllowedTime int
	Passage     string
	PassageID   int64
	ImageID     int64
	RecordingID int64
	Image       *Upload
	Recording   *Upload
	Tasks       []models.Task
}

// Save runs the whole save sequence. Steps are strictly ordered — validate,
// upload assets, upsert the exercise, then write tasks — except that the task
// writes themselves go out concurrently and the save fails if any one of
// them does. There is no rollback: a failed step leaves earlier uploads in
// place and the staff member retries.
func (s *ExerciseService) Save(ctx context.Context, token string, in SaveExerciseInput) (int64, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return 0, ErrTitleRequired
	}
	if in.Module == models.ModuleReading && len(in.Tasks) == 0 {
		return 0, ErrReadingNeedsTask
	}

	passageID := in.PassageID
	imageID := in.ImageID
	recordingID := in.RecordingID

	passage := strings.TrimSpace(in.Passage)
	if (in.Module == models.ModuleReading || in.Module == models.ModuleWriting) && passage != "" {
		id, err := s.api.CreatePassage(ctx, token, title+" - Passage", passage)
		if err != nil {
			return 0, err
		}
		if id == 0 {
			return 0, errPassageUpload
		}
		passageID = id
	}
	if in.Module == models.ModuleReading && in.Image != nil {
		id, err := s.api.UploadImage(ctx, token, in.Image.Filename, in.Image.Reader)
		if err != nil {
			return 0, err
		}
		if id == 0 {
			return 0, errImageUpload
		}
		imageID = id
	}
	if (in.Module == models.ModuleListening || in.Module == models.ModuleSpeaking) && in.Recording != nil {
		id, err := s.api.UploadRecording(ctx, token, in.Recording.Filename, in.Recording.Reader)
		if err != nil {
			return 0, err
		}
		if id == 0 {
			return 0, errRecordingUpload
		}
		recordingID = id
	}

	allowedTime := in.AllowedTime
	if allowedTime <= 0 {
		allowedTime = defaultAllowedTime
	}
	payload := upstream.ExercisePayload{
		ModuleID:    in.Module.ID(),
		Title:       title,
		Description: optionalString(strings.TrimSpace(in.Description)),
		AllowedTime: allowedTime,
		PassageID:   optionalID(passageID),
		ImageID:     optionalID(imageID),
		RecordingID: optionalID(recordingID),
	}

	exerciseID := in.ExerciseID
	if exerciseID > 0 {
		payload.ExerciseID = exerciseID
		if err := s.api.UpdateExercise(ctx, token, exerciseID, payload); err != nil {
			return 0, err
		}
	} else {
		id, err := s.api.CreateExercise(ctx, token, payload)
		if err != nil {
			return 0, err
		}
		exerciseID = id
	}

	if in.Module == models.ModuleReading {
		g, gctx := errgroup.WithContext(ctx)
		for _, task := range in.Tasks {
			task := task
			g.Go(func() error {
				p := BuildTaskPayload(exerciseID, task)
				if task.Persisted() {
					return s.api.UpdateTask(gctx, token, p)
				}
				return s.api.CreateTask(gctx, token, p)
			})
		}
		if err := g.Wait(); err != nil {
			return 0, err
		}
	}

	return exerciseID, nil
}

// BuildTaskPayload maps a local task onto its per-variant API shape. The
// switch is exhaustive over the six task types.
func BuildTaskPayload(exerciseID int64, t models.Task) upstream.TaskPayload {
	p := upstream.TaskPayload{
		ExerciseID:  exerciseID,
		Type:        string(t.Type),
		Title:       t.Title,
		Description: t.Description,
		AllowedTime: t.AllowedTime,
	}
	if t.Persisted() {
		p.TaskID = t.RemoteID
	}

	switch t.Type {
	case models.TaskMCQ:
		for _, q := range t.Questions {
			mcq := upstream.TaskMCQ{
				QuestionText:  q.Text,
				AllowMultiple: t.AllowMultiple,
			}
			for _, o := range q.Options {
				mcq.Options = append(mcq.Options, upstream.TaskMCQOption{
					OptionText: o.Value,
					IsTrue:     o.IsCorrect,
				})
			}
			p.MCQs = append(p.MCQs, mcq)
		}
	case models.TaskFillingBlanks:
		for _, b := range t.Blanks {
			pos := b.Position
			if pos == 0 {
				pos = 1
			}
			p.FillingBlanks = append(p.FillingBlanks, upstream.TaskBlank{
				QuestionText:  b.Text,
				CorrectAnswer: b.Answer,
				Position:      pos,
			})
		}
		p.MaxWords = t.MaxWords
	case models.TaskMatching:
		p.Group1 = t.Group1
		p.Group2 = t.Group2
		p.Answers = t.Answers
	case models.TaskQA:
		p.QuestionPrompts = t.Prompts
		p.Answers = t.Answers
		p.MinWords = t.MinWords
		p.MaxWords = t.MaxWords
	case models.TaskWriting:
		p.QuestionPrompts = t.Prompts
		p.MinWords = t.MinWords
		p.MaxWords = t.MaxWords
	case models.TaskSpeaking:
		p.QuestionPrompts = t.Prompts
	}

	return p
}

// List returns the module's exercises as portal records.
func (s *ExerciseService) List(ctx context.Context, token string, module models.ModuleType) ([]models.Exercise, error) {
	wire, err := s.api.ListExercises(ctx, token, module.ID())
	if err != nil {
		return nil, err
	}
	exercises := make([]models.Exercise, 0, len(wire))
	for _, ex := range wire {
		exercises = append(exercises, normalizeExercise(module, ex))
	}
	return exercises, nil
}

// ExerciseDetail is everything the editor needs to reopen an exercise.
type ExerciseDetail struct {
	Exercise     models.Exercise `json:"exercise"`
	Passage      string          `json:"passage,omitempty"`
	ImageURL     string          `json:"image_url,omitempty"`
	RecordingURL string          `json:"recording_url,omitempty"`
	Tasks        []models.Task   `json:"tasks,omitempty"`
}

// Detail fetches an exercise for editing: the referenced assets when their
// ids are set, and — for Reading only — the normalized task list. Asset
// fetch failures are logged and leave the field empty; the editor still
// opens.
func (s *ExerciseService) Detail(ctx context.Context, token string, module models.ModuleType, exerciseID int64) (*ExerciseDetail, error) {
	wire, err := s.api.ListExercises(ctx, token, module.ID())
	if err != nil {
		return nil, err
	}

	var found *upstream.Exercise
	for i := range wire {
		if wire[i].ExerciseID == exerciseID {
			found = &wire[i]
			break
		}
	}
	if found == nil {
		return nil, ErrExerciseNotFound
	}

	detail := &ExerciseDetail{Exercise: normalizeExercise(module, *found)}

	if found.PassageID != nil && *found.PassageID > 0 {
		text, err := s.api.GetPassage(ctx, token, *found.PassageID)
		if err != nil {
			log.Printf("Failed to fetch passage %d: %v", *found.PassageID, err)
		} else {
			detail.Passage = text
		}
	}
	if found.ImageID != nil && *found.ImageID > 0 {
		url, err := s.api.GetImageURL(ctx, token, *found.ImageID)
		if err != nil {
			log.Printf("Failed to fetch image %d: %v", *found.ImageID, err)
		} else {
			detail.ImageURL = url
		}
	}
	if found.RecordingID != nil && *found.RecordingID > 0 {
		url, err := s.api.GetRecordingURL(ctx, token, *found.RecordingID)
		if err != nil {
			log.Printf("Failed to fetch recording %d: %v", *found.RecordingID, err)
		} else {
			detail.RecordingURL = url
		}
	}

	if module == models.ModuleReading {
		records, err := s.api.ListTasks(ctx, token, exerciseID)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			detail.Tasks = append(detail.Tasks, normalizeTask(rec))
		}
	}

	return detail, nil
}

func (s *ExerciseService) Delete(ctx context.Context, token string, exerciseID int64) error {
	return s.api.DeleteExercise(ctx, token, exerciseID)
}

// RemoveTask confirms the upstream delete before the task is reported gone.
// A task that was never persisted has nothing to delete remotely, so no
// request goes out at all.
func (s *ExerciseService) RemoveTask(ctx context.Context, token string, task models.Task) error {
	if !task.Persisted() {
		return nil
	}
	return s.api.DeleteTask(ctx, token, task.RemoteID)
}

func normalizeExercise(module models.ModuleType, ex upstream.Exercise) models.Exercise {
	out := models.Exercise{
		ID:          ex.ExerciseID,
		Module:      module,
		Title:       ex.Title,
		Description: ex.Description,
		AllowedTime: ex.AllowedTime,
		TaskCount:   len(ex.TaskIDs),
	}
	if ex.PassageID != nil {
		out.PassageID = *ex.PassageID
	}
	if ex.ImageID != nil {
		out.ImageID = *ex.ImageID
	}
	if ex.RecordingID != nil {
		out.RecordingID = *ex.RecordingID
	}
	return out
}

func normalizeTask(rec upstream.TaskRecord) models.Task {
	typ, ok := models.ParseTaskType(rec.Type)
	if !ok {
		typ = models.TaskType(strings.ToLower(rec.Type))
	}

	t := models.Task{
		LocalID:     uuid.New(),
		RemoteID:    rec.TaskID,
		Type:        typ,
		Title:       rec.Title,
		Description: rec.Description,
		AllowedTime: rec.AllowedTime,
		Group1:      rec.Group1,
		Group2:      rec.Group2,
		Answers:     rec.Answers,
		Prompts:     rec.QuestionPrompts,
		MinWords:    rec.MinWords,
		MaxWords:    rec.MaxWords,
	}
	for _, m := range rec.MCQs {
		q := models.MCQQuestion{Text: m.QuestionText}
		for _, o := range m.Options {
			q.Options = append(q.Options, models.MCQOption{Value: o.OptionText, IsCorrect: o.IsTrue})
		}
		t.Questions = append(t.Questions, q)
		t.AllowMultiple = t.AllowMultiple || m.AllowMultiple
	}
	for _, b := range rec.FillingBlanks {
		t.Blanks = append(t.Blanks, models.Blank{Text: b.QuestionText, Answer: b.CorrectAnswer, Position: b.Position})
	}
	return t
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalID(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return &id
}
