package models

import "strings"

// ModuleType is one of the four fixed exam modules. The platform API
// identifies them by number.
type ModuleType string

const (
	ModuleReading   ModuleType = "Reading"
	ModuleWriting   ModuleType = "Writing"
	ModuleListening ModuleType = "Listening"
	ModuleSpeaking  ModuleType = "Speaking"
)

func (m ModuleType) ID() int {
	switch m {
	case ModuleReading:
		return 1
	case ModuleWriting:
		return 2
	case ModuleListening:
		return 3
	case ModuleSpeaking:
		return 4
	default:
		return 0
	}
}

func ParseModuleType(s string) (ModuleType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reading", "1":
		return ModuleReading, true
	case "writing", "2":
		return ModuleWriting, true
	case "listening", "3":
		return ModuleListening, true
	case "speaking", "4":
		return ModuleSpeaking, true
	default:
		return "", false
	}
}

// Exercise is the portal's view of an upstream exercise. Asset fields hold
// the server-assigned numeric ids; zero means no asset of that kind.
type Exercise struct {
	ID          int64      `json:"id"`
	Module      ModuleType `json:"module"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AllowedTime int        `json:"allowed_time"`
	PassageID   int64      `json:"passage_id,omitempty"`
	ImageID     int64      `json:"image_id,omitempty"`
	RecordingID int64      `json:"recording_id,omitempty"`
	TaskCount   int        `json:"task_count"`
}
