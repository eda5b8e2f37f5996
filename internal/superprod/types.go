// Package superprod defines the capability surface of a running Super
// Productivity instance and the clients that reach it — either through
// the plugin bridge socket or through the plugin's companion REST API.
//
// Records mirror the application's own model. Timestamps and durations
// are milliseconds, matching what the application stores.
package superprod

import "encoding/json"

// Task is the application's task record. Only the fields the bridge
// reads are typed; the application may carry more.
type Task struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	IsDone       bool     `json:"isDone"`
	TimeEstimate int64    `json:"timeEstimate,omitempty"`
	TimeSpent    int64    `json:"timeSpent,omitempty"`
	ProjectID    string   `json:"projectId,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	ParentID     string   `json:"parentId,omitempty"`
	TagIDs       []string `json:"tagIds,omitempty"`
	SubTaskIDs   []string `json:"subTaskIds,omitempty"`
	Created      int64    `json:"created,omitempty"`
	DoneOn       int64    `json:"doneOn,omitempty"`
	DueDate      int64    `json:"dueDate,omitempty"`
}

// Project is the application's project record.
type Project struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Theme      json.RawMessage `json:"theme,omitempty"`
	IsArchived bool            `json:"isArchived"`
}

// Tag is the application's tag record.
type Tag struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// NewTask is the input for creating a task. Zero-valued optional fields
// are omitted from the payload.
type NewTask struct {
	Title        string   `json:"title"`
	ProjectID    string   `json:"projectId,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	TimeEstimate int64    `json:"timeEstimate,omitempty"`
	TagIDs       []string `json:"tagIds,omitempty"`
	ParentID     string   `json:"parentId,omitempty"`
}

// NewProject is the input for creating a project.
type NewProject struct {
	Title      string          `json:"title"`
	Theme      json.RawMessage `json:"theme,omitempty"`
	IsArchived bool            `json:"isArchived"`
}

// NewTag is the input for creating a tag.
type NewTag struct {
	Title string `json:"title"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// BatchOperation is one entry of a tasks:batch call. Which fields apply
// depends on Type: create uses TempID+Data, update uses TaskID+Updates,
// delete uses TaskID, reorder uses TaskIDs.
type BatchOperation struct {
	Type    string         `json:"type"`
	TaskID  string         `json:"taskId,omitempty"`
	TempID  string         `json:"tempId,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Updates map[string]any `json:"updates,omitempty"`
	TaskIDs []string       `json:"taskIds,omitempty"`
}

// NotifyConfig shapes ui:notify. Passed to the application unchanged.
type NotifyConfig struct {
	Message  string `json:"message"`
	Type     string `json:"type,omitempty"`
	Duration int64  `json:"duration,omitempty"`
}

// SnackConfig shapes ui:showSnack. Passed to the application unchanged.
type SnackConfig struct {
	Message string         `json:"message"`
	Type    string         `json:"type,omitempty"`
	Config  map[string]any `json:"config,omitempty"`
}

// DialogConfig shapes ui:openDialog. Passed to the application unchanged.
type DialogConfig struct {
	Type        string `json:"type,omitempty"`
	Title       string `json:"title,omitempty"`
	Message     string `json:"message"`
	ConfirmText string `json:"confirmText,omitempty"`
	CancelText  string `json:"cancelText,omitempty"`
}
