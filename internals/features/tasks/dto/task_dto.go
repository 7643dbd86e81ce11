package dto

import (
	"time"

	"github.com/google/uuid"

	"collabsphere_backend/internals/features/tasks/model"
)

type CreateTaskRequest struct {
	TeamID      uuid.UUID  `json:"team_id" validate:"required"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	AssigneeID  *uuid.UUID `json:"assignee_id"`
	DueDate     *time.Time `json:"due_date"`
}

type UpdateTaskStatusRequest struct {
	NewStatus string `json:"new_status" validate:"required,oneof=TODO DOING DONE"`
}

type AssignTaskRequest struct {
	AssigneeID uuid.UUID `json:"assignee_id" validate:"required"`
}

type TaskResponse struct {
	TaskID      uuid.UUID  `json:"task_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	TeamID      uuid.UUID  `json:"team_id"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// KanbanBoardResponse partitions a team's tasks into the three status buckets.
type KanbanBoardResponse struct {
	Todo  []TaskResponse `json:"todo"`
	Doing []TaskResponse `json:"doing"`
	Done  []TaskResponse `json:"done"`
}

func ToTaskResponse(m model.TaskModel) TaskResponse {
	return TaskResponse{
		TaskID:      m.TaskID,
		Title:       m.TaskTitle,
		Description: m.TaskDescription,
		TeamID:      m.TaskTeamID,
		Status:      m.TaskStatus,
		Priority:    m.TaskPriority,
		AssigneeID:  m.TaskAssigneeID,
		DueDate:     m.TaskDueDate,
		CreatedAt:   m.TaskCreatedAt,
	}
}

func ToTaskResponses(ms []model.TaskModel) []TaskResponse {
	out := make([]TaskResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToTaskResponse(m))
	}
	return out
}

func ToKanbanBoard(ms []model.TaskModel) KanbanBoardResponse {
	board := KanbanBoardResponse{
		Todo:  []TaskResponse{},
		Doing: []TaskResponse{},
		Done:  []TaskResponse{},
	}
	for _, m := range ms {
		switch m.TaskStatus {
		case model.StatusDoing:
			board.Doing = append(board.Doing, ToTaskResponse(m))
		case model.StatusDone:
			board.Done = append(board.Done, ToTaskResponse(m))
		default:
			board.Todo = append(board.Todo, ToTaskResponse(m))
		}
	}
	return board
}
