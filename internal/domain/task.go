package domain

import (
	"fmt"
	"strings"
	"time"
)

// TaskState is the lifecycle state of a task.
type TaskState string

const (
	StatePending    TaskState = "pendente"
	StateInProgress TaskState = "em andamento"
	StateDone       TaskState = "concluída"
)

// AllowedStates lists the valid task states in display order.
var AllowedStates = []TaskState{StatePending, StateInProgress, StateDone}

// StateFilterKeys lists the accepted values of the list filter in display order.
var StateFilterKeys = []string{"pendente", "andamento", "concluido"}

var stateFilters = map[string]TaskState{
	"pendente":  StatePending,
	"andamento": StateInProgress,
	"concluido": StateDone,
	"concluida": StateDone,
}

// Field messages returned to clients on task validation failures.
var (
	MsgTitleRequired       = "Campo obrigatório"
	MsgDescriptionOptional = "Campo opcional"
	MsgInvalidState        = "Somente 3 valores possiveis: " + tuple(statesAsStrings())
	MsgInvalidStateFilter  = "Possiveis filtros de estado: " + tuple(StateFilterKeys)
)

func statesAsStrings() []string {
	out := make([]string, len(AllowedStates))
	for i, s := range AllowedStates {
		out[i] = string(s)
	}
	return out
}

// tuple renders values as ('a', 'b', 'c').
func tuple(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return "(" + strings.Join(quoted, ", ") + ")"
}

// ParseState validates s as a task state. Matching is exact.
func ParseState(s string) (TaskState, error) {
	for _, st := range AllowedStates {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidState, s)
}

// ParseStateFilter maps a list filter key to the state it selects.
func ParseStateFilter(key string) (TaskState, error) {
	if st, ok := stateFilters[strings.ToLower(strings.TrimSpace(key))]; ok {
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStateFilter, key)
}

// Task is a unit of work tracked by the API.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"titulo"`
	Description *string   `json:"descricao"`
	State       TaskState `json:"estado"`
	CreatedAt   time.Time `json:"data_criacao"`
	UpdatedAt   time.Time `json:"data_atualizacao"`
}

// TaskValidationMessages is the field map reported when a new task is rejected.
func TaskValidationMessages() map[string]string {
	return map[string]string{
		"titulo":    MsgTitleRequired,
		"descricao": MsgDescriptionOptional,
		"estado":    MsgInvalidState,
	}
}

// NewTask creates a validated task with both timestamps set to now.
func NewTask(title string, description *string, state string, now time.Time) (*Task, error) {
	st, err := ParseState(state)
	if err != nil {
		return nil, &ValidationError{Fields: TaskValidationMessages(), Err: err}
	}

	task := &Task{
		Title:       title,
		Description: description,
		State:       st,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return &ValidationError{Fields: TaskValidationMessages()}
	}
	if _, err := ParseState(string(t.State)); err != nil {
		return &ValidationError{Fields: TaskValidationMessages(), Err: err}
	}
	return nil
}

// TaskPatch describes a partial update. Nil fields are left unchanged;
// SetDescription distinguishes an explicit null from an absent field.
type TaskPatch struct {
	Title          *string
	Description    *string
	SetDescription bool
	State          *string
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && !p.SetDescription && p.State == nil
}

// Validate checks the fields present in the patch.
func (p TaskPatch) Validate() error {
	if p.State != nil {
		if _, err := ParseState(*p.State); err != nil {
			return NewValidationError("estado", MsgInvalidState, err)
		}
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return NewValidationError("titulo", MsgTitleRequired, nil)
	}
	return nil
}

// Apply validates the patch and copies its fields onto t, bumping UpdatedAt.
func (p TaskPatch) Apply(t *Task, now time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.SetDescription {
		t.Description = p.Description
	}
	if p.State != nil {
		t.State = TaskState(*p.State)
	}
	t.UpdatedAt = now.UTC()
	return nil
}
