package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"team-planning/internal/models"
)

const (
	planningFile = "planning.json"
	requestsFile = "requests.json"
)

// JSONPlanningRepository keeps the whole status map in planning.json.
type JSONPlanningRepository struct {
	mu   sync.Mutex
	path string
}

func NewJSONPlanningRepository(dir string) (*JSONPlanningRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &JSONPlanningRepository{path: filepath.Join(dir, planningFile)}, nil
}

func (r *JSONPlanningRepository) GetRange(_ context.Context, from, to string) (models.PlanningMap, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if err != nil {
		return nil, err
	}

	plan := make(models.PlanningMap)
	for date, members := range all {
		if date < from || date > to {
			continue
		}
		plan[date] = members
	}
	return plan, nil
}

func (r *JSONPlanningRepository) Upsert(_ context.Context, days []models.DayStatus) error {
	if len(days) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if err != nil {
		return err
	}
	for _, d := range days {
		all.Set(d)
	}
	return writeJSON(r.path, all)
}

func (r *JSONPlanningRepository) load() (models.PlanningMap, error) {
	plan := make(models.PlanningMap)
	if err := readJSON(r.path, &plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// JSONLeaveRequestRepository keeps the pending list in requests.json.
type JSONLeaveRequestRepository struct {
	mu   sync.Mutex
	path string
}

func NewJSONLeaveRequestRepository(dir string) (*JSONLeaveRequestRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &JSONLeaveRequestRepository{path: filepath.Join(dir, requestsFile)}, nil
}

func (r *JSONLeaveRequestRepository) Create(_ context.Context, req *models.LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load()
	if err != nil {
		return err
	}
	for _, existing := range list {
		if existing.ID == req.ID {
			return fmt.Errorf("leave request %s already exists", req.ID)
		}
	}
	list = append(list, *req)
	return writeJSON(r.path, list)
}

func (r *JSONLeaveRequestRepository) GetAll(_ context.Context) ([]models.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].SubmittedAt.Before(list[j].SubmittedAt)
	})
	return list, nil
}

func (r *JSONLeaveRequestRepository) GetByID(_ context.Context, id string) (*models.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *JSONLeaveRequestRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load()
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID == id {
			list = append(list[:i], list[i+1:]...)
			return writeJSON(r.path, list)
		}
	}
	return ErrNotFound
}

func (r *JSONLeaveRequestRepository) load() ([]models.LeaveRequest, error) {
	var list []models.LeaveRequest
	if err := readJSON(r.path, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// readJSON leaves v untouched when the file does not exist yet.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
