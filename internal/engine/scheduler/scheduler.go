// Package scheduler runs the selected projects of a toolchain build in order.
package scheduler

import (
	"context"
	"errors"
	"sync"

	"go.trai.ch/tcbuild/internal/core/domain"
	"go.trai.ch/tcbuild/internal/core/ports"
)

// ProjectStatus represents the status of a project during a run.
type ProjectStatus string

const (
	// StatusPending indicates the project is waiting to be considered.
	StatusPending ProjectStatus = "Pending"
	// StatusRunning indicates the project is currently building.
	StatusRunning ProjectStatus = "Running"
	// StatusBuilt indicates the project finished its build and install cycle.
	StatusBuilt ProjectStatus = "Built"
	// StatusSkipped indicates the project's predicate did not hold.
	StatusSkipped ProjectStatus = "Skipped"
	// StatusFailed indicates a step of the project failed.
	StatusFailed ProjectStatus = "Failed"
)

// Planner selects projects and decides whether each is eligible.
type Planner interface {
	SelectedProjects() []domain.Project
	ShouldBuild(project domain.Project, state *domain.ToolchainState) bool
}

// ProjectRunner builds one project.
type ProjectRunner interface {
	Run(ctx context.Context, project domain.Project) error
}

// Outcome is the result of one selected project.
type Outcome struct {
	Project string
	Status  ProjectStatus
	// Reason explains a skip.
	Reason string
}

// Report lists the outcome of every selected project considered, in run order.
type Report struct {
	Outcomes []Outcome
}

// Built returns the names of the projects built in this run.
func (r *Report) Built() []string {
	return r.names(StatusBuilt)
}

// Skipped returns the names of the projects whose predicate did not hold.
func (r *Report) Skipped() []string {
	return r.names(StatusSkipped)
}

func (r *Report) names(status ProjectStatus) []string {
	var out []string
	for _, o := range r.Outcomes {
		if o.Status == status {
			out = append(out, o.Project)
		}
	}
	return out
}

// Scheduler runs projects strictly one after another, stopping at the first failure.
type Scheduler struct {
	planner Planner
	runner  ProjectRunner
	logger  ports.Logger
	state   *domain.ToolchainState

	mu            sync.RWMutex
	projectStatus map[string]ProjectStatus
}

// NewScheduler creates a Scheduler recording completed projects in state.
func NewScheduler(
	planner Planner,
	runner ProjectRunner,
	logger ports.Logger,
	state *domain.ToolchainState,
) *Scheduler {
	s := &Scheduler{
		planner:       planner,
		runner:        runner,
		logger:        logger,
		state:         state,
		projectStatus: make(map[string]ProjectStatus),
	}
	for _, p := range planner.SelectedProjects() {
		s.projectStatus[p.Name] = StatusPending
	}
	return s
}

func (s *Scheduler) updateStatus(name string, status ProjectStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projectStatus[name] = status
}

// Run considers every selected project in order. Predicates are evaluated just
// before each project so they observe what earlier projects built.
func (s *Scheduler) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	for _, p := range s.planner.SelectedProjects() {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if !s.planner.ShouldBuild(p, s.state) {
			reason := p.Predicate.String() + " does not hold"
			s.logger.Info(p.Name + ": skipped, " + reason)
			s.updateStatus(p.Name, StatusSkipped)
			report.Outcomes = append(report.Outcomes, Outcome{Project: p.Name, Status: StatusSkipped, Reason: reason})
			continue
		}

		s.updateStatus(p.Name, StatusRunning)
		if err := s.runner.Run(ctx, p); err != nil {
			s.updateStatus(p.Name, StatusFailed)
			report.Outcomes = append(report.Outcomes, Outcome{Project: p.Name, Status: StatusFailed})
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = errors.Join(err, ctxErr)
			}
			return report, err
		}

		s.state.MarkBuilt(p.Name)
		s.updateStatus(p.Name, StatusBuilt)
		report.Outcomes = append(report.Outcomes, Outcome{Project: p.Name, Status: StatusBuilt})
	}

	return report, nil
}
