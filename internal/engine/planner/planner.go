// Package planner selects the projects of a run and decides which are eligible to build.
package planner

import (
	"strings"

	"go.trai.ch/tcbuild/internal/core/domain"
	"go.trai.ch/tcbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// Planner filters the catalog against the run's selection and evaluates build predicates.
type Planner struct {
	catalog  *domain.Catalog
	cfg      domain.RunConfig
	probe    ports.HostProbe
	selected []domain.Project
}

// New validates the skip and only lists of cfg against catalog.
func New(catalog *domain.Catalog, cfg domain.RunConfig, probe ports.HostProbe) (*Planner, error) {
	if len(cfg.Skip) > 0 && len(cfg.Only) > 0 {
		return nil, domain.ErrSkipOnlyExclusive
	}

	if unknown := unknownNames(catalog, cfg.Skip, cfg.Only); len(unknown) > 0 {
		return nil, zerr.With(
			zerr.Wrap(domain.ErrUnknownProject, "invalid project selection"),
			"project", strings.Join(unknown, ", "),
		)
	}

	p := &Planner{catalog: catalog, cfg: cfg, probe: probe}
	p.selected = p.selectProjects()
	return p, nil
}

func unknownNames(catalog *domain.Catalog, lists ...[]string) []string {
	var unknown []string
	for _, list := range lists {
		for _, name := range list {
			if !catalog.Has(name) {
				unknown = append(unknown, name)
			}
		}
	}
	return unknown
}

func (p *Planner) selectProjects() []domain.Project {
	skip := toSet(p.cfg.Skip)
	only := toSet(p.cfg.Only)

	var selected []domain.Project
	for _, project := range p.catalog.Projects() {
		if _, ok := skip[project.Name]; ok {
			continue
		}
		if len(only) > 0 {
			if _, ok := only[project.Name]; !ok {
				continue
			}
		}
		selected = append(selected, project)
	}
	return selected
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// SelectedProjects returns the projects to consider, in catalog order.
func (p *Planner) SelectedProjects() []domain.Project {
	out := make([]domain.Project, len(p.selected))
	copy(out, p.selected)
	return out
}

// ShouldBuild reports whether project is eligible given what has been built so far.
// Force overrides every predicate.
func (p *Planner) ShouldBuild(project domain.Project, state *domain.ToolchainState) bool {
	if p.cfg.Force || project.Predicate.IsAlways() {
		return true
	}
	return project.Predicate.Eval(state.Snapshot(), p.probe.HasTool)
}
