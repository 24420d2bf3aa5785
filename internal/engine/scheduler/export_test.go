package scheduler

// GetProjectStatusMap returns a copy of the internal project status map.
// This is exported for testing purposes only.
func (s *Scheduler) GetProjectStatusMap() map[string]ProjectStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	statusMap := make(map[string]ProjectStatus, len(s.projectStatus))
	for k, v := range s.projectStatus {
		statusMap[k] = v
	}
	return statusMap
}
