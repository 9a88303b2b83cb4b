package metrics

// IncrementBoardCreated increments board creation counter
func (m *Metrics) IncrementBoardCreated() {
	m.safeExecute("IncrementBoardCreated", func() {
		m.BoardCreatedTotal.Inc()
	})
}

// IncrementTaskCreated increments task creation counter
func (m *Metrics) IncrementTaskCreated() {
	m.safeExecute("IncrementTaskCreated", func() {
		m.TaskCreatedTotal.Inc()
	})
}

// IncrementTaskMoved increments the committed task move counter
func (m *Metrics) IncrementTaskMoved() {
	m.safeExecute("IncrementTaskMoved", func() {
		m.TaskMovedTotal.Inc()
	})
}

// IncrementGroupReordered increments the committed column reorder counter
func (m *Metrics) IncrementGroupReordered() {
	m.safeExecute("IncrementGroupReordered", func() {
		m.GroupReorderedTotal.Inc()
	})
}

// IncrementReorderConflict increments the version conflict counter
func (m *Metrics) IncrementReorderConflict() {
	m.safeExecute("IncrementReorderConflict", func() {
		m.ReorderConflictsTotal.Inc()
	})
}

// SetWorkpanelsTotal sets total workpanels gauge
func (m *Metrics) SetWorkpanelsTotal(count int64) {
	m.safeExecute("SetWorkpanelsTotal", func() {
		m.WorkpanelsTotal.Set(float64(count))
	})
}

// SetBoardsTotal sets total boards gauge
func (m *Metrics) SetBoardsTotal(count int64) {
	m.safeExecute("SetBoardsTotal", func() {
		m.BoardsTotal.Set(float64(count))
	})
}

// SetTasksTotal sets total tasks gauge
func (m *Metrics) SetTasksTotal(count int64) {
	m.safeExecute("SetTasksTotal", func() {
		m.TasksTotal.Set(float64(count))
	})
}
