// ABOUTME: Pipeline board and progress-bar derivations
// ABOUTME: Groups clients by stage in pipeline order for TUI and web rendering
package crm

import "github.com/harperreed/lifehub/models"

// StageProgress is one segment of a client's progress bar.
type StageProgress struct {
	Stage   models.PipelineStage
	Passed  bool
	Current bool
}

// Progress marks every stage up to and including current as passed. Lost /
// Not Proceeding sits last, so a lost lead shows a full bar.
func Progress(current models.PipelineStage) []StageProgress {
	idx := current.Index()
	stages := models.Stages()
	out := make([]StageProgress, len(stages))
	for i, stage := range stages {
		out[i] = StageProgress{
			Stage:   stage,
			Passed:  idx >= i,
			Current: idx == i,
		}
	}
	return out
}

// Column is one pipeline stage with its clients.
type Column struct {
	Stage   models.PipelineStage
	Clients []models.Client
}

// Board buckets clients into all ten stages. Clients with an unrecognized
// status are dropped.
func Board(clients []models.Client) []Column {
	stages := models.Stages()
	cols := make([]Column, len(stages))
	for i, stage := range stages {
		cols[i] = Column{Stage: stage, Clients: FilterByStage(clients, stage)}
	}
	return cols
}
