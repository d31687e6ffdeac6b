package schedulerv1

import "context"

// Scheduler runs jobs. Pause, Resume and Remove of an unknown key fail with a
// scheduler_job_not_found error.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=schedulerv1_mock
type Scheduler interface {
	CreateJob(ctx context.Context, job CreateJob) error
	PauseJob(ctx context.Context, key JobKey) error
	ResumeJob(ctx context.Context, key JobKey) error
	RemoveJob(ctx context.Context, key JobKey) error
}
