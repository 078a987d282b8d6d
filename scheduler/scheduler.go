/*
 * MIT License
 *
 * Copyright (c) 2022-2025 Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package scheduler

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/reugn/go-quartz/quartz"
	"go.opentelemetry.io/otel"

	"github.com/nodeforge/futura/logger"
)

// Job will be implemented by any job runner
type Job interface {
	// ID returns the Job unique identifier
	ID() string
	// Run execute the job
	Run(ctx context.Context) error
}

// Scheduler will be implemented by the scheduler
type Scheduler interface {
	// Start starts the scheduler and run all the jobs in their separate go-routine
	Start(ctx context.Context)
	// Stop stops the scheduler and stop any running job
	Stop(ctx context.Context) error
	// Run runs the scheduler by executing all jobs that have been added to it.
	Run(ctx context.Context)
	// Schedule adds a new job runner to the scheduler. The cronExpression
	// follows go-quartz's Quartz-style cron syntax, e.g.
	//   - "0 0 * * * ?" (every hour, on the hour)
	//   - "* * * * * ?" (every second)
	Schedule(ctx context.Context, cronExpression string, job Job) error
}

// jobAdapter bridges a Job onto quartz.Job, the interface the underlying
// go-quartz scheduler actually runs.
type jobAdapter struct {
	job Job
	log logger.Logger
}

// Description satisfies quartz.Job.
func (a *jobAdapter) Description() string {
	return a.job.ID()
}

// Execute satisfies quartz.Job, running the wrapped Job and logging (rather
// than panicking) on failure so one misbehaving job can't take the whole
// scheduler down with it.
func (a *jobAdapter) Execute(ctx context.Context) error {
	if err := a.job.Run(ctx); err != nil {
		wrapped := errors.Wrapf(err, "job (%s) failed to run", a.job.ID())
		a.log.Errorw(wrapped.Error(), "job", a.job.ID())
		return wrapped
	}
	return nil
}

// JobsScheduler implements Scheduler on top of go-quartz's StdScheduler.
type JobsScheduler struct {
	mu          sync.Mutex
	scheduler   *quartz.StdScheduler
	jobs        map[string]Job
	logger      logger.Logger
	stopTimeout time.Duration
	stopped     bool
}

// enforce a compilation error
var _ Scheduler = &JobsScheduler{}

// NewJobsScheduler creates a new instance of Scheduler.
// It accepts for cronExpression go-quartz's Quartz-style cron syntax,
// which requires a seconds field and uses "?" for an unspecified
// day-of-month/day-of-week.
func NewJobsScheduler(opts ...Option) *JobsScheduler {
	s := &JobsScheduler{
		mu:          sync.Mutex{},
		scheduler:   quartz.NewStdScheduler(),
		jobs:        make(map[string]Job),
		logger:      logger.NewLogger(logger.WithNop()),
		stopTimeout: 30 * time.Second,
		stopped:     true,
	}
	for _, opt := range opts {
		opt.Apply(s)
	}
	return s
}

// Start starts the scheduler and run all the jobs in their separate go-routine
func (s *JobsScheduler) Start(ctx context.Context) {
	// Create a span
	tracer := otel.GetTracerProvider()
	_, span := tracer.Tracer("").Start(ctx, "Start")
	defer span.End()

	s.mu.Lock()
	s.stopped = false
	s.mu.Unlock()

	s.scheduler.Start(ctx)
}

// Stop shutdowns the Scheduler gracefully, waiting up to stopTimeout for
// any job in flight to return before giving up on a clean stop.
func (s *JobsScheduler) Stop(ctx context.Context) error {
	// Create a span
	tracer := otel.GetTracerProvider()
	_, span := tracer.Tracer("").Start(ctx, "Stop")
	defer span.End()

	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	stopped := make(chan struct{})
	go func() {
		s.scheduler.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.stopTimeout):
		return fmt.Errorf("scheduler did not stop within %s", s.stopTimeout)
	}
}

// Schedule adds a new Job to the scheduler. It rejects a cronExpression
// go-quartz can't parse, a job whose ID has already been added, and any
// job once the scheduler has been stopped.
func (s *JobsScheduler) Schedule(ctx context.Context, cronExpression string, job Job) error {
	// acquire the lock
	s.mu.Lock()
	// release lock when done
	defer s.mu.Unlock()

	if s.stopped {
		return fmt.Errorf("scheduler is stopped: cannot schedule job (%s)", job.ID())
	}

	// validate the cron expression
	trigger, err := quartz.NewCronTrigger(cronExpression)
	if err != nil {
		// return error
		return err
	}

	// check whether the job has been not been added already
	if _, ok := s.jobs[job.ID()]; ok {
		return fmt.Errorf("job (%s) is already added", job.ID())
	}

	// hook the job execution through the jobAdapter
	adapter := &jobAdapter{job: job, log: s.logger}
	jobDetail := quartz.NewJobDetail(adapter, quartz.NewJobKey(job.ID()))
	if err := s.scheduler.ScheduleJob(jobDetail, trigger); err != nil {
		// return error
		return err
	}

	// let us add the job
	s.jobs[job.ID()] = job
	return nil
}

// Run runs the scheduler by executing all jobs that have been added to it.
func (s *JobsScheduler) Run(ctx context.Context) {
	// start the jobs scheduler
	s.Start(ctx)
	// await signal to shut down
	interruptSignal := make(chan os.Signal, 1)
	signal.Notify(interruptSignal, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	shutdownComplete := make(chan struct{})
	go func() {
		<-interruptSignal
		if err := s.Stop(ctx); err != nil {
			panic(errors.Wrap(err, "unable to shutdown the scheduler service"))
		}
		close(shutdownComplete)
	}()
	<-shutdownComplete
	os.Exit(0)
}
