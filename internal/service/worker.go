package service

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// TaskError accumulates multiple errors produced during bulk seeding.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	b.WriteString("multiple errors:")
	for _, err := range e.Errors {
		b.WriteString(" ")
		b.WriteString(err.Error())
		b.WriteString(";")
	}
	return b.String()
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *TaskError) Unwrap() []error {
	return e.Errors
}

func (e *TaskError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// BulkCreator feeds many texts into the message service from a worker pool.
// Workers still queue on the service gate, so at most one create reaches the
// graph at a time.
type BulkCreator struct {
	service *MessageService
	workers int
}

// NewBulkCreator creates a new BulkCreator with the provided concurrency.
func NewBulkCreator(service *MessageService, workers int) *BulkCreator {
	if workers <= 0 {
		workers = 4
	}
	return &BulkCreator{
		service: service,
		workers: workers,
	}
}

// CreateAll creates one message per text. Successful ids are returned in the
// order of texts; failed slots stay empty.
func (bc *BulkCreator) CreateAll(ctx context.Context, texts []string) ([]string, error) {
	ids := make([]string, len(texts))
	err := bc.run(ctx, len(texts), func(idx int) error {
		msg, err := bc.service.CreateMessage(ctx, texts[idx])
		if err != nil {
			return err
		}
		ids[idx] = msg.ID
		return nil
	})
	return ids, err
}

func (bc *BulkCreator) run(ctx context.Context, total int, workerFn func(idx int) error) error {
	if total == 0 {
		return nil
	}
	indexCh := make(chan int)
	errCh := make(chan error, total)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range indexCh {
			if err := workerFn(idx); err != nil {
				errCh <- err
			}
		}
	}

	for i := 0; i < bc.workers; i++ {
		wg.Add(1)
		go worker()
	}

Loop:
	for i := 0; i < total; i++ {
		select {
		case indexCh <- i:
		case <-ctx.Done():
			break Loop
		}
	}
	close(indexCh)
	wg.Wait()
	close(errCh)

	var taskErr TaskError
	for err := range errCh {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		taskErr.append(err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return taskErr.asError()
}
