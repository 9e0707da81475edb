package reciprocal

import (
	"golang.org/x/sync/errgroup"

	"github.com/agbru/recipsum/internal/parallel"
)

// executeTasks runs every task on a pool of at most workers goroutines and
// returns after all of them have finished. A panicking task is reported as
// a *parallel.PanicError; the remaining tasks still run to completion.
func executeTasks(tasks []sumTask, workers int) error {
	if len(tasks) == 0 {
		return nil
	}
	if len(tasks) == 1 || workers <= 1 {
		return executeInline(tasks)
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range tasks {
		t := &tasks[i]
		g.Go(func() (err error) {
			defer func() {
				if p := recover(); p != nil {
					err = parallel.RecoverAsError(p)
				}
			}()
			t.compute()
			return nil
		})
	}
	return g.Wait()
}

func executeInline(tasks []sumTask) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = parallel.RecoverAsError(p)
		}
	}()
	for i := range tasks {
		tasks[i].compute()
	}
	return nil
}
