package reciprocal

// sumTask sums the reciprocals of one chunk of the input. The task only
// reads input; value is written by the goroutine running compute and read
// by the caller after the join.
type sumTask struct {
	input []float64
	chunk Chunk
	value float64
}

func (t *sumTask) compute() {
	t.value = sumRange(t.input, t.chunk.Start, t.chunk.End)
}

// sumRange returns sum(1/input[i]) for i in [start, end), accumulated in
// index order.
func sumRange(input []float64, start, end int) float64 {
	var sum float64
	for _, x := range input[start:end] {
		sum += 1 / x
	}
	return sum
}

// newTasks builds one task per chunk of a taskCount-way partition of input.
func newTasks(input []float64, taskCount int) []sumTask {
	chunks := Partition(taskCount, len(input))
	tasks := make([]sumTask, len(chunks))
	for i, c := range chunks {
		tasks[i] = sumTask{input: input, chunk: c}
	}
	return tasks
}

// combine adds partial sums in task-index order so that a given
// (input, taskCount) pair always produces the same result.
func combine(tasks []sumTask) float64 {
	var sum float64
	for i := range tasks {
		sum += tasks[i].value
	}
	return sum
}
