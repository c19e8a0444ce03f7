package reconcile

// Progress describes the engine's position after one build was processed.
type Progress struct {
	Job         string
	BuildNumber int
	// Completed counts the builds processed so far out of Total, across
	// every window of the current operation.
	Completed int
	Total     int
	// Skipped is set when the build did not exist.
	Skipped bool
}

// Observer is notified after every build the engine processed, in order.
type Observer interface {
	BuildProcessed(Progress)
}

type ObserverFunc func(Progress)

func (f ObserverFunc) BuildProcessed(p Progress) {
	f(p)
}

// Observers notifies each observer in turn.
type Observers []Observer

func (o Observers) BuildProcessed(p Progress) {
	for _, observer := range o {
		observer.BuildProcessed(p)
	}
}

type noopObserver struct{}

func (noopObserver) BuildProcessed(Progress) {}

type tracker struct {
	observer  Observer
	completed int
	total     int
}

func (t *tracker) processed(job string, number int, skipped bool) {
	t.completed++
	t.observer.BuildProcessed(Progress{
		Job:         job,
		BuildNumber: number,
		Completed:   t.completed,
		Total:       t.total,
		Skipped:     skipped,
	})
}
