package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSearchStart EventType = "search_start"
	EventPartition   EventType = "partition"
	EventEquation    EventType = "equation"
	EventSearchEnd   EventType = "search_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// SearchEvent marks the start of a search.
type SearchEvent struct {
	EventBase
	Input  string        `json:"input"`
	Digits DigitSequence `json:"digits"`
}

// PartitionEvent marks a partition being dispatched for search.
type PartitionEvent struct {
	EventBase
	Partition Partition `json:"partition"`
	Index     int       `json:"index"`
	Total     int       `json:"total"`
}

// EquationEvent carries a deduplicated equation as the merge emits it.
type EquationEvent struct {
	EventBase
	Equation Equation `json:"equation"`
}

// SearchEndEvent closes a search, successful or not.
type SearchEndEvent struct {
	EventBase
	Stats SearchStats `json:"stats"`
	Err   error       `json:"-"`
}

// LifecycleHooks defines callbacks for search observability. All fields
// are optional. Hooks are invoked from the goroutine running the search
// (partition dispatch and result merge are serial), never concurrently.
type LifecycleHooks struct {
	OnSearchStart func(context.Context, *SearchEvent)
	OnPartition   func(context.Context, *PartitionEvent)
	OnEquation    func(context.Context, *EquationEvent)
	OnSearchEnd   func(context.Context, *SearchEndEvent)
}

// MergeHooks chains two hook sets, invoking a's callback before b's.
func MergeHooks(a, b LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnSearchStart: mergeHook(a.OnSearchStart, b.OnSearchStart),
		OnPartition:   mergeHook(a.OnPartition, b.OnPartition),
		OnEquation:    mergeHook(a.OnEquation, b.OnEquation),
		OnSearchEnd:   mergeHook(a.OnSearchEnd, b.OnSearchEnd),
	}
}

func mergeHook[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
