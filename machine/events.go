package machine

import "github.com/tailored-agentic-units/statekit/observability"

// Machine event types.
const (
	EventReduce      observability.EventType = "machine.reduce"
	EventJobStart    observability.EventType = "machine.job.start"
	EventJobComplete observability.EventType = "machine.job.complete"
	EventJobCancel   observability.EventType = "machine.job.cancel"
	EventUpdate      observability.EventType = "machine.update"
	EventUpdateDrop  observability.EventType = "machine.update.drop"
	EventRollback    observability.EventType = "machine.rollback"
	EventClose       observability.EventType = "machine.close"
)
