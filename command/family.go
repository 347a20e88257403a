package command

// Family is a group of queues sharing the same capabilities.
// It is the only way to create a Queue.
type Family struct {
	id     FamilyID
	caps   Capability
	queues []*Queue
}

// NewFamily creates a family with one queue per native queue, indexed in
// the order given.
func NewFamily(id FamilyID, caps Capability, raws ...RawQueue) *Family {
	f := &Family{
		id:     id,
		caps:   caps,
		queues: make([]*Queue, len(raws)),
	}
	for i, raw := range raws {
		f.queues[i] = newQueue(raw, QueueID{Family: id, Index: i})
	}
	slogger().Debug("command: family created", "family", id, "capability", caps.String(), "queues", len(raws))
	return f
}

// ID returns the family identifier.
func (f *Family) ID() FamilyID { return f.id }

// Capability returns the operations supported by the family's queues.
func (f *Family) Capability() Capability { return f.caps }

// Len returns the number of queues.
func (f *Family) Len() int { return len(f.queues) }

// Queue returns the queue at index i. It panics if i is out of range.
func (f *Family) Queue(i int) *Queue { return f.queues[i] }

// Queues returns the family's queues. The slice must not be modified.
func (f *Family) Queues() []*Queue { return f.queues }
