package icondraft

// History is a linear undo/redo log over immutable Documents.
//
// The log is three sequences: past (oldest first), the present Document, and
// future (nearest undo first). Recording a new revision clears future — there
// is no redo branch after a new edit. The log is unbounded; callers that need
// a cap can drop old entries from a snapshot, but none is imposed here.
//
// History is not safe for concurrent use; the document pipeline it serves is
// single-threaded by design.
type History struct {
	past    []Document
	present Document
	future  []Document
}

// NewHistory creates a history whose present is the given Document.
func NewHistory(doc Document) *History {
	return &History{present: doc}
}

// Present returns the current Document.
func (h *History) Present() Document { return h.present }

// CanUndo reports whether an undo step is available.
func (h *History) CanUndo() bool { return len(h.past) > 0 }

// CanRedo reports whether a redo step is available.
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// Record commits a new revision: the current present moves onto past,
// doc becomes present, and any redo branch is discarded.
func (h *History) Record(doc Document) {
	h.past = append(h.past, h.present)
	h.present = doc
	h.future = nil
}

// Undo moves the most recent past revision into present and reports whether
// anything changed. A no-op when past is empty.
func (h *History) Undo() bool {
	if len(h.past) == 0 {
		return false
	}
	last := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append([]Document{h.present}, h.future...)
	h.present = last
	return true
}

// Redo is the inverse of Undo: it restores the nearest undone revision.
// A no-op when future is empty.
func (h *History) Redo() bool {
	if len(h.future) == 0 {
		return false
	}
	next := h.future[0]
	h.future = h.future[1:]
	h.past = append(h.past, h.present)
	h.present = next
	return true
}
