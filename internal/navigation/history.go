package navigation

// History is the append-only entry log. With a positive capacity it is a
// ring buffer that overwrites the oldest entry once full; with zero it grows
// without bound.
type History struct {
	buf      []HistoryEntry
	head     int // index of the oldest entry
	size     int
	capacity int
}

// NewHistory creates a history. capacity <= 0 means unbounded.
func NewHistory(capacity int) *History {
	if capacity < 0 {
		capacity = 0
	}
	h := &History{capacity: capacity}
	if capacity > 0 {
		h.buf = make([]HistoryEntry, capacity)
	}
	return h
}

// Len returns the number of entries held.
func (h *History) Len() int { return h.size }

// Capacity returns the bound, or 0 when unbounded.
func (h *History) Capacity() int { return h.capacity }

// Push appends e, evicting the oldest entry if the buffer is full.
// It reports whether an entry was evicted.
func (h *History) Push(e HistoryEntry) bool {
	if h.capacity == 0 {
		h.buf = append(h.buf, e)
		h.size++
		return false
	}
	if h.size < h.capacity {
		h.buf[(h.head+h.size)%h.capacity] = e
		h.size++
		return false
	}
	h.buf[h.head] = e
	h.head = (h.head + 1) % h.capacity
	return true
}

// Pop removes and returns the newest entry.
func (h *History) Pop() (HistoryEntry, bool) {
	if h.size == 0 {
		return HistoryEntry{}, false
	}
	i := h.index(h.size - 1)
	e := h.buf[i]
	h.buf[i] = HistoryEntry{}
	h.size--
	if h.capacity == 0 {
		h.buf = h.buf[:h.size]
	}
	return e, true
}

// At returns the i-th entry, oldest first.
func (h *History) At(i int) (HistoryEntry, bool) {
	if i < 0 || i >= h.size {
		return HistoryEntry{}, false
	}
	return h.buf[h.index(i)], true
}

// Last returns the newest entry.
func (h *History) Last() (HistoryEntry, bool) {
	return h.At(h.size - 1)
}

// LastOverlay returns the newest entry marked as an overlay opening.
func (h *History) LastOverlay() (HistoryEntry, bool) {
	for i := h.size - 1; i >= 0; i-- {
		if e := h.buf[h.index(i)]; e.Overlay {
			return e, true
		}
	}
	return HistoryEntry{}, false
}

// Entries returns a copy, oldest first.
func (h *History) Entries() []HistoryEntry {
	out := make([]HistoryEntry, h.size)
	for i := range h.size {
		out[i] = h.buf[h.index(i)]
	}
	return out
}

// Clear drops every entry and keeps the capacity.
func (h *History) Clear() {
	*h = *NewHistory(h.capacity)
}

func (h *History) index(i int) int {
	if h.capacity == 0 {
		return i
	}
	return (h.head + i) % h.capacity
}
