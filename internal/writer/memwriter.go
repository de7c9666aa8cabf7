package writer

// MemWriter captures save bytes in memory. Used by tests and callers that
// serialize without touching disk.
type MemWriter struct {
	Buf []byte
}

// WriteSave stores a copy of the provided buffer.
func (w *MemWriter) WriteSave(b []byte) error {
	w.Buf = append(w.Buf[:0], b...)
	return nil
}
