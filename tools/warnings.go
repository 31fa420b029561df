package tools

// warnings collects non-fatal conditions for one tool call. Each condition
// type is reported at most once per call so bulk operations do not spam one
// warning per clip.
type warnings struct {
	seen     map[string]bool
	messages []string
}

func newWarnings() *warnings {
	return &warnings{seen: map[string]bool{}}
}

// addOnce records msg under a condition key, dropping repeats of the key.
func (w *warnings) addOnce(key, msg string) {
	if w.seen[key] {
		return
	}
	w.seen[key] = true
	w.messages = append(w.messages, msg)
}

// add records msg unconditionally, deduplicating exact repeats.
func (w *warnings) add(msg string) {
	w.addOnce(msg, msg)
}

// extend merges messages produced by a lower layer.
func (w *warnings) extend(msgs []string) {
	for _, m := range msgs {
		w.add(m)
	}
}

func (w *warnings) list() []string {
	return w.messages
}
