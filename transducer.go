package bedrockllm

// Default markers delimiting a reasoning region in the normalized output
// stream. The trailing newlines on the close marker keep the visible answer
// from running into the reasoning text in plain renderers.
const (
	ReasoningOpenMarker  = "<think>"
	ReasoningCloseMarker = "\n</think>\n\n"
)

// regionState tracks whether the transducer is currently inside a reasoning
// region. An explicit two-state type rather than a bool: there is no
// nesting, so this is the whole state machine.
type regionState int

const (
	outsideReasoning regionState = iota
	insideReasoning
)

// Transducer turns a heterogeneous provider event stream into a flat text
// stream, wrapping each contiguous run of reasoning deltas in open/close
// markers. Text deltas pass through unchanged; events it does not recognize
// are ignored so a single unexpected event cannot abort an otherwise valid
// stream.
//
// A Transducer is scoped to one streaming session and is not safe for
// concurrent use; drive it from the goroutine that consumes the provider
// stream.
type Transducer struct {
	state regionState
	open  string
	close string
}

// NewTransducer returns a transducer using the default reasoning markers.
func NewTransducer() *Transducer {
	return &Transducer{
		open:  ReasoningOpenMarker,
		close: ReasoningCloseMarker,
	}
}

// NewTransducerWithMarkers returns a transducer using custom marker strings.
// The pair must be fixed for the session; the transducer emits them
// symmetrically (one open implies exactly one later close).
func NewTransducerWithMarkers(open, close string) *Transducer {
	return &Transducer{open: open, close: close}
}

// Step maps one input event to zero or more output fragments, in arrival
// order. It never returns an error: unrecognized event shapes produce no
// fragments and leave the region state untouched.
func (t *Transducer) Step(ev StreamEvent) []string {
	// A block-stop while inside a reasoning region terminates the region.
	// Block-stops outside a region (ends of plain text blocks) are no-ops.
	if ev.BlockStop {
		if t.state == insideReasoning {
			t.state = outsideReasoning
			return []string{t.close}
		}
		return nil
	}

	if ev.Delta == nil {
		return nil
	}

	switch ev.Delta.Kind {
	case DeltaKindReasoning:
		var out []string
		if t.state == outsideReasoning {
			t.state = insideReasoning
			out = append(out, t.open)
		}
		// Empty reasoning payloads still open the region but yield no text.
		if ev.Delta.Text != "" {
			out = append(out, ev.Delta.Text)
		}
		return out

	case DeltaKindText:
		if ev.Delta.Text == "" {
			return nil
		}
		return []string{ev.Delta.Text}

	default:
		return nil
	}
}

// Flush closes a dangling reasoning region at end of stream. Providers
// normally send a block-stop before the stream ends; Flush covers streams
// torn down mid-region so every emitted open marker is matched by a close.
func (t *Transducer) Flush() []string {
	if t.state == insideReasoning {
		t.state = outsideReasoning
		return []string{t.close}
	}
	return nil
}

// InsideReasoning reports whether the transducer is currently inside a
// reasoning region.
func (t *Transducer) InsideReasoning() bool {
	return t.state == insideReasoning
}

// Fragments applies a Transducer over a provider event stream, producing the
// normalized lazy text stream consumed by streaming callers. The returned
// channel is closed when the event channel closes; a dangling reasoning
// region is flushed first. Event errors terminate the fragment stream (the
// caller tears down the underlying network stream via its context).
func Fragments(events <-chan StreamEvent) <-chan string {
	out := make(chan string, 10)

	go func() {
		defer close(out)

		t := NewTransducer()
		for ev := range events {
			if ev.Err != nil {
				return
			}
			for _, frag := range t.Step(ev) {
				out <- frag
			}
		}
		for _, frag := range t.Flush() {
			out <- frag
		}
	}()

	return out
}
