package common

// MultiSink fans a single emitted event out to every wrapped EventSink,
// in order. It exists so a run can be observed by an in-process router
// and recorded to a durable trace at the same time, without either
// collaborator knowing about the other.
type MultiSink []EventSink

func NewMultiSink(sinks ...EventSink) MultiSink {
	return MultiSink(sinks)
}

func (m MultiSink) Emit(event any) {
	for _, s := range m {
		if s != nil {
			s.Emit(event)
		}
	}
}
