package richdoc

// ChangeKind identifies the mutation that produced a Change.
type ChangeKind int

const (
	// ChangeReplace indicates the content was replaced wholesale.
	ChangeReplace ChangeKind = iota

	// ChangeTypography indicates ApplyTypography rewrote fonts and colors.
	ChangeTypography

	// ChangeFlush indicates the content was reset to empty.
	ChangeFlush
)

// String returns the change kind name.
func (k ChangeKind) String() string {
	switch k {
	case ChangeReplace:
		return "replace"
	case ChangeTypography:
		return "typography"
	case ChangeFlush:
		return "flush"
	default:
		return "unknown"
	}
}

// Change describes one completed mutation.
type Change struct {
	// Kind is the type of mutation.
	Kind ChangeKind

	// Document is the mutated document. Its content already reflects the change.
	Document *Document
}

// Observer is called synchronously after each mutation.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	doc      *Document
	observer Observer
	active   bool
}

// Unsubscribe removes this subscription. It is safe to call more than once
// and from inside an observer; an observer removed during a notification is
// not called for the rest of it.
func (s *Subscription) Unsubscribe() {
	if s == nil || !s.active {
		return
	}
	s.active = false
	subs := s.doc.subs
	for i, sub := range subs {
		if sub == s {
			s.doc.subs = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
}

// Subscribe registers an observer for every subsequent mutation. Observers
// are called in subscription order. An observer added during a
// notification is first called for the next one.
func (d *Document) Subscribe(observer Observer) *Subscription {
	s := &Subscription{doc: d, observer: observer, active: observer != nil}
	if s.active {
		d.subs = append(d.subs, s)
	}
	return s
}

// notify delivers one change to the observers registered when it started.
func (d *Document) notify(kind ChangeKind) {
	if len(d.subs) == 0 {
		return
	}
	snapshot := append([]*Subscription(nil), d.subs...)
	change := Change{Kind: kind, Document: d}
	for _, s := range snapshot {
		if s.active {
			s.observer(change)
		}
	}
}
