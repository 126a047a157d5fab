package webhook

// SelectAll is the wildcard selector. A filter containing it retains every
// event, including kinds outside the known taxonomy.
const SelectAll = "*"

// Match checks if an event type tag matches a selector.
//
// Supported selectors:
//
//	"message"  → exact match on the raw tag
//	"*"        → matches everything
//
// Comparison is by raw string so that future platform event types remain
// selectable before this package learns about them.
func Match(selector string, kind Kind) bool {
	if selector == SelectAll {
		return true
	}

	return selector == string(kind)
}

// Filter retains the events whose type matches any of the selectors,
// preserving the original order. An empty selector list retains nothing;
// a list containing SelectAll retains everything.
func Filter(events []Event, selectors []string) []Event {
	kept := make([]Event, 0, len(events))

	for _, evt := range events {
		for _, sel := range selectors {
			if Match(sel, evt.Type) {
				kept = append(kept, evt)
				break
			}
		}
	}

	return kept
}
