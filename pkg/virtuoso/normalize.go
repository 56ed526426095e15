package virtuoso

import "github.com/saturnines/nexus-sparql/pkg/results"

// ackPath is where Virtuoso puts the message for an update, e.g.
// "Insert into <g>, 3 (or less) triples -- done"
const ackPath = "results.bindings.0.callret-0.value"

// acknowledgement returns the store's update message, or nil when the body
// does not carry one
func acknowledgement(body []byte) *string {
	msg, ok := results.DigString(body, ackPath)
	if !ok {
		return nil
	}
	return &msg
}
