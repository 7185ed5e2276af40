package checkout

import "sync"

type State string

const (
	StateIdle         State = "idle"
	StateOrderPending State = "order_pending"
	StateGatewayOpen  State = "gateway_open"
	StateVerifying    State = "verifying"
	StateSucceeded    State = "succeeded"
	StateFailed       State = "failed"
)

// flow is the per-session checkout state machine:
// idle -> order_pending -> gateway_open -> verifying -> succeeded|failed.
// Gateway dismissal returns gateway_open to idle with no side effects.
type flow struct {
	state    State
	orderRef string
}

// flows tracks one machine per cart session. Only order_pending and verifying
// are in-flight states; everything else may start a new attempt.
type flows struct {
	mu sync.Mutex
	m  map[string]*flow
}

func newFlows() *flows {
	return &flows{m: make(map[string]*flow)}
}

func (f *flows) get(sessionID string) *flow {
	fl, ok := f.m[sessionID]
	if !ok {
		fl = &flow{state: StateIdle}
		f.m[sessionID] = fl
	}
	return fl
}

// beginStart moves the machine into order_pending if no step is in flight.
func (f *flows) beginStart(sessionID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	fl := f.get(sessionID)
	if fl.state == StateOrderPending || fl.state == StateVerifying {
		return false
	}
	fl.state = StateOrderPending
	fl.orderRef = ""
	return true
}

func (f *flows) openGateway(sessionID, orderRef string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fl := f.get(sessionID)
	fl.state = StateGatewayOpen
	fl.orderRef = orderRef
}

// beginVerify moves the machine into verifying. The gateway callback is
// authoritative: it is accepted from any non-in-flight state so a callback
// arriving after a process view of the flow was lost still resolves.
func (f *flows) beginVerify(sessionID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	fl := f.get(sessionID)
	if fl.state == StateOrderPending || fl.state == StateVerifying {
		return false
	}
	fl.state = StateVerifying
	return true
}

func (f *flows) resolve(sessionID string, terminal State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fl := f.get(sessionID)
	fl.state = terminal
	if terminal != StateGatewayOpen {
		fl.orderRef = ""
	}
}

// cancel handles gateway dismissal: back to idle, no side effects. Dismissing
// when nothing is open is a no-op.
func (f *flows) cancel(sessionID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fl := f.get(sessionID)
	if fl.state == StateGatewayOpen {
		fl.state = StateIdle
		fl.orderRef = ""
	}
}

func (f *flows) state(sessionID string) State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.get(sessionID).state
}
