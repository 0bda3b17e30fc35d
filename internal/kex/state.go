package kex

// State tracks a handshake attempt. Transitions are one-way:
//
//	Idle -> InitSent    -> NewKeysSent -> Established   (client)
//	Idle -> WaitingInit -> NewKeysSent -> Established   (server)
//
// Error absorbs from any non-terminal state; a failed handshake is
// restarted from scratch, never resumed.
type State int

const (
	StateIdle State = iota
	StateInitSent
	StateWaitingInit
	StateNewKeysSent
	StateEstablished
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInitSent:
		return "init-sent"
	case StateWaitingInit:
		return "waiting-init"
	case StateNewKeysSent:
		return "newkeys-sent"
	case StateEstablished:
		return "established"
	case StateError:
		return "error"
	}
	return "unknown"
}
