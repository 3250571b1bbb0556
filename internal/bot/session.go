package bot

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Canyildiz1386/SultanPanelBot/internal/smm"
)

// State says which free-text input a chat's conversation expects next.
// Exactly one state is active per chat; callback buttons route
// independently of it.
type State int

const (
	StateIdle State = iota

	// order flow
	StateAwaitingLink
	StateAwaitingQuantity
	StateAwaitingOrderID

	// credit top-up flow
	StateAwaitingCustomAmount
	StateAwaitingDiscountCode

	// user requests
	StateAwaitingSalesFigure
	StateAwaitingTicketTitle
	StateAwaitingTicketDescription

	// admin inputs
	StateAwaitingTicketReply
	StateAwaitingConversionRate
	StateAwaitingUnitValue
	StateAwaitingOffCode
	StateAwaitingOffPercent
	StateAwaitingOffCodeDeletion
	StateAwaitingBroadcast
)

// platformGroup is one social platform's slice of the catalog.
type platformGroup struct {
	Name     string
	Services []smm.Service
}

// categoryGroup is one remote category's slice of a platform.
type categoryGroup struct {
	Name     string
	Services []smm.Service
}

// Session is the ephemeral per-chat conversation state. It lives only in
// memory: restarting the process drops every in-flight flow back to the
// main menu, which matches how shallow these flows are.
type Session struct {
	mu sync.Mutex

	State State

	// order flow selections
	Platforms   []platformGroup
	PlatformIdx int
	Categories  []categoryGroup
	ServiceID   string
	Link        string
	Page        int

	// top-up selections
	AmountUSD decimal.Decimal

	// ticket drafting
	TicketTitle        string
	RespondingTicketID uint

	// admin inputs
	OffCode           string
	BroadcastToAdmins bool
}

// Lock gives the calling handler exclusive access to this chat's state.
// Handlers hold it for their whole run, so two updates from the same
// chat can never interleave mid-flow.
func (s *Session) Lock() { s.mu.Lock() }

func (s *Session) Unlock() { s.mu.Unlock() }

// Reset drops the session back to idle, clearing all transient
// selections. The handler that consumes an input calls this.
func (s *Session) Reset() {
	s.State = StateIdle
	s.Platforms = nil
	s.PlatformIdx = 0
	s.Categories = nil
	s.ServiceID = ""
	s.Link = ""
	s.Page = 0
	s.AmountUSD = decimal.Zero
	s.TicketTitle = ""
	s.RespondingTicketID = 0
	s.OffCode = ""
	s.BroadcastToAdmins = false
}

// Sessions hands out per-chat sessions, creating them on first use.
// Orphaned sessions are overwritten by the next flow; there is no
// timeout sweep.
type Sessions struct {
	mu sync.Mutex
	m  map[int64]*Session
}

func NewSessions() *Sessions {
	return &Sessions{m: make(map[int64]*Session)}
}

// Get returns the chat's session, creating it if needed. The caller is
// responsible for locking it.
func (s *Sessions) Get(chatID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.m[chatID]
	if !ok {
		sess = &Session{}
		s.m[chatID] = sess
	}
	return sess
}
