package lifecycle

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jcmexdev/storefront/internal/cancellog"
	"github.com/jcmexdev/storefront/internal/storefront/core/ports"
)

// PromptState is the client-side state of the cancellation dialog.
type PromptState string

const (
	PromptClosed     PromptState = "closed"
	PromptOpen       PromptState = "open"
	PromptSubmitting PromptState = "submitting"
)

var (
	// ErrNoOpenRequest is returned when Submit is called with no open prompt.
	ErrNoOpenRequest = errors.New("lifecycle: no open cancellation request")

	// ErrReasonRequired rejects an empty reason client-side; the submission
	// never reaches the network.
	ErrReasonRequired = errors.New("lifecycle: cancellation reason is required")

	// ErrSubmitInFlight is returned when a submission is already running.
	ErrSubmitInFlight = errors.New("lifecycle: cancellation submission already in flight")
)

// Prompt drives the cancellation submission state machine:
//
//	Closed → Open (awaiting reason) → Submitting → Closed on success
//	                                            → Open with error on failure
//
// Only one request may be open at a time. Opening a request for a different
// order while one is open replaces it outright; a submission still in flight
// for the replaced request has its outcome discarded.
//
// Each transition is appended to the audit log when one is configured.
type Prompt struct {
	service ports.CancellationService
	log     cancellog.Repository // nil-safe: transitions are not persisted if nil

	mu        sync.Mutex
	state     PromptState
	gen       uint64 // bumped on every Open/Close; in-flight submissions compare against it
	requestID string
	orderID   string
	lastErr   error
}

// NewPrompt builds a closed prompt submitting through the given service.
func NewPrompt(service ports.CancellationService, log cancellog.Repository) *Prompt {
	return &Prompt{service: service, log: log, state: PromptClosed}
}

// Open starts a cancellation request for the given order, replacing any open
// request. There is no queueing.
func (p *Prompt) Open(ctx context.Context, orderID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != PromptClosed {
		p.record(ctx, cancellog.NewEntry(ctx, p.requestID, p.orderID, cancellog.StateReplaced, "", ""))
	}

	p.gen++
	p.state = PromptOpen
	p.requestID = uuid.NewString()
	p.orderID = orderID
	p.lastErr = nil

	p.record(ctx, cancellog.NewEntry(ctx, p.requestID, orderID, cancellog.StateOpened, "", ""))
}

// Submit sends the open request with the given reason. An empty reason is
// rejected before any network call. On success the prompt closes; on failure
// it reopens carrying the error for the caller to display.
func (p *Prompt) Submit(ctx context.Context, reason string) error {
	p.mu.Lock()
	switch p.state {
	case PromptClosed:
		p.mu.Unlock()
		return ErrNoOpenRequest
	case PromptSubmitting:
		p.mu.Unlock()
		return ErrSubmitInFlight
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		p.mu.Unlock()
		return ErrReasonRequired
	}

	gen := p.gen
	requestID := p.requestID
	orderID := p.orderID
	p.state = PromptSubmitting
	p.record(ctx, cancellog.NewEntry(ctx, requestID, orderID, cancellog.StateSubmitting, reason, ""))
	p.mu.Unlock()

	err := p.service.RequestCancellation(ctx, orderID, reason)

	p.mu.Lock()
	defer p.mu.Unlock()

	// The prompt was replaced or dismissed while the call was in flight;
	// only the most recent request's outcome may be applied.
	if p.gen != gen {
		return err
	}

	if err != nil {
		p.state = PromptOpen
		p.lastErr = err
		p.record(ctx, cancellog.NewEntry(ctx, requestID, orderID, cancellog.StateFailed, reason, err.Error()))
		return err
	}

	p.state = PromptClosed
	p.requestID = ""
	p.orderID = ""
	p.record(ctx, cancellog.NewEntry(ctx, requestID, orderID, cancellog.StateSucceeded, reason, ""))
	return nil
}

// Dismiss closes the prompt without submitting. A submission in flight has
// its outcome discarded.
func (p *Prompt) Dismiss(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == PromptClosed {
		return
	}

	p.record(ctx, cancellog.NewEntry(ctx, p.requestID, p.orderID, cancellog.StateReplaced, "", ""))
	p.gen++
	p.state = PromptClosed
	p.requestID = ""
	p.orderID = ""
	p.lastErr = nil
}

// State returns the current prompt state.
func (p *Prompt) State() PromptState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// OrderID returns the order the open request targets, or "".
func (p *Prompt) OrderID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.orderID
}

// Err returns the last submission failure, or nil.
func (p *Prompt) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// record appends a transition to the audit log, best effort. The caller must
// hold p.mu.
func (p *Prompt) record(ctx context.Context, entry *cancellog.Entry) {
	if p.log == nil {
		return
	}
	_ = p.log.Save(ctx, entry)
}
