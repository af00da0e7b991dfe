package service

import (
	"context"
	"time"
)

// Phase is one step of the scripted authorization wait.
type Phase struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Description string `json:"description"`
	Terminal    bool   `json:"terminal"`
}

var (
	phasePreparing = Phase{
		Status:      "preparing",
		Message:     "Please wait...",
		Description: "We are preparing your application profile.",
	}
	phaseContacting = Phase{
		Status:      "contacting",
		Message:     "Contacting server 30%...",
		Description: "The system is evaluating your loan eligibility and limit.",
	}
	phaseApproved = Phase{
		Status:      "approved",
		Message:     "Approved",
		Description: "Eligibility Successful. You qualify for a loan!",
		Terminal:    true,
	}
)

// Authorizer runs the scripted "contacting server" wait that stands in for
// an asynchronous eligibility check. It writes nothing to the store; all
// persistence happens at the step that triggered the authorization.
type Authorizer struct {
	contactAfter time.Duration
	approveAfter time.Duration
}

func NewAuthorizer(contactAfter, approveAfter time.Duration) *Authorizer {
	return &Authorizer{contactAfter: contactAfter, approveAfter: approveAfter}
}

// Watch emits the phase sequence on the returned channel: preparing
// immediately, contacting and approved after their delays. The channel is
// closed after the terminal phase, or as soon as ctx is cancelled, which
// also stops the pending timers.
func (a *Authorizer) Watch(ctx context.Context) <-chan Phase {
	out := make(chan Phase, 3)

	go func() {
		defer close(out)

		contact := time.NewTimer(a.contactAfter)
		defer contact.Stop()
		approve := time.NewTimer(a.approveAfter)
		defer approve.Stop()

		select {
		case out <- phasePreparing:
		case <-ctx.Done():
			return
		}

		select {
		case <-contact.C:
		case <-ctx.Done():
			return
		}
		select {
		case out <- phaseContacting:
		case <-ctx.Done():
			return
		}

		select {
		case <-approve.C:
		case <-ctx.Done():
			return
		}
		select {
		case out <- phaseApproved:
		case <-ctx.Done():
		}
	}()

	return out
}
