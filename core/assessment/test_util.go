package assessment

import (
	"context"
	"sync"
)

// SubmitterMock records submissions, and the state of their contexts, and answers with Err.
type SubmitterMock struct {
	Err error

	mu       sync.Mutex
	Requests []Request
	CtxErrs  []error
}

var _ Submitter = (*SubmitterMock)(nil)

func (s *SubmitterMock) Submit(ctx context.Context, endpoint string, payload interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Requests = append(s.Requests, Request{Endpoint: endpoint, Payload: payload})
	s.CtxErrs = append(s.CtxErrs, ctx.Err())
	return s.Err
}

func (s *SubmitterMock) Sent() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.Requests...)
}

// NotifierMock records every notice.
type NotifierMock struct {
	mu      sync.Mutex
	Notices []Notice
}

var _ Notifier = (*NotifierMock)(nil)

func (n *NotifierMock) Notify(_ string, notice Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Notices = append(n.Notices, notice)
}

func (n *NotifierMock) Received() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notice(nil), n.Notices...)
}
