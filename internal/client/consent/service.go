// Package consent drives the consent-disclosure review workflow: listing,
// filtering, and the pending-to-approved and pending-to-rejected transitions.
package consent

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"github.com/google/uuid"

	"github.com/linkledger/lenderctl/internal/common"
)

// API is the slice of the gateway the workflow needs.
type API interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// ListResult carries the server-ordered records together with the request
// tag that identifies this dispatch. A result whose tag is no longer current
// must be discarded, not rendered.
type ListResult struct {
	Tag     string
	Records []Record
}

type Service struct {
	api API

	mu         sync.Mutex
	currentTag string
}

func NewService(api API) *Service {
	return &Service{api: api}
}

// List fetches consent records filtered by status and, optionally, by a
// 9-digit identity key. A malformed identity filter is rejected locally and
// no request is issued. Records come back in server order; the caller must
// not resort them.
func (s *Service) List(ctx context.Context, status Status, nationalID string) (ListResult, error) {
	if nationalID != "" && !common.ValidNationalID(nationalID) {
		return ListResult{}, common.ErrInvalidNationalID
	}

	tag := uuid.NewString()
	s.mu.Lock()
	s.currentTag = tag
	s.mu.Unlock()

	q := url.Values{}
	q.Set("status", string(status))
	if nationalID != "" {
		q.Set("nationalId", nationalID)
	}

	var records []Record
	if err := s.api.Do(ctx, http.MethodGet, "/api/admin/consents?"+q.Encode(), nil, &records); err != nil {
		return ListResult{}, err
	}
	return ListResult{Tag: tag, Records: records}, nil
}

// Current reports whether tag identifies the most recent List dispatch.
// A newer dispatch supersedes older in-flight ones; their late results are
// stale and must not overwrite rendered state.
func (s *Service) Current(tag string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentTag == tag
}

type transitionRequest struct {
	ConsentStatus Status `json:"consentStatus"`
	Notes         string `json:"notes"`
}

// Transition requests a single pending-to-target move with optional free-text
// notes (empty allowed). There is no optimistic local mutation: on success
// the caller re-lists, so displayed state always matches a server read. On
// failure the prior listing stands and the record remains actionable.
func (s *Service) Transition(ctx context.Context, id string, target Status, notes string) error {
	if target != StatusApproved && target != StatusRejected {
		return common.ErrInvalidStatus
	}
	return s.api.Do(ctx, http.MethodPatch, "/api/admin/consents/"+id,
		transitionRequest{ConsentStatus: target, Notes: notes}, nil)
}
