package usecase

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	"monitoring_tunggakan/internal/domain/entities"
	"monitoring_tunggakan/internal/pkg/logger"
	"monitoring_tunggakan/internal/usecase/interfaces"
)

const MsgListingFailed = "Failed to load data"

// ListingState is the view state of the unpaid-account listing.
type ListingState struct {
	Query   entities.ListingQuery
	Loading bool
	Error   string
	Result  entities.ListingResult
	Loaded  bool
}

// Rows returns the rows to render. Nothing is rendered while an error is set.
func (s ListingState) Rows() []entities.AccountRecord {
	if s.Error != "" || !s.Loaded {
		return nil
	}
	return s.Result.Data
}

func (s ListingState) TotalPages() int {
	return s.Result.TotalPages()
}

func (s ListingState) CanGoPrev() bool {
	return entities.CanGoPrev(s.Query.Page)
}

func (s ListingState) CanGoNext() bool {
	return entities.CanGoNext(s.Query.Page, s.TotalPages())
}

type IListingEngine interface {
	Refresh(ctx context.Context) (ListingState, error)
	Search(ctx context.Context, term string) (ListingState, error)
	ClearSearch(ctx context.Context) (ListingState, error)
	SetPage(ctx context.Context, page int) (ListingState, error)
	State() ListingState
}

// ListingEngine fetches "sisalist" pages. Every fetch is tagged with a
// sequence number; starting a fetch cancels the previous one and only the
// response of the latest fetch is applied.
type ListingEngine struct {
	gateway interfaces.IBillingGateway
	session entities.Session

	mu     sync.Mutex
	state  ListingState
	seq    uint64
	cancel context.CancelFunc
}

var _ IListingEngine = (*ListingEngine)(nil)

func NewListingEngine(gateway interfaces.IBillingGateway, session entities.Session) *ListingEngine {
	return &ListingEngine{
		gateway: gateway,
		session: session,
		state:   ListingState{Query: entities.NewListingQuery()},
	}
}

// NewListingEngineAt starts from an existing query (e.g. one decoded from a URL).
func NewListingEngineAt(gateway interfaces.IBillingGateway, session entities.Session, q entities.ListingQuery) *ListingEngine {
	e := NewListingEngine(gateway, session)
	if q.Page < 1 {
		q.Page = 1
	}
	q.PageSize = entities.PageSize
	e.state.Query = q
	return e
}

func (e *ListingEngine) State() ListingState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Refresh fetches the current query again.
func (e *ListingEngine) Refresh(ctx context.Context) (ListingState, error) {
	return e.fetch(ctx, e.State().Query)
}

// Search trims term and fetches page 1. An empty term is ClearSearch.
func (e *ListingEngine) Search(ctx context.Context, term string) (ListingState, error) {
	q := e.State().Query.WithSearch(term)
	return e.fetch(ctx, q)
}

func (e *ListingEngine) ClearSearch(ctx context.Context) (ListingState, error) {
	return e.fetch(ctx, e.State().Query.WithSearch(""))
}

func (e *ListingEngine) SetPage(ctx context.Context, page int) (ListingState, error) {
	return e.fetch(ctx, e.State().Query.WithPage(page))
}

func (e *ListingEngine) fetch(ctx context.Context, q entities.ListingQuery) (ListingState, error) {
	token, ok := e.session.Token()
	if !ok {
		return e.State(), ErrSessionAbsent
	}

	e.mu.Lock()
	e.seq++
	seq := e.seq
	if e.cancel != nil {
		e.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.state.Query = q
	e.state.Loading = true
	e.state.Error = ""
	e.mu.Unlock()

	raw, err := e.gateway.Call(fetchCtx, entities.GatewayRequest{
		Operation: entities.OpSisaList,
		Params: map[string]string{
			"page":  strconv.Itoa(q.Page),
			"limit": strconv.Itoa(entities.PageSize),
			"q":     q.SearchTerm,
			"token": token,
		},
	})

	e.mu.Lock()
	defer e.mu.Unlock()

	if seq != e.seq {
		logger.FromContext(ctx).Debug().Uint64("seq", seq).Msg("[listing][usecase] stale response discarded")
		return e.state, nil
	}
	cancel()
	e.cancel = nil
	e.state.Loading = false

	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Int("page", q.Page).Msg("[listing][usecase] fetch failed")
		e.state.Error = entities.ErrorMessage(err, MsgListingFailed)
		return e.state, nil
	}

	var result entities.ListingResult
	if err := json.Unmarshal(raw, &result); err != nil {
		e.state.Error = MsgListingFailed
		return e.state, nil
	}
	e.state.Result = result
	e.state.Loaded = true
	return e.state, nil
}
