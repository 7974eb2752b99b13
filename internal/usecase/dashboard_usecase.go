package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"monitoring_tunggakan/internal/domain/entities"
	"monitoring_tunggakan/internal/pkg/logger"
	"monitoring_tunggakan/internal/usecase/interfaces"
)

const MsgDashboardFailed = "Failed to load dashboard"

var ErrFetchInFlight = errors.New("dashboard fetch already in flight")

// DashboardState is the view state of the dashboard.
//
// Snapshot keeps the last good payload even after a failed refresh; views
// render Error instead of it while Error is set.
type DashboardState struct {
	Loading    bool
	Refreshing bool
	Error      string
	Snapshot   entities.DashboardSnapshot
	Loaded     bool
}

// Classification of the current snapshot's performance.
func (s DashboardState) Classification() entities.Classification {
	return entities.Classify(s.Snapshot.Performance)
}

func (s DashboardState) Progress() float64 {
	return entities.ProgressValue(s.Snapshot.Performance)
}

type IDashboardAggregator interface {
	Load(ctx context.Context, force bool) (DashboardState, error)
	State() DashboardState
}

type DashboardAggregator struct {
	gateway interfaces.IBillingGateway
	session entities.Session

	mu    sync.Mutex
	state DashboardState
}

var _ IDashboardAggregator = (*DashboardAggregator)(nil)

func NewDashboardAggregator(gateway interfaces.IBillingGateway, session entities.Session) *DashboardAggregator {
	return &DashboardAggregator{gateway: gateway, session: session}
}

func (d *DashboardAggregator) State() DashboardState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Load fetches the snapshot. force asks the backend to recompute it.
func (d *DashboardAggregator) Load(ctx context.Context, force bool) (DashboardState, error) {
	token, ok := d.session.Token()
	if !ok {
		return d.State(), ErrSessionAbsent
	}

	d.mu.Lock()
	if d.state.Loading || d.state.Refreshing {
		st := d.state
		d.mu.Unlock()
		return st, ErrFetchInFlight
	}
	if force {
		d.state.Refreshing = true
	} else {
		d.state.Loading = true
	}
	d.mu.Unlock()

	params := map[string]string{"token": token}
	if force {
		params["refresh"] = "1"
	}
	raw, err := d.gateway.Call(ctx, entities.GatewayRequest{Operation: entities.OpDashboard, Params: params})

	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Loading = false
	d.state.Refreshing = false

	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Bool("force", force).Msg("[dashboard][usecase] load failed")
		d.state.Error = entities.ErrorMessage(err, MsgDashboardFailed)
		return d.state, nil
	}

	var snap entities.DashboardSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		d.state.Error = MsgDashboardFailed
		return d.state, nil
	}
	d.state.Snapshot = snap
	d.state.Loaded = true
	d.state.Error = ""
	return d.state, nil
}
