package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"monitoring_tunggakan/internal/domain/entities"
	"monitoring_tunggakan/internal/pkg/logger"
	"monitoring_tunggakan/internal/usecase/interfaces"

	"golang.org/x/sync/errgroup"
)

const (
	MsgDetailFailed = "Failed to load detail"
	MsgSaveFailed   = "Gagal menyimpan data"
	MsgSaveSuccess  = "Data berhasil diperbarui"
)

var (
	ErrIDPelMissing   = errors.New("idpel is required")
	ErrSaveInProgress = errors.New("save already in progress")
)

// DetailState is the view state of one account's detail/edit screen.
type DetailState struct {
	IDPel   string
	Loading bool
	Error   string
	Loaded  bool
	Detail  entities.AccountDetail
	Notes   []string

	Form      entities.EditForm
	Saving    bool
	SaveError string
	Saved     bool
}

type IDetailWorkflow interface {
	Load(ctx context.Context, idpel string) (DetailState, error)
	SetStatus(status string) DetailState
	SetGalang(galang string) DetailState
	SetCatatan(catatan string) DetailState
	Save(ctx context.Context) (DetailState, error)
	State() DetailState
}

type DetailWorkflow struct {
	gateway interfaces.IBillingGateway
	session entities.Session

	mu    sync.Mutex
	state DetailState
}

var _ IDetailWorkflow = (*DetailWorkflow)(nil)

// NewDetailWorkflow opens the workflow for idpel. The form starts from the
// defaults until Load seeds it from the backend.
func NewDetailWorkflow(gateway interfaces.IBillingGateway, session entities.Session, idpel string) *DetailWorkflow {
	return &DetailWorkflow{
		gateway: gateway,
		session: session,
		state: DetailState{
			IDPel: strings.TrimSpace(idpel),
			Form:  entities.SeedEditForm(entities.AccountDetail{}),
		},
	}
}

func (w *DetailWorkflow) State() DetailState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Load fetches the record and the note enumeration concurrently and seeds the
// edit form. The notes are fetched again on every load.
func (w *DetailWorkflow) Load(ctx context.Context, idpel string) (DetailState, error) {
	idpel = strings.TrimSpace(idpel)
	if idpel == "" {
		return w.State(), ErrIDPelMissing
	}
	token, ok := w.session.Token()
	if !ok {
		return w.State(), ErrSessionAbsent
	}
	log := logger.FromContext(ctx)

	w.mu.Lock()
	w.state.IDPel = idpel
	w.state.Loading = true
	w.state.Error = ""
	w.state.Saved = false
	w.mu.Unlock()

	var (
		detailRaw, notesRaw json.RawMessage
		detailErr, notesErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		detailRaw, detailErr = w.gateway.Call(gctx, entities.GatewayRequest{
			Operation: entities.OpDetail,
			Params:    map[string]string{"idpel": idpel, "token": token},
		})
		return detailErr
	})
	g.Go(func() error {
		notesRaw, notesErr = w.gateway.Call(gctx, entities.GatewayRequest{
			Operation: entities.OpCatatanList,
			Params:    map[string]string{"token": token},
		})
		if errors.Is(notesErr, entities.ErrGatewayTransport) {
			return notesErr
		}
		return nil
	})
	_ = g.Wait()

	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Loading = false

	switch {
	case detailErr != nil:
		log.Warn().Err(detailErr).Str("idpel", idpel).Msg("[detail][usecase] detail fetch failed")
		w.state.Error = entities.ErrorMessage(detailErr, MsgDetailFailed)
		return w.state, nil
	case errors.Is(notesErr, entities.ErrGatewayTransport):
		log.Warn().Err(notesErr).Msg("[detail][usecase] note list fetch failed")
		w.state.Error = MsgDetailFailed
		return w.state, nil
	}

	var detail entities.AccountDetail
	if err := json.Unmarshal(detailRaw, &detail); err != nil {
		log.Warn().Err(err).Str("idpel", idpel).Msg("[detail][usecase] detail payload unreadable")
		w.state.Error = MsgDetailFailed
		return w.state, nil
	}

	notes := []string{}
	if notesErr == nil {
		var list entities.NoteList
		if err := json.Unmarshal(notesRaw, &list); err == nil && list.Data != nil {
			notes = list.Data
		}
	}

	w.state.Detail = detail
	w.state.Notes = notes
	w.state.Form = entities.SeedEditForm(detail)
	w.state.Loaded = true
	return w.state, nil
}

func (w *DetailWorkflow) SetStatus(status string) DetailState {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Form.Status = status
	return w.state
}

func (w *DetailWorkflow) SetGalang(galang string) DetailState {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Form.Galang = galang
	return w.state
}

func (w *DetailWorkflow) SetCatatan(catatan string) DetailState {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Form.Catatan = catatan
	return w.state
}

// Save submits the current form. On failure the form is left as is so the
// operator can retry; on success Saved is set and nothing is reconciled locally.
func (w *DetailWorkflow) Save(ctx context.Context) (DetailState, error) {
	token, ok := w.session.Token()
	if !ok {
		return w.State(), ErrSessionAbsent
	}

	w.mu.Lock()
	if w.state.IDPel == "" {
		w.mu.Unlock()
		return w.State(), ErrIDPelMissing
	}
	if w.state.Saving {
		st := w.state
		w.mu.Unlock()
		return st, ErrSaveInProgress
	}
	w.state.Saving = true
	w.state.SaveError = ""
	w.state.Saved = false
	update := entities.AccountUpdate{
		IDPel:   w.state.IDPel,
		Status:  w.state.Form.Status,
		Galang:  w.state.Form.Galang,
		Catatan: w.state.Form.Catatan,
	}
	w.mu.Unlock()

	_, err := w.gateway.Call(ctx, entities.GatewayRequest{
		Operation: entities.OpUpdatePelanggan,
		Params:    map[string]string{"token": token},
		Body:      update,
	})

	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Saving = false
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("idpel", update.IDPel).Msg("[detail][usecase] save failed")
		w.state.SaveError = entities.ErrorMessage(err, MsgSaveFailed)
		return w.state, nil
	}
	logger.FromContext(ctx).Info().Str("idpel", update.IDPel).Msg("[detail][usecase] saved")
	w.state.Saved = true
	return w.state, nil
}
