package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"monitoring_tunggakan/internal/domain/entities"
	"monitoring_tunggakan/internal/pkg/logger"
	"monitoring_tunggakan/internal/usecase/interfaces"
)

const (
	MsgLoginFailed  = "Login failed"
	MsgNetworkError = "Network error"
)

var (
	ErrSessionAbsent   = errors.New("session absent")
	ErrSessionKeyEmpty = errors.New("session key is empty")
)

// LoginOutcome is what the login view renders. Error is empty on success.
type LoginOutcome struct {
	Session entities.Session
	Error   string
}

type ISessionUseCase interface {
	Login(ctx context.Context, key, userID, password string) (LoginOutcome, error)
	Logout(ctx context.Context, key string) error
	Current(ctx context.Context, key string) (entities.Session, error)
}

type SessionUseCase struct {
	gateway interfaces.IBillingGateway
	store   interfaces.ISessionStore
}

var _ ISessionUseCase = (*SessionUseCase)(nil)

func NewSessionUseCase(gateway interfaces.IBillingGateway, store interfaces.ISessionStore) *SessionUseCase {
	return &SessionUseCase{gateway: gateway, store: store}
}

type loginBody struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a token and persists it under key.
// Nothing is persisted unless the backend returned a token.
func (u *SessionUseCase) Login(ctx context.Context, key, userID, password string) (LoginOutcome, error) {
	if strings.TrimSpace(key) == "" {
		return LoginOutcome{}, ErrSessionKeyEmpty
	}
	log := logger.FromContext(ctx)

	raw, err := u.gateway.Call(ctx, entities.GatewayRequest{
		Operation: entities.OpLogin,
		Body:      loginBody{UserID: userID, Password: password},
	})
	if err != nil {
		if errors.Is(err, entities.ErrGatewayTransport) {
			log.Warn().Err(err).Msg("[session][usecase] login transport failure")
			return LoginOutcome{Session: entities.AbsentSession(), Error: MsgNetworkError}, nil
		}
		return LoginOutcome{Session: entities.AbsentSession(), Error: entities.ErrorMessage(err, MsgLoginFailed)}, nil
	}

	var resp loginResponse
	if err := json.Unmarshal(raw, &resp); err != nil || resp.Token == "" {
		return LoginOutcome{Session: entities.AbsentSession(), Error: MsgLoginFailed}, nil
	}

	if err := u.store.Set(ctx, key, resp.Token); err != nil {
		log.Error().Err(err).Msg("[session][usecase] persist token failed")
		return LoginOutcome{}, err
	}

	log.Info().Str("user_id", userID).Msg("[session][usecase] login ok")
	return LoginOutcome{Session: entities.PresentSession(resp.Token)}, nil
}

func (u *SessionUseCase) Logout(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return nil
	}
	return u.store.Clear(ctx, key)
}

// Current resolves the stored credential for key. An unknown or empty key is Absent.
func (u *SessionUseCase) Current(ctx context.Context, key string) (entities.Session, error) {
	if strings.TrimSpace(key) == "" {
		return entities.AbsentSession(), nil
	}
	token, err := u.store.Get(ctx, key)
	if err != nil {
		return entities.AbsentSession(), err
	}
	return entities.PresentSession(token), nil
}
