package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"monitoring_tunggakan/internal/adapter/persistence/repository"
	"monitoring_tunggakan/internal/domain/entities"
	"monitoring_tunggakan/internal/usecase"
	mock_interfaces "monitoring_tunggakan/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type cliFixture struct {
	app     *App
	gateway *mock_interfaces.MockIBillingGateway
	store   *repository.SessionMemoryRepository
	out     *bytes.Buffer
	errOut  *bytes.Buffer
}

func newCLIFixture(t *testing.T, stdin string) *cliFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &cliFixture{
		gateway: mock_interfaces.NewMockIBillingGateway(ctrl),
		store:   repository.NewSessionMemoryRepository(time.Hour),
		out:     &bytes.Buffer{},
		errOut:  &bytes.Buffer{},
	}
	f.app = NewApp(f.gateway, usecase.NewSessionUseCase(f.gateway, f.store), strings.NewReader(stdin), f.out, f.errOut)
	return f
}

func (f *cliFixture) loggedIn(t *testing.T) {
	t.Helper()
	if err := f.store.Set(context.Background(), SessionKey, "tok"); err != nil {
		t.Fatalf("store: %v", err)
	}
}

func TestApp_Usage(t *testing.T) {
	f := newCLIFixture(t, "")
	if code := f.app.Run(context.Background(), nil); code != exitUsage {
		t.Fatalf("expected usage exit, got %d", code)
	}
	if code := f.app.Run(context.Background(), []string{"bogus"}); code != exitUsage {
		t.Fatalf("expected usage exit, got %d", code)
	}
	if !strings.Contains(f.errOut.String(), "usage: tunggakan") {
		t.Fatalf("expected usage text, got %s", f.errOut.String())
	}
}

func TestApp_Login(t *testing.T) {
	t.Run("password from stdin", func(t *testing.T) {
		f := newCLIFixture(t, "rahasia\n")
		f.gateway.EXPECT().Call(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req entities.GatewayRequest) (json.RawMessage, error) {
				body, _ := json.Marshal(req.Body)
				if req.Operation != entities.OpLogin || string(body) != `{"userId":"RBM01","password":"rahasia"}` {
					t.Errorf("unexpected login request %s %s", req.Operation, body)
				}
				return json.RawMessage(`{"token":"abc"}`), nil
			})

		code := f.app.Run(context.Background(), []string{"login", "-user", "RBM01"})
		if code != exitOK || !strings.Contains(f.out.String(), "Login berhasil") {
			t.Fatalf("unexpected result %d %s %s", code, f.out.String(), f.errOut.String())
		}
		if tok, _ := f.store.Get(context.Background(), SessionKey); tok != "abc" {
			t.Fatalf("expected token persisted, got %q", tok)
		}
	})

	t.Run("backend error", func(t *testing.T) {
		f := newCLIFixture(t, "")
		f.gateway.EXPECT().Call(gomock.Any(), gomock.Any()).
			Return(nil, &entities.BackendError{Operation: entities.OpLogin, Message: "User tidak ditemukan"})

		code := f.app.Run(context.Background(), []string{"login", "-user", "RBM01", "-password", "x"})
		if code != exitError || !strings.Contains(f.errOut.String(), "User tidak ditemukan") {
			t.Fatalf("unexpected result %d %s", code, f.errOut.String())
		}
		if tok, _ := f.store.Get(context.Background(), SessionKey); tok != "" {
			t.Fatalf("nothing must be persisted, got %q", tok)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		f := newCLIFixture(t, "")
		if code := f.app.Run(context.Background(), []string{"login", "-password", "x"}); code != exitUsage {
			t.Fatalf("expected usage exit, got %d", code)
		}
	})
}

func TestApp_Logout(t *testing.T) {
	f := newCLIFixture(t, "")
	f.loggedIn(t)
	if code := f.app.Run(context.Background(), []string{"logout"}); code != exitOK {
		t.Fatalf("unexpected exit %d", code)
	}
	if tok, _ := f.store.Get(context.Background(), SessionKey); tok != "" {
		t.Fatalf("expected session cleared, got %q", tok)
	}
}

func TestApp_Dashboard(t *testing.T) {
	t.Run("requires login", func(t *testing.T) {
		f := newCLIFixture(t, "")
		code := f.app.Run(context.Background(), []string{"dashboard"})
		if code != exitError || !strings.Contains(f.errOut.String(), "not logged in") {
			t.Fatalf("unexpected result %d %s", code, f.errOut.String())
		}
	})

	t.Run("refresh prints the snapshot", func(t *testing.T) {
		f := newCLIFixture(t, "")
		f.loggedIn(t)
		f.gateway.EXPECT().Call(gomock.Any(), entities.GatewayRequest{
			Operation: entities.OpDashboard,
			Params:    map[string]string{"token": "tok", "refresh": "1"},
		}).Return(json.RawMessage(`{"rbm":"RBM-07","summary":{"totalPelanggan":100,"lunas":80,"belumLunas":20},"nominal":{"outstanding":5000000,"target":10000000},"performance":150}`), nil)

		code := f.app.Run(context.Background(), []string{"dashboard", "-refresh"})
		out := f.out.String()
		if code != exitOK {
			t.Fatalf("unexpected exit %d %s", code, f.errOut.String())
		}
		for _, want := range []string{"RBM-07", "Rp 5.000.000", "Rp 10.000.000", "150%", "Sangat baik"} {
			if !strings.Contains(out, want) {
				t.Fatalf("expected %q in %s", want, out)
			}
		}
	})
}

func TestApp_Sisa(t *testing.T) {
	f := newCLIFixture(t, "")
	f.loggedIn(t)
	f.gateway.EXPECT().Call(gomock.Any(), entities.GatewayRequest{
		Operation: entities.OpSisaList,
		Params:    map[string]string{"page": "2", "limit": "50", "q": "51", "token": "tok"},
	}).Return(json.RawMessage(`{"total":120,"page":2,"limit":50,"data":[{"idpel":"5110","namaPelanggan":"BUDI","rptag":1234567}]}`), nil)

	code := f.app.Run(context.Background(), []string{"sisa", "-page", "2", "-q", " 51 "})
	out := f.out.String()
	if code != exitOK || !strings.Contains(out, "5110") || !strings.Contains(out, "1.234.567") || !strings.Contains(out, "Page 2 of 3") {
		t.Fatalf("unexpected output %d %s", code, out)
	}
}

func expectDetail(f *cliFixture) {
	f.gateway.EXPECT().Call(gomock.Any(), entities.GatewayRequest{
		Operation: entities.OpDetail,
		Params:    map[string]string{"idpel": "5110", "token": "tok"},
	}).Return(json.RawMessage(`{"idpel":"5110","namaPelanggan":"BUDI","alamat":"JL. MERDEKA","rptag":150000,"catatan":"Rumah kosong"}`), nil)
	f.gateway.EXPECT().Call(gomock.Any(), entities.GatewayRequest{
		Operation: entities.OpCatatanList,
		Params:    map[string]string{"token": "tok"},
	}).Return(json.RawMessage(`{"data":["Rumah kosong","Janji bayar"]}`), nil)
}

func TestApp_Detail(t *testing.T) {
	f := newCLIFixture(t, "")
	f.loggedIn(t)
	expectDetail(f)

	code := f.app.Run(context.Background(), []string{"detail", "5110"})
	out := f.out.String()
	if code != exitOK {
		t.Fatalf("unexpected exit %d %s", code, f.errOut.String())
	}
	for _, want := range []string{"BUDI", "JL. MERDEKA", "Rp 150.000", "Belum Lunas", "Janji bayar"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %s", want, out)
		}
	}
}

func TestApp_Update(t *testing.T) {
	t.Run("unset flags keep the current values", func(t *testing.T) {
		f := newCLIFixture(t, "")
		f.loggedIn(t)
		expectDetail(f)
		f.gateway.EXPECT().Call(gomock.Any(), entities.GatewayRequest{
			Operation: entities.OpUpdatePelanggan,
			Params:    map[string]string{"token": "tok"},
			Body: entities.AccountUpdate{
				IDPel:   "5110",
				Status:  entities.StatusBelumLunas,
				Galang:  entities.GalangYes,
				Catatan: "Rumah kosong",
			},
		}).Return(json.RawMessage(`{"success":true}`), nil)

		code := f.app.Run(context.Background(), []string{"update", "5110", "-galang", "Yes"})
		if code != exitOK || !strings.Contains(f.out.String(), usecase.MsgSaveSuccess) {
			t.Fatalf("unexpected result %d %s %s", code, f.out.String(), f.errOut.String())
		}
	})

	t.Run("save failure", func(t *testing.T) {
		f := newCLIFixture(t, "")
		f.loggedIn(t)
		expectDetail(f)
		f.gateway.EXPECT().Call(gomock.Any(), gomock.Any()).Return(nil, entities.ErrGatewayTransport)

		code := f.app.Run(context.Background(), []string{"update", "5110", "-catatan", "Janji bayar"})
		if code != exitError || !strings.Contains(f.errOut.String(), usecase.MsgSaveFailed) {
			t.Fatalf("unexpected result %d %s", code, f.errOut.String())
		}
	})

	t.Run("invalid galang", func(t *testing.T) {
		f := newCLIFixture(t, "")
		f.loggedIn(t)
		if code := f.app.Run(context.Background(), []string{"update", "5110", "-galang", "Maybe"}); code != exitUsage {
			t.Fatalf("expected usage exit, got %d", code)
		}
	})

	t.Run("no flags", func(t *testing.T) {
		f := newCLIFixture(t, "")
		if code := f.app.Run(context.Background(), []string{"update", "5110"}); code != exitUsage {
			t.Fatalf("expected usage exit, got %d", code)
		}
	})
}

func TestProgressBar(t *testing.T) {
	if got := progressBar(200); got != "["+strings.Repeat("#", barWidth)+"]" {
		t.Fatalf("unexpected full bar %s", got)
	}
	if got := progressBar(0); got != "["+strings.Repeat(".", barWidth)+"]" {
		t.Fatalf("unexpected empty bar %s", got)
	}
	if got := progressBar(100); strings.Count(got, "#") != barWidth/2 {
		t.Fatalf("unexpected half bar %s", got)
	}
}
