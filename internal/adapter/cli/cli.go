package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"monitoring_tunggakan/internal/domain/entities"
	"monitoring_tunggakan/internal/pkg/currency"
	"monitoring_tunggakan/internal/usecase"
	"monitoring_tunggakan/internal/usecase/interfaces"
)

// SessionKey is the store key of the terminal session. One operator per machine.
const SessionKey = "default"

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errNotLoggedIn = errors.New("not logged in, run: tunggakan login")

// App runs terminal commands against the same engines the web views use.
type App struct {
	gateway  interfaces.IBillingGateway
	sessions usecase.ISessionUseCase
	in       io.Reader
	out      io.Writer
	errOut   io.Writer
}

func NewApp(gateway interfaces.IBillingGateway, sessions usecase.ISessionUseCase, in io.Reader, out, errOut io.Writer) *App {
	return &App{gateway: gateway, sessions: sessions, in: in, out: out, errOut: errOut}
}

// Run executes args (without the program name) and returns the exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		a.usage()
		return exitUsage
	}

	var err error
	switch args[0] {
	case "login":
		err = a.login(ctx, args[1:])
	case "logout":
		err = a.logout(ctx)
	case "dashboard":
		err = a.dashboard(ctx, args[1:])
	case "sisa":
		err = a.sisa(ctx, args[1:])
	case "detail":
		err = a.detail(ctx, args[1:])
	case "update":
		err = a.update(ctx, args[1:])
	case "help", "-h", "--help":
		a.usage()
		return exitOK
	default:
		fmt.Fprintf(a.errOut, "unknown command %q\n", args[0])
		a.usage()
		return exitUsage
	}

	var usageErr usageError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &usageErr):
		fmt.Fprintln(a.errOut, err)
		return exitUsage
	default:
		fmt.Fprintln(a.errOut, err)
		return exitError
	}
}

type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func (a *App) usage() {
	fmt.Fprint(a.errOut, `usage: tunggakan <command> [flags]

commands:
  login -user RBM [-password PW]
  logout
  dashboard [-refresh]
  sisa [-page N] [-q IDPEL]
  detail IDPEL
  update IDPEL [-status S] [-galang Yes|No] [-catatan C]
`)
}

func (a *App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

func (a *App) session(ctx context.Context) (entities.Session, error) {
	s, err := a.sessions.Current(ctx, SessionKey)
	if err != nil {
		return s, err
	}
	if !s.Present() {
		return s, errNotLoggedIn
	}
	return s, nil
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := a.newFlagSet("login")
	user := fs.String("user", "", "RBM user id")
	password := fs.String("password", "", "password (read from stdin when empty)")
	if err := fs.Parse(args); err != nil {
		return usageError{msg: err.Error()}
	}

	if *password == "" {
		fmt.Fprint(a.out, "Password: ")
		line, err := bufio.NewReader(a.in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		*password = strings.TrimRight(line, "\r\n")
		fmt.Fprintln(a.out)
	}
	if strings.TrimSpace(*user) == "" || *password == "" {
		return usageError{msg: "RBM dan password wajib diisi"}
	}

	outcome, err := a.sessions.Login(ctx, SessionKey, strings.TrimSpace(*user), *password)
	if err != nil {
		return err
	}
	if outcome.Error != "" {
		return errors.New(outcome.Error)
	}
	fmt.Fprintln(a.out, "Login berhasil")
	return nil
}

func (a *App) logout(ctx context.Context) error {
	if err := a.sessions.Logout(ctx, SessionKey); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) dashboard(ctx context.Context, args []string) error {
	fs := a.newFlagSet("dashboard")
	refresh := fs.Bool("refresh", false, "force the backend to recompute")
	if err := fs.Parse(args); err != nil {
		return usageError{msg: err.Error()}
	}

	session, err := a.session(ctx)
	if err != nil {
		return err
	}
	st, err := usecase.NewDashboardAggregator(a.gateway, session).Load(ctx, *refresh)
	if err != nil {
		return err
	}
	if st.Error != "" {
		return errors.New(st.Error)
	}

	snap := st.Snapshot
	cls := st.Classification()
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "RBM\t%s\n", snap.RBM)
	fmt.Fprintf(w, "Total\t%d\n", snap.Summary.TotalPelanggan)
	fmt.Fprintf(w, "Lunas\t%d\n", snap.Summary.Lunas)
	fmt.Fprintf(w, "Belum\t%d\n", snap.Summary.BelumLunas)
	fmt.Fprintf(w, "Target\t%s\n", currency.FormatRp(snap.Nominal.Target))
	fmt.Fprintf(w, "Sisa Belum Lunas\t%s\n", currency.FormatRp(snap.Nominal.Outstanding))
	fmt.Fprintf(w, "Performance\t%s%% %s %s\n", formatPercent(snap.Performance), cls.Icon, cls.Label)
	fmt.Fprintf(w, "\t%s\n", progressBar(st.Progress()))
	return w.Flush()
}

func (a *App) sisa(ctx context.Context, args []string) error {
	fs := a.newFlagSet("sisa")
	page := fs.Int("page", 1, "page number")
	term := fs.String("q", "", "IDPEL search term")
	if err := fs.Parse(args); err != nil {
		return usageError{msg: err.Error()}
	}

	session, err := a.session(ctx)
	if err != nil {
		return err
	}

	var st usecase.ListingState
	if *page > 1 {
		q := entities.NewListingQuery().WithSearch(*term)
		st, err = usecase.NewListingEngineAt(a.gateway, session, q).SetPage(ctx, *page)
	} else {
		st, err = usecase.NewListingEngine(a.gateway, session).Search(ctx, *term)
	}
	if err != nil {
		return err
	}
	if st.Error != "" {
		return errors.New(st.Error)
	}

	rows := st.Rows()
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No data found.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "IDPEL\tNama\tTarif/Daya\tGardu/Tiang\tLangkah\tHari Baca\tRPTAG\tRPBK\t")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.IDPel, r.NamaPelanggan, r.TarifDaya, r.GarduTiang, r.Langkah, r.HariBaca,
			currency.Format(r.RPTag), currency.Format(r.RPBK))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if pages := st.TotalPages(); pages > 1 {
		fmt.Fprintf(a.out, "Page %d of %d\n", st.Query.Page, pages)
	}
	return nil
}

func (a *App) detail(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError{msg: "usage: tunggakan detail IDPEL"}
	}
	st, err := a.loadDetail(ctx, args[0])
	if err != nil {
		return err
	}

	d := st.Detail
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "IDPEL\t%s\n", d.IDPel)
	fmt.Fprintf(w, "Nama\t%s\n", d.NamaPelanggan)
	fmt.Fprintf(w, "Tarif / Daya\t%s\n", d.TarifDaya)
	fmt.Fprintf(w, "Alamat\t%s\n", d.Alamat)
	fmt.Fprintf(w, "RPTAG\t%s\n", currency.FormatRp(d.RPTag))
	fmt.Fprintf(w, "Status\t%s\n", st.Form.Status)
	fmt.Fprintf(w, "Galang\t%s\n", orDash(st.Form.Galang))
	fmt.Fprintf(w, "Catatan\t%s\n", orDash(st.Form.Catatan))
	if err := w.Flush(); err != nil {
		return err
	}
	if len(st.Notes) > 0 {
		fmt.Fprintf(a.out, "Pilihan catatan: %s\n", strings.Join(st.Notes, ", "))
	}
	return nil
}

func (a *App) update(ctx context.Context, args []string) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return usageError{msg: "usage: tunggakan update IDPEL [-status S] [-galang Yes|No] [-catatan C]"}
	}
	idpel := args[0]

	fs := a.newFlagSet("update")
	status := fs.String("status", "", "payment status")
	galang := fs.String("galang", "", "Yes, No or empty")
	catatan := fs.String("catatan", "", "follow-up note")
	if err := fs.Parse(args[1:]); err != nil {
		return usageError{msg: err.Error()}
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if len(set) == 0 {
		return usageError{msg: "nothing to update"}
	}
	if set["galang"] && *galang != entities.GalangYes && *galang != entities.GalangNo && *galang != entities.GalangUnset {
		return usageError{msg: "galang must be Yes, No or empty"}
	}

	session, err := a.session(ctx)
	if err != nil {
		return err
	}

	// Seed from the current record so flags left out keep their values.
	wf := usecase.NewDetailWorkflow(a.gateway, session, idpel)
	st, err := wf.Load(ctx, idpel)
	if err != nil {
		return err
	}
	if st.Error != "" {
		return errors.New(st.Error)
	}
	if set["status"] {
		wf.SetStatus(*status)
	}
	if set["galang"] {
		wf.SetGalang(*galang)
	}
	if set["catatan"] {
		wf.SetCatatan(*catatan)
	}

	st, err = wf.Save(ctx)
	if err != nil {
		return err
	}
	if !st.Saved {
		return errors.New(st.SaveError)
	}
	fmt.Fprintln(a.out, usecase.MsgSaveSuccess)
	return nil
}

func (a *App) loadDetail(ctx context.Context, idpel string) (usecase.DetailState, error) {
	session, err := a.session(ctx)
	if err != nil {
		return usecase.DetailState{}, err
	}
	st, err := usecase.NewDetailWorkflow(a.gateway, session, idpel).Load(ctx, idpel)
	if err != nil {
		return st, err
	}
	if st.Error != "" {
		return st, errors.New(st.Error)
	}
	return st, nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
