package response

import (
	"net/url"
	"strconv"

	"monitoring_tunggakan/internal/domain/entities"
	"monitoring_tunggakan/internal/pkg/currency"
	"monitoring_tunggakan/internal/usecase"
)

// Page is the data shared by every rendered page.
type Page struct {
	Title     string
	CSRFToken string
	LoggedIn  bool
	Flash     string
}

type LoginView struct {
	Page
	UserID string
	Error  string
}

type DashboardView struct {
	Page
	Error          string
	Loaded         bool
	Refreshing     bool
	RBM            string
	TotalPelanggan int
	Lunas          int
	BelumLunas     int
	Outstanding    string
	Target         string
	Performance    string
	Progress       string
	ProgressMax    string
	Classification entities.Classification
}

func FromDashboardState(p Page, st usecase.DashboardState) DashboardView {
	v := DashboardView{
		Page:       p,
		Error:      st.Error,
		Refreshing: st.Refreshing,
	}
	// A failed load renders only the error, even if an older snapshot exists.
	if st.Error != "" || !st.Loaded {
		return v
	}
	snap := st.Snapshot
	v.Loaded = true
	v.RBM = snap.RBM
	v.TotalPelanggan = snap.Summary.TotalPelanggan
	v.Lunas = snap.Summary.Lunas
	v.BelumLunas = snap.Summary.BelumLunas
	v.Outstanding = currency.Format(snap.Nominal.Outstanding)
	v.Target = currency.Format(snap.Nominal.Target)
	v.Performance = formatFloat(snap.Performance)
	v.Progress = formatFloat(st.Progress())
	v.ProgressMax = formatFloat(entities.ProgressMax)
	v.Classification = st.Classification()
	return v
}

type AccountRow struct {
	IDPel         string
	NamaPelanggan string
	TarifDaya     string
	GarduTiang    string
	Langkah       string
	HariBaca      string
	RPTag         string
	RPBK          string
}

type ListingView struct {
	Page
	Error       string
	SearchTerm  string
	Searching   bool
	Rows        []AccountRow
	Empty       bool
	CurrentPage int
	TotalPages  int
	ShowPager   bool
	PrevURL     string
	NextURL     string
}

func FromListingState(p Page, st usecase.ListingState) ListingView {
	v := ListingView{
		Page:        p,
		Error:       st.Error,
		SearchTerm:  st.Query.SearchTerm,
		Searching:   st.Query.SearchTerm != "",
		CurrentPage: st.Query.Page,
		TotalPages:  st.TotalPages(),
	}
	for _, r := range st.Rows() {
		v.Rows = append(v.Rows, AccountRow{
			IDPel:         r.IDPel,
			NamaPelanggan: r.NamaPelanggan,
			TarifDaya:     r.TarifDaya,
			GarduTiang:    r.GarduTiang,
			Langkah:       r.Langkah,
			HariBaca:      r.HariBaca,
			RPTag:         currency.Format(r.RPTag),
			RPBK:          currency.Format(r.RPBK),
		})
	}
	v.Empty = len(v.Rows) == 0 && !st.Loading && st.Error == ""
	v.ShowPager = v.TotalPages > 1
	if st.CanGoPrev() {
		v.PrevURL = ListingURL(st.Query.Page-1, st.Query.SearchTerm)
	}
	if st.CanGoNext() {
		v.NextURL = ListingURL(st.Query.Page+1, st.Query.SearchTerm)
	}
	return v
}

// ListingURL builds the /sisa link for page and term.
func ListingURL(page int, term string) string {
	q := url.Values{}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if term != "" {
		q.Set("q", term)
	}
	if len(q) == 0 {
		return "/sisa"
	}
	return "/sisa?" + q.Encode()
}

type Option struct {
	Value    string
	Label    string
	Selected bool
}

type DetailView struct {
	Page
	Error         string
	SaveError     string
	Loaded        bool
	Partial       bool
	IDPel         string
	NamaPelanggan string
	TarifDaya     string
	Alamat        string
	RPTag         string
	Status        string
	StatusOptions []Option
	GalangOptions []Option
	NoteOptions   []Option
}

func FromDetailState(p Page, st usecase.DetailState) DetailView {
	v := DetailView{
		Page:      p,
		Error:     st.Error,
		SaveError: st.SaveError,
		IDPel:     st.IDPel,
	}
	if !st.Loaded {
		if st.SaveError == "" {
			return v
		}
		// Save failed and the record did not reload: show the save error
		// and keep the edit form with what was submitted.
		v.Error = ""
		v.Loaded = true
		v.Partial = true
		v.setFormOptions(st)
		return v
	}
	if st.Error != "" {
		return v
	}
	d := st.Detail
	v.Loaded = true
	v.IDPel = d.IDPel
	if v.IDPel == "" {
		v.IDPel = st.IDPel
	}
	v.NamaPelanggan = d.NamaPelanggan
	v.TarifDaya = d.TarifDaya
	v.Alamat = d.Alamat
	v.RPTag = currency.Format(d.RPTag)
	v.Status = d.Status
	v.setFormOptions(st)
	return v
}

func (v *DetailView) setFormOptions(st usecase.DetailState) {
	v.StatusOptions = options(st.Form.Status, []string{entities.StatusBelumLunas, entities.StatusLunas}, "")
	v.GalangOptions = options(st.Form.Galang, []string{entities.GalangYes, entities.GalangNo}, "-")
	v.NoteOptions = options(st.Form.Catatan, st.Notes, "-")
}

// options renders a select. A current value missing from values is kept as an
// extra option so saving does not silently drop it.
func options(current string, values []string, blankLabel string) []Option {
	var out []Option
	if blankLabel != "" {
		out = append(out, Option{Value: "", Label: blankLabel, Selected: current == ""})
	}
	found := current == "" && blankLabel != ""
	for _, val := range values {
		sel := val == current
		found = found || sel
		out = append(out, Option{Value: val, Label: val, Selected: sel})
	}
	if !found && current != "" {
		out = append(out, Option{Value: current, Label: current, Selected: true})
	}
	return out
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
