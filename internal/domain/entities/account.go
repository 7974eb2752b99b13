package entities

import "github.com/shopspring/decimal"

// Payment status values used by the backend spreadsheet.
//
// The backend may define more values; these are the ones the edit form offers.
const (
	StatusLunas      = "Lunas"
	StatusBelumLunas = "Belum Lunas"
)

// Galang flag values. An empty string means "not set".
const (
	GalangUnset = ""
	GalangYes   = "Yes"
	GalangNo    = "No"
)

// AccountRecord is the list projection of an unpaid account (pelanggan).
//
// Snapshot per fetch; never mutated locally.

type AccountRecord struct {
	IDPel         string          `json:"idpel"`
	NamaPelanggan string          `json:"namaPelanggan"`
	TarifDaya     string          `json:"tarifDaya"`
	GarduTiang    string          `json:"garduTiang"`
	Langkah       string          `json:"langkah"`
	HariBaca      string          `json:"hariBaca"`
	RPTag         decimal.Decimal `json:"rptag"`
	RPBK          decimal.Decimal `json:"rpbk"`
}

// AccountDetail is the detail projection returned by the "detail" operation.
//
// Editable before save: Status, Galang, Catatan. Everything else is display only.
type AccountDetail struct {
	AccountRecord
	Alamat  string `json:"alamat"`
	Status  string `json:"status"`
	Galang  string `json:"galang,omitempty"`
	Catatan string `json:"catatan,omitempty"`
}

// EditForm holds the locally editable fields of an account.
type EditForm struct {
	Status  string `json:"status"`
	Galang  string `json:"galang"`
	Catatan string `json:"catatan"`
}

// SeedEditForm derives the initial form values from a fetched record.
func SeedEditForm(d AccountDetail) EditForm {
	status := d.Status
	if status == "" {
		status = StatusBelumLunas
	}
	return EditForm{
		Status:  status,
		Galang:  d.Galang,
		Catatan: d.Catatan,
	}
}

// AccountUpdate is the body of the "updatepelanggan" operation.
type AccountUpdate struct {
	IDPel   string `json:"idpel"`
	Status  string `json:"status"`
	Galang  string `json:"galang"`
	Catatan string `json:"catatan"`
}

// NoteList is the payload of the "catatanlist" operation.
type NoteList struct {
	Data []string `json:"data"`
}
