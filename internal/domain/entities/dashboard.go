package entities

import "github.com/shopspring/decimal"

// DashboardSnapshot is the precomputed aggregate returned by the "dashboard" operation.
//
// Expected (enforced by the backend, not here): Lunas + BelumLunas == TotalPelanggan.
type DashboardSnapshot struct {
	RBM         string           `json:"rbm"`
	Summary     DashboardSummary `json:"summary"`
	Nominal     DashboardNominal `json:"nominal"`
	Performance float64          `json:"performance"`
}

type DashboardSummary struct {
	TotalPelanggan int `json:"totalPelanggan"`
	Lunas          int `json:"lunas"`
	BelumLunas     int `json:"belumLunas"`
}

type DashboardNominal struct {
	Outstanding decimal.Decimal `json:"outstanding"`
	Target      decimal.Decimal `json:"target"`
}
