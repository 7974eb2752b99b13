package request

import (
	"strings"

	"monitoring_tunggakan/internal/domain/entities"
)

// UpdatePelangganRequest is the detail edit form. IDPel comes from the path.
type UpdatePelangganRequest struct {
	IDPel   string `form:"-" validate:"required"`
	Status  string `form:"status"`
	Galang  string `form:"galang" validate:"galang"`
	Catatan string `form:"catatan"`
}

func (r UpdatePelangganRequest) Form() entities.EditForm {
	return entities.EditForm{
		Status:  r.Status,
		Galang:  r.Galang,
		Catatan: r.Catatan,
	}
}

func (r UpdatePelangganRequest) Normalize(idpel string) UpdatePelangganRequest {
	r.IDPel = strings.TrimSpace(idpel)
	return r
}
