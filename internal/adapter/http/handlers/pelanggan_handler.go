package handlers

import (
	"net/http"

	"monitoring_tunggakan/internal/adapter/http/dto/request"
	"monitoring_tunggakan/internal/adapter/http/dto/response"
	"monitoring_tunggakan/internal/adapter/http/middleware"
	"monitoring_tunggakan/internal/domain/entities"
	"monitoring_tunggakan/internal/usecase"
	"monitoring_tunggakan/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"
)

// PelangganHandler renders and saves the per-account detail/edit view.
type PelangganHandler struct {
	gateway interfaces.IBillingGateway
	saves   singleflight.Group
}

func NewPelangganHandler(gateway interfaces.IBillingGateway) *PelangganHandler {
	return &PelangganHandler{gateway: gateway}
}

func (h *PelangganHandler) Show(c *gin.Context) {
	idpel := c.Param("idpel")
	wf := usecase.NewDetailWorkflow(h.gateway, middleware.SessionFrom(c), idpel)
	st, err := wf.Load(c.Request.Context(), idpel)
	if err != nil {
		renderFailure(c, err)
		return
	}
	c.HTML(http.StatusOK, tmplPelanggan, response.FromDetailState(newPage(c, "Detail Pelanggan"), st))
}

// Save submits the edit form. Duplicate submissions for the same session and
// account share one backend call. On failure the record is reloaded for
// display and the operator's edits are put back on top of it.
func (h *PelangganHandler) Save(c *gin.Context) {
	ctx := c.Request.Context()
	session := middleware.SessionFrom(c)

	var form request.UpdatePelangganRequest
	_ = c.ShouldBind(&form)
	form = form.Normalize(c.Param("idpel"))

	edits := form.Form()
	saveErr := ""
	if errs := request.Validate(form); errs != nil {
		saveErr = firstMessage(errs)
	} else {
		key := middleware.SessionIDFrom(c) + "|" + form.IDPel
		v, err, _ := h.saves.Do(key, func() (interface{}, error) {
			wf := usecase.NewDetailWorkflow(h.gateway, session, form.IDPel)
			applyEdits(wf, edits)
			return wf.Save(ctx)
		})
		if err != nil {
			renderFailure(c, err)
			return
		}
		saved := v.(usecase.DetailState)
		if saved.Saved {
			c.Redirect(http.StatusSeeOther, ListingPath+"?saved=1")
			return
		}
		saveErr = saved.SaveError
	}

	wf := usecase.NewDetailWorkflow(h.gateway, session, form.IDPel)
	st, err := wf.Load(ctx, form.IDPel)
	if err != nil {
		renderFailure(c, err)
		return
	}
	if st.Loaded {
		st = applyEdits(wf, edits)
	} else {
		// The record could not be reloaded either; the submitted edits are
		// still what the form shows.
		st.Form = edits
	}
	st.SaveError = saveErr
	c.HTML(http.StatusOK, tmplPelanggan, response.FromDetailState(newPage(c, "Detail Pelanggan"), st))
}

func applyEdits(wf *usecase.DetailWorkflow, edits entities.EditForm) usecase.DetailState {
	wf.SetStatus(edits.Status)
	wf.SetGalang(edits.Galang)
	return wf.SetCatatan(edits.Catatan)
}

func firstMessage(errs map[string]string) string {
	for _, field := range []string{"IDPel", "status", "galang", "catatan"} {
		if msg, ok := errs[field]; ok {
			return msg
		}
	}
	for _, msg := range errs {
		return msg
	}
	return ""
}
