package records

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/louisbranch/bengkel/internal/platform/id"
	module "github.com/louisbranch/bengkel/internal/services/web/module"
	apperrors "github.com/louisbranch/bengkel/internal/services/web/platform/errors"
	"github.com/louisbranch/bengkel/internal/services/web/platform/flash"
	"github.com/louisbranch/bengkel/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/bengkel/internal/services/web/routepath"
	"github.com/louisbranch/bengkel/internal/services/web/storage"
	webtemplates "github.com/louisbranch/bengkel/internal/services/web/templates"
)

type handlers[T any] struct {
	modulehandler.Base
	c     collection[T]
	newID func() (string, error)
}

func newHandlers[T any](c collection[T], deps module.Dependencies) handlers[T] {
	return handlers[T]{Base: modulehandler.NewBase(deps), c: c, newID: id.NewID}
}

func (h handlers[T]) handleList(w http.ResponseWriter, r *http.Request) {
	month, err := h.month(r)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.renderList(w, r, http.StatusOK, month, h.c.blank(h.Now()), "")
}

func (h handlers[T]) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := h.ParseForm(r); err != nil {
		h.WriteError(w, r, err)
		return
	}
	month, err := h.month(r)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	record, err := h.c.decode(r.PostForm, h.c.blank(h.Now()))
	if err != nil {
		h.renderList(w, r, apperrors.HTTPStatus(err), month, record, formMessage(err))
		return
	}
	recordID, err := h.newID()
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.c.setID(&record, recordID)
	if err := h.c.put(r.Context(), record); err != nil {
		if status := apperrors.HTTPStatus(err); status < http.StatusInternalServerError {
			h.renderList(w, r, status, month, record, formMessage(err))
			return
		}
		h.WriteError(w, r, fmt.Errorf("create %s: %w", h.c.path, err))
		return
	}
	h.RedirectWithNotice(w, r, h.c.path, flash.Success(h.c.noun+" tersimpan."))
}

func (h handlers[T]) handleEdit(w http.ResponseWriter, r *http.Request) {
	record, err := h.c.get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.renderEdit(w, r, http.StatusOK, record, "")
}

func (h handlers[T]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	existing, err := h.c.get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	if err := h.ParseForm(r); err != nil {
		h.WriteError(w, r, err)
		return
	}
	record, err := h.c.decode(r.PostForm, existing)
	if err != nil {
		h.renderEdit(w, r, apperrors.HTTPStatus(err), record, formMessage(err))
		return
	}
	if err := h.c.put(r.Context(), record); err != nil {
		if status := apperrors.HTTPStatus(err); status < http.StatusInternalServerError {
			h.renderEdit(w, r, status, record, formMessage(err))
			return
		}
		h.WriteError(w, r, fmt.Errorf("update %s: %w", h.c.path, err))
		return
	}
	h.RedirectWithNotice(w, r, h.c.path, flash.Success(h.c.noun+" diperbarui."))
}

func (h handlers[T]) handleDelete(w http.ResponseWriter, r *http.Request) {
	recordID := r.PathValue("id")
	err := h.c.remove(r.Context(), recordID)
	switch {
	case err == nil:
		h.RedirectWithNotice(w, r, h.c.path, flash.Success(h.c.noun+" dihapus."))
	case errors.Is(err, storage.ErrConflict):
		h.RedirectWithNotice(w, r, routepath.Record(h.c.path, recordID), flash.Error(h.c.noun+" masih dipakai dan tidak bisa dihapus."))
	default:
		h.WriteError(w, r, err)
	}
}

func (h handlers[T]) month(r *http.Request) (modulehandler.Month, error) {
	if !h.c.monthly {
		return modulehandler.Month{}, nil
	}
	return h.RequestMonth(r)
}

func (h handlers[T]) renderList(w http.ResponseWriter, r *http.Request, status int, month modulehandler.Month, draft T, formErr string) {
	items, err := h.c.list(r.Context(), month.From, month.To)
	if err != nil {
		h.WriteError(w, r, fmt.Errorf("list %s: %w", h.c.path, err))
		return
	}
	fields, err := h.c.fields(r.Context(), draft)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	table := webtemplates.Table{Columns: h.c.columns, Empty: h.c.empty}
	for _, item := range items {
		table.Rows = append(table.Rows, webtemplates.TableRow{
			Link:  routepath.Record(h.c.path, h.c.recordID(item)),
			Cells: h.c.row(item),
		})
	}
	view := webtemplates.ResourceListView{
		Title: h.c.title,
		Table: table,
		Form: webtemplates.FormView{
			Title:  "Tambah " + h.c.noun,
			Action: h.c.path,
			Error:  formErr,
			Fields: fields,
		},
	}
	if h.c.monthly {
		filter := month.Filter(h.c.path)
		view.Filter = &filter
	}
	if h.c.summary != nil {
		view.Summary = h.c.summary(items)
	}
	h.WritePage(w, r, h.c.title, status, webtemplates.ResourceListPage(view))
}

func (h handlers[T]) renderEdit(w http.ResponseWriter, r *http.Request, status int, record T, formErr string) {
	fields, err := h.c.fields(r.Context(), record)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	recordID := h.c.recordID(record)
	h.WritePage(w, r, "Ubah "+h.c.noun, status, webtemplates.ResourceEditPage(webtemplates.ResourceEditView{
		Title:    "Ubah " + h.c.noun,
		BackLink: h.c.path,
		Form: webtemplates.FormView{
			Action: routepath.Record(h.c.path, recordID),
			Error:  formErr,
			Fields: fields,
		},
		DeleteAction: routepath.RecordDelete(h.c.path, recordID),
	}))
}

func formMessage(err error) string {
	if apperrors.KindOf(err) == apperrors.KindConflict {
		return "Data bentrok dengan data yang sudah ada."
	}
	return apperrors.PublicMessage(err)
}
