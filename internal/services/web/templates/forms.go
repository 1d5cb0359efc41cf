package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Option is one choice in a select field.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Field is one input of a form.
type Field struct {
	Name     string
	Label    string
	Type     string
	Value    string
	Required bool
	Options  []Option
}

// FormView is a POST form.
type FormView struct {
	Title  string
	Action string
	Submit string
	Error  string
	Fields []Field
}

// Form renders a form view.
func Form(form FormView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		writeForm(h, form)
		return h.err
	})
}

func writeForm(h *htmlWriter, form FormView) {
	h.raw(`<form method="post" class="card form"`)
	h.attr("action", form.Action)
	h.raw(`>`)
	if form.Title != "" {
		h.raw(`<h2>`)
		h.text(form.Title)
		h.raw(`</h2>`)
	}
	if form.Error != "" {
		h.raw(`<p class="form-error" role="alert">`)
		h.text(form.Error)
		h.raw(`</p>`)
	}
	for _, field := range form.Fields {
		writeField(h, field)
	}
	submit := form.Submit
	if submit == "" {
		submit = "Simpan"
	}
	h.raw(`<button type="submit">`)
	h.text(submit)
	h.raw(`</button></form>`)
}

func writeField(h *htmlWriter, field Field) {
	h.raw(`<label>`)
	h.text(field.Label)
	switch field.Type {
	case "select":
		h.raw(`<select`)
		h.attr("name", field.Name)
		h.flag("required", field.Required)
		h.raw(`>`)
		for _, opt := range field.Options {
			h.raw(`<option`)
			h.attr("value", opt.Value)
			h.flag("selected", opt.Selected)
			h.raw(`>`)
			h.text(opt.Label)
			h.raw(`</option>`)
		}
		h.raw(`</select>`)
	case "checkbox":
		h.raw(`<input type="checkbox" value="1"`)
		h.attr("name", field.Name)
		h.flag("checked", field.Value == "1")
		h.raw(`>`)
	case "textarea":
		h.raw(`<textarea`)
		h.attr("name", field.Name)
		h.flag("required", field.Required)
		h.raw(`>`)
		h.text(field.Value)
		h.raw(`</textarea>`)
	default:
		inputType := field.Type
		if inputType == "" {
			inputType = "text"
		}
		h.raw(`<input`)
		h.attr("type", inputType)
		h.attr("name", field.Name)
		h.attr("value", field.Value)
		h.flag("required", field.Required)
		h.raw(`>`)
	}
	h.raw(`</label>`)
}
