package http

import (
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/roomlab/roomboard/pkg/utils/errutil"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func renderPage(ctx context.Context, w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to render page", goerr.V("template", name)), "template error")
	}
}
