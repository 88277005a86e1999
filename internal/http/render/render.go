// Package render отвечает за серверный рендеринг HTML-страниц приложения.
//
// Шаблоны встраиваются в бинарник и исполняются в буфер: страница
// отправляется клиенту только после успешного рендеринга, при ошибке
// возвращается общая страница сбоя без внутренних деталей.
package render

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	chirender "github.com/go-chi/render"

	"github.com/magabrotheeeer/members-only/internal/lib/sl"
)

//go:embed templates/*.html
var templatesFS embed.FS

var tmpls = template.Must(template.New("").Funcs(template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("Jan 2, 2006 15:04")
	},
}).ParseFS(templatesFS, "templates/*.html"))

// Renderer исполняет HTML-шаблоны страниц.
type Renderer struct {
	log *slog.Logger
}

// New создает новый экземпляр Renderer с указанным логгером.
func New(log *slog.Logger) *Renderer {
	return &Renderer{log: log}
}

// Page рендерит страницу name с данными data и указанным HTTP-статусом.
func (rd *Renderer) Page(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := tmpls.ExecuteTemplate(&buf, name, data); err != nil {
		rd.log.Error("failed to render template", slog.String("template", name), sl.Err(err))
		rd.Fail(w, r)
		return
	}
	chirender.Status(r, status)
	chirender.HTML(w, r, buf.String())
}

// Fail возвращает общую страницу сбоя, не раскрывая деталей ошибки.
func (rd *Renderer) Fail(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, "Something went wrong", http.StatusInternalServerError)
}
