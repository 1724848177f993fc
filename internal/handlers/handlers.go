package handlers

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	model "github.com/IgorGreusunset/shortener-ui/internal/app"
	"github.com/IgorGreusunset/shortener-ui/internal/form"
	"github.com/IgorGreusunset/shortener-ui/internal/logger"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=../mocks/controller_mock.go -package=mocks . Controller

// Controller - то, что обработчикам нужно от формы
type Controller interface {
	State() model.FormState
	SetLongURL(value string)
	Submit(ctx context.Context, longURL string) error
	Copy(ctx context.Context) error
}

//go:embed templates/page.html
var templates embed.FS

var page = template.Must(template.ParseFS(templates, "templates/page.html"))

type pageData struct {
	Title       string
	Caption     string
	Placeholder string
	State       model.FormState
	CopyClass   string
	Refresh     bool
}

func newPageData(state model.FormState) pageData {
	data := pageData{
		Title:       model.Title,
		Caption:     model.ResultCaption,
		Placeholder: model.Placeholder,
		State:       state,
		//Страница сама обновляется, пока идёт запрос или горит "Copied!"
		Refresh: state.IsLoading || state.CopyStatus == model.CopyDone,
	}
	switch state.CopyStatus {
	case model.CopyDone:
		data.CopyClass = " copied"
	case model.CopyFailed:
		data.CopyClass = " failed"
	}
	return data
}

func renderPage(c Controller, res http.ResponseWriter, status int) {
	res.Header().Set("Content-Type", "text/html; charset=utf-8")
	res.WriteHeader(status)
	if err := page.Execute(res, newPageData(c.State())); err != nil {
		logger.Log.Error("Error rendering page", zap.Error(err))
	}
}

// Handler для отрисовки страницы с текущим состоянием формы
func PageHandler(c Controller, res http.ResponseWriter, req *http.Request) {
	renderPage(c, res, http.StatusOK)
}

// Handler для отправки длинной ссылки из формы
func SubmitHandler(c Controller, res http.ResponseWriter, req *http.Request) {
	if err := req.ParseForm(); err != nil {
		res.WriteHeader(http.StatusBadRequest)
		return
	}
	longURL := req.PostFormValue("longUrl")
	c.SetLongURL(longURL)

	err := c.Submit(req.Context(), longURL)
	switch {
	case err == nil:
		http.Redirect(res, req, "/", http.StatusSeeOther)
	case errors.Is(err, form.ErrBusy):
		renderPage(c, res, http.StatusConflict)
	case errors.Is(err, form.ErrInvalidURL):
		renderPage(c, res, http.StatusBadRequest)
	case errors.Is(err, form.ErrClosed):
		res.WriteHeader(http.StatusServiceUnavailable)
	default:
		logger.Log.Error("Unexpected submit error", zap.Error(err))
		res.WriteHeader(http.StatusInternalServerError)
	}
}

// Handler для копирования короткой ссылки в буфер обмена
func CopyHandler(c Controller, res http.ResponseWriter, req *http.Request) {
	err := c.Copy(req.Context())
	switch {
	case err == nil:
		http.Redirect(res, req, "/", http.StatusSeeOther)
	case errors.Is(err, form.ErrNothingToCopy):
		renderPage(c, res, http.StatusBadRequest)
	case errors.Is(err, form.ErrClosed):
		res.WriteHeader(http.StatusServiceUnavailable)
	default:
		logger.Log.Error("Unexpected copy error", zap.Error(err))
		res.WriteHeader(http.StatusInternalServerError)
	}
}

// Handler для получения состояния формы в json
func StateHandler(c Controller, res http.ResponseWriter, req *http.Request) {
	response, err := json.Marshal(c.State())
	if err != nil {
		logger.Log.Debug("error", zap.Error(err))
		res.WriteHeader(http.StatusInternalServerError)
		return
	}

	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(http.StatusOK)
	res.Write(response)
}

func PingHandler(res http.ResponseWriter, req *http.Request) {
	res.WriteHeader(http.StatusOK)
}
