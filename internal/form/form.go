// Package form реализует форму сокращения ссылки: ввод длинной ссылки,
// один запрос к эндпоинту, показ результата или ошибки и копирование
// короткой ссылки в буфер обмена.
package form

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"

	model "github.com/IgorGreusunset/shortener-ui/internal/app"
	"github.com/IgorGreusunset/shortener-ui/internal/client"
	"go.uber.org/zap"
)

// DefaultCopyResetAfter - сколько кнопка показывает "Copied!"
const DefaultCopyResetAfter = 2 * time.Second

var (
	ErrBusy          = errors.New("shorten request already in progress")
	ErrInvalidURL    = errors.New("long url must be an absolute url")
	ErrNothingToCopy = errors.New("no short url to copy")
	ErrClosed        = errors.New("form is closed")
)

//go:generate mockgen -destination=../mocks/form_mock.go -package=mocks . Shortener,Clipboard

type Shortener interface {
	Shorten(ctx context.Context, longURL string) (string, error)
}

type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

type Option func(*Form)

func WithLogger(log *zap.Logger) Option {
	return func(f *Form) {
		if log != nil {
			f.log = log
		}
	}
}

func WithCopyResetAfter(d time.Duration) Option {
	return func(f *Form) {
		if d > 0 {
			f.resetAfter = d
		}
	}
}

// WithOnChange регистрирует обработчик, который получает снимок состояния
// после каждого перехода. Снимки приходят в порядке переходов.
// Обработчик может вызывать State, но не Submit, Copy или SetLongURL.
func WithOnChange(fn func(model.FormState)) Option {
	return func(f *Form) {
		f.onChange = fn
	}
}

type Form struct {
	mu       sync.Mutex
	notifyMu sync.Mutex

	state      model.FormState
	shortener  Shortener
	clipboard  Clipboard
	log        *zap.Logger
	onChange   func(model.FormState)
	resetAfter time.Duration

	resetTimer *time.Timer
	// copySeq растёт при каждом копировании и отправке,
	// устаревшие завершения и таймеры по нему себя узнают
	copySeq uint64
	closed  bool
}

// Фабричный метод для создания формы
func New(shortener Shortener, clipboard Clipboard, opts ...Option) *Form {
	f := &Form{
		shortener:  shortener,
		clipboard:  clipboard,
		log:        zap.NewNop(),
		resetAfter: DefaultCopyResetAfter,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State возвращает снимок текущего состояния
func (f *Form) State() model.FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// SetLongURL запоминает введённое значение. Во время запроса ввод заблокирован.
func (f *Form) SetLongURL(value string) {
	f.mu.Lock()
	if f.closed || f.state.IsLoading || f.state.LongURL == value {
		f.mu.Unlock()
		return
	}
	f.state.LongURL = value
	f.commitLocked()
}

// Submit отправляет длинную ссылку на сокращение.
// Ошибки эндпоинта не возвращаются: они попадают в состояние формы и в лог.
func (f *Form) Submit(ctx context.Context, longURL string) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	if f.state.IsLoading {
		f.mu.Unlock()
		return ErrBusy
	}
	longURL = strings.TrimSpace(longURL)
	if !validURL(longURL) {
		f.mu.Unlock()
		return ErrInvalidURL
	}

	f.stopTimerLocked()
	f.copySeq++
	f.state = model.FormState{
		LongURL:    longURL,
		IsLoading:  true,
		CopyStatus: model.CopyReady,
		Phase:      model.PhaseSubmitting,
	}
	f.commitLocked()

	shortURL, err := f.shortener.Shorten(ctx, longURL)

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.state.IsLoading = false
	if err != nil {
		f.logShortenError(longURL, err)
		f.state.Error = model.ErrorMessage
		f.state.Phase = model.PhaseError
	} else {
		f.state.ShortURL = shortURL
		f.state.LongURL = ""
		f.state.Phase = model.PhaseSuccess
	}
	f.commitLocked()
	return nil
}

// Copy копирует короткую ссылку в буфер обмена.
// Отказ буфера не возвращается, он виден как CopyFailed.
func (f *Form) Copy(ctx context.Context) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	if f.state.ShortURL == "" {
		f.mu.Unlock()
		return ErrNothingToCopy
	}
	text := f.state.ShortURL
	f.copySeq++
	seq := f.copySeq
	f.mu.Unlock()

	err := f.clipboard.WriteText(ctx, text)

	f.mu.Lock()
	if f.closed || seq != f.copySeq {
		f.mu.Unlock()
		return nil
	}
	f.stopTimerLocked()
	if err != nil {
		f.log.Warn("Copy failed", zap.Error(err))
		f.state.CopyStatus = model.CopyFailed
	} else {
		f.state.CopyStatus = model.CopyDone
		f.resetTimer = time.AfterFunc(f.resetAfter, func() {
			f.resetCopyStatus(seq)
		})
	}
	f.commitLocked()
	return nil
}

// Close останавливает таймер сброса. После Close форма не меняет состояние.
func (f *Form) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.stopTimerLocked()
	return nil
}

func (f *Form) resetCopyStatus(seq uint64) {
	f.mu.Lock()
	if f.closed || seq != f.copySeq || f.state.CopyStatus != model.CopyDone {
		f.mu.Unlock()
		return
	}
	f.resetTimer = nil
	f.state.CopyStatus = model.CopyReady
	f.commitLocked()
}

func (f *Form) stopTimerLocked() {
	if f.resetTimer != nil {
		f.resetTimer.Stop()
		f.resetTimer = nil
	}
}

// commitLocked вызывается под f.mu и отпускает его.
// notifyMu берётся до отпускания f.mu, чтобы снимки не обгоняли друг друга.
func (f *Form) commitLocked() {
	snapshot := f.state
	hook := f.onChange
	if hook == nil {
		f.mu.Unlock()
		return
	}
	f.notifyMu.Lock()
	f.mu.Unlock()
	defer f.notifyMu.Unlock()
	hook(snapshot)
}

func (f *Form) logShortenError(longURL string, err error) {
	fields := []zap.Field{zap.String("long_url", longURL), zap.Error(err)}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		fields = append(fields,
			zap.Int("status", apiErr.StatusCode),
			zap.String("request_id", apiErr.RequestID),
		)
	}
	f.log.Error("Failed to shorten URL", fields...)
}

// validURL повторяет проверку браузерного input type=url:
// ссылка должна быть абсолютной, а у http(s) должен быть хост
func validURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.Host != ""
	}
	return u.Opaque != "" || u.Host != "" || u.Path != ""
}
