package model

import (
	"encoding/json"
	"fmt"
)

// Тексты, которые видит пользователь
const (
	ErrorMessage       = "Failed to shorten URL. Check the URL and API status."
	SubmitLabel        = "Shorten URL"
	SubmitLoadingLabel = "Shortening..."
	Title              = "Serverless URL Shortener"
	ResultCaption      = "Your Short URL:"
	Placeholder        = "Enter the long URL (e.g., https://example.com)"
)

// CopyStatus - состояние кнопки копирования
type CopyStatus int

const (
	CopyReady CopyStatus = iota
	CopyDone
	CopyFailed
)

func (s CopyStatus) String() string {
	switch s {
	case CopyReady:
		return "Copy"
	case CopyDone:
		return "Copied!"
	case CopyFailed:
		return "Failed"
	}
	return fmt.Sprintf("CopyStatus(%d)", int(s))
}

func (s CopyStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *CopyStatus) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	switch label {
	case "Copy":
		*s = CopyReady
	case "Copied!":
		*s = CopyDone
	case "Failed":
		*s = CopyFailed
	default:
		return fmt.Errorf("unknown copy status %q", label)
	}
	return nil
}

// Phase - этап отправки формы
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSuccess
	PhaseError
)

var phaseNames = [...]string{"idle", "submitting", "success", "error"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Phase) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range phaseNames {
		if n == name {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", name)
}

// FormState - всё наблюдаемое состояние формы.
// ShortURL и Error никогда не заполнены одновременно.
type FormState struct {
	LongURL    string     `json:"longUrl"`
	ShortURL   string     `json:"shortUrl"`
	IsLoading  bool       `json:"isLoading"`
	Error      string     `json:"error"`
	CopyStatus CopyStatus `json:"copyStatus"`
	Phase      Phase      `json:"phase"`
}

// SubmitLabel возвращает подпись кнопки отправки для текущего состояния
func (s FormState) SubmitLabel() string {
	if s.IsLoading {
		return SubmitLoadingLabel
	}
	return SubmitLabel
}

type ShortenRequest struct {
	LongURL string `json:"longUrl"`
}

// Фабричный метод для создания тела запроса
func NewShortenRequest(longURL string) *ShortenRequest {
	return &ShortenRequest{LongURL: longURL}
}

type ShortenResponse struct {
	ShortURL string `json:"shortUrl"`
}
