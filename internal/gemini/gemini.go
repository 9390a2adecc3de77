package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"resty.dev/v3"
)

const generateContentURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

// ErrServiceUnavailable báo lỗi hạ tầng: chưa cấu hình API key hoặc không
// gọi được Gemini. Người dùng không sửa được, phải báo quản trị viên.
var ErrServiceUnavailable = errors.New("gemini service unavailable")

// MalformedResponseError means Gemini answered but the text could not be
// decoded into an import intent even after cleanup. The raw text is kept for
// diagnostics; the user just needs to repeat the sentence.
type MalformedResponseError struct {
	Raw string
}

func (e *MalformedResponseError) Error() string {
	return "gemini response is not valid JSON"
}

// Service gửi file ghi âm lên Gemini và bóc tách thông tin nhập hàng.
type Service struct {
	client *resty.Client
	apiKey string
	model  string
}

func NewService(client *resty.Client, apiKey, model string) *Service {
	return &Service{
		client: client,
		apiKey: apiKey,
		model:  model,
	}
}

// Configured reports whether the service has credentials to call Gemini.
func (s *Service) Configured() bool {
	return s.apiKey != ""
}

type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// ExtractImportIntent transcribes a Vietnamese voice recording into a
// structured stock-intake intent. The audio goes to Gemini together with the
// instruction prompt; the text answer is defensively cleaned before decoding
// because the model sometimes wraps JSON in code fences or prose.
func (s *Service) ExtractImportIntent(ctx context.Context, audio []byte, mimeType string) (*ImportIntent, error) {
	if !s.Configured() {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY is not set", ErrServiceUnavailable)
	}

	reqBody := generateContentRequest{
		Contents: []content{
			{
				Parts: []part{
					{Text: importPrompt},
					{InlineData: &inlineData{
						MimeType: mimeType,
						Data:     base64.StdEncoding.EncodeToString(audio),
					}},
				},
			},
		},
		GenerationConfig: generationConfig{
			Temperature:     0.1,
			TopP:            0.8,
			TopK:            40,
			MaxOutputTokens: 1024,
		},
	}

	var result generateContentResponse

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("key", s.apiKey).
		SetBody(reqBody).
		SetResult(&result).
		Post(fmt.Sprintf(generateContentURL, s.model))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: gemini returned status %s", ErrServiceUnavailable, resp.Status())
	}

	var text strings.Builder
	for _, candidate := range result.Candidates {
		for _, p := range candidate.Content.Parts {
			text.WriteString(p.Text)
		}
	}

	log.Debug().Str("model", s.model).Str("response", text.String()).Msg("gemini response")

	return DecodeIntent(text.String())
}
