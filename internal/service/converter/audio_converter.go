package converter

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/generative-ai-go/genai"

	convSvc "markitdown-api/internal/domain/services/conversion"
)

const transcribePrompt = "Transcribe this audio recording verbatim. " +
	"Return only the transcript text, without commentary or timestamps."

var audioMIMETypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
	".aac":  "audio/aac",
	".aiff": "audio/aiff",
}

// contentGenerator is satisfied by *genai.GenerativeModel
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// audioConverter transcribes speech through Gemini
type audioConverter struct {
	model contentGenerator
}

// NewAudioConverter creates a transcriber on top of a shared Gemini client.
// The caller owns the client.
func NewAudioConverter(client *genai.Client, model string) convSvc.ContentConverter {
	m := client.GenerativeModel(strings.TrimSpace(model))
	m.GenerationConfig = genai.GenerationConfig{
		Temperature: ptrFloat32(0),
	}
	return newAudioConverter(m)
}

func newAudioConverter(model contentGenerator) *audioConverter {
	return &audioConverter{model: model}
}

func (c *audioConverter) Convert(ctx context.Context, in *convSvc.Input) (*convSvc.Output, error) {
	parts := []genai.Part{
		genai.Text(transcribePrompt),
		&genai.Blob{MIMEType: audioMIMEType(in), Data: in.Content},
	}

	// One attempt per request; upstream failures surface as conversion errors
	resp, err := c.model.GenerateContent(ctx, parts...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	txt := strings.TrimSpace(firstText(resp))
	if txt == "" {
		return nil, errors.New("transcription returned no text")
	}
	return &convSvc.Output{Markdown: "### Audio Transcript:\n\n" + txt}, nil
}

func (c *audioConverter) SupportedExtensions() []string {
	exts := make([]string, 0, len(audioMIMETypes))
	for ext := range audioMIMETypes {
		exts = append(exts, ext)
	}
	return exts
}

func (c *audioConverter) Name() string {
	return "audio"
}

// audioMIMEType prefers a declared audio/* content type over the extension
func audioMIMEType(in *convSvc.Input) string {
	if mediaType, _, err := mime.ParseMediaType(in.ContentType); err == nil && strings.HasPrefix(mediaType, "audio/") {
		return mediaType
	}
	if t, ok := audioMIMETypes[strings.ToLower(filepath.Ext(in.Filename))]; ok {
		return t
	}
	return "audio/mpeg"
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
