// Package gateway implements the generative-AI collaborator on top of the
// Gemini API (google.golang.org/genai). It is the only package that talks to
// the provider; everything else depends on the service.Gateway interface.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/pkordes/doodle-diary/internal/domain"
)

// promptInstruction frames the transcript for the prompt stage. The model is
// asked for a single short scene description the image stage can render.
const promptInstruction = `You are the art director for a journaling app that turns daily
journal entries into small stylized drawings ("doodles").

Rewrite the journal entry below as one short visual prompt for an image
generator. Describe a single simple scene capturing the mood of the day.
The drawing must use %s lines, a %s accent color on a plain background, and
a %s art style. Do not include any text or lettering in the image.
Respond with the prompt only.

Journal entry:
%s`

// Gemini implements service.Gateway against the Gemini API.
type Gemini struct {
	client     *genai.Client
	textModel  string
	imageModel string
	liveModel  string
	logger     *slog.Logger
}

// NewGemini constructs a Gemini gateway. The three model names cover the
// three consumed operations: prompt text, image generation, and live
// transcription.
func NewGemini(ctx context.Context, apiKey, textModel, imageModel, liveModel string, logger *slog.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gateway.NewGemini: api key is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gateway.NewGemini: %w", err)
	}

	return &Gemini{
		client:     client,
		textModel:  textModel,
		imageModel: imageModel,
		liveModel:  liveModel,
		logger:     logger,
	}, nil
}

// GeneratePrompt asks the text model to turn transcript + style into a short
// visual prompt.
func (g *Gemini) GeneratePrompt(ctx context.Context, transcript string, style domain.DoodleStyle) (string, error) {
	instruction := fmt.Sprintf(promptInstruction,
		strings.ToLower(string(style.Thickness)),
		strings.ToLower(style.Color),
		strings.ToLower(string(style.ArtStyle)),
		transcript,
	)

	resp, err := g.client.Models.GenerateContent(ctx, g.textModel, genai.Text(instruction), nil)
	if err != nil {
		return "", fmt.Errorf("gateway.Gemini.GeneratePrompt: %w", err)
	}

	prompt := strings.TrimSpace(resp.Text())
	if prompt == "" {
		return "", fmt.Errorf("gateway.Gemini.GeneratePrompt: model returned no text")
	}
	return prompt, nil
}

// GenerateImage renders the visual prompt into a single PNG.
func (g *Gemini) GenerateImage(ctx context.Context, prompt string) (domain.ImageData, error) {
	resp, err := g.client.Models.GenerateImages(ctx, g.imageModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages:   1,
		OutputMIMEType:   "image/png",
		IncludeRAIReason: true,
	})
	if err != nil {
		return domain.ImageData{}, fmt.Errorf("gateway.Gemini.GenerateImage: %w", err)
	}

	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return domain.ImageData{}, fmt.Errorf("gateway.Gemini.GenerateImage: model returned no image")
	}

	img := resp.GeneratedImages[0].Image
	if len(img.ImageBytes) == 0 {
		return domain.ImageData{}, fmt.Errorf("gateway.Gemini.GenerateImage: empty image payload")
	}

	return domain.ImageData{Data: img.ImageBytes, MIMEType: img.MIMEType}, nil
}
