package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/goliatone/go-roadmap/pkg/model"
)

// DefaultModel is used when GenAIConfig.Model is empty.
const DefaultModel = "gemini-2.5-flash"

// TextModel answers a prompt with free text. GenAIModel is the production
// implementation; tests substitute scripted models.
type TextModel interface {
	GenerateText(ctx context.Context, system, prompt string) (string, error)
}

// GenAIConfig configures the Gemini client.
type GenAIConfig struct {
	APIKey          string
	Model           string
	Temperature     float32
	MaxOutputTokens int32
}

// GenAIModel calls Gemini through google.golang.org/genai.
type GenAIModel struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

var _ TextModel = (*GenAIModel)(nil)

// NewGenAIModel creates a Gemini client for cfg.
func NewGenAIModel(ctx context.Context, cfg GenAIConfig) (*GenAIModel, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("generator: genai api key is required")
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("generator: create genai client: %w", err)
	}

	generation := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	if cfg.Temperature > 0 {
		generation.Temperature = genai.Ptr(cfg.Temperature)
	}
	if cfg.MaxOutputTokens > 0 {
		generation.MaxOutputTokens = cfg.MaxOutputTokens
	}

	return &GenAIModel{client: client, model: modelName, config: generation}, nil
}

// Name returns the model identifier.
func (m *GenAIModel) Name() string {
	return "genai:" + m.model
}

// GenerateText sends one user turn with system as the system instruction.
func (m *GenAIModel) GenerateText(ctx context.Context, system, prompt string) (string, error) {
	cfg := *m.config
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	resp, err := m.client.Models.GenerateContent(ctx, m.model, contents, &cfg)
	if err != nil {
		return "", fmt.Errorf("generator: genai generate: %w", err)
	}
	return resp.Text(), nil
}

// ModelSource asks a TextModel for the phases and parses its answer.
type ModelSource struct {
	model  TextModel
	logger *zap.Logger
}

var _ PhaseSource = (*ModelSource)(nil)

// NewModelSource wraps model. A nil logger falls back to a no-op logger.
func NewModelSource(model TextModel, logger *zap.Logger) *ModelSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModelSource{model: model, logger: logger}
}

// Name reports the source identifier.
func (s *ModelSource) Name() string {
	if named, ok := s.model.(interface{ Name() string }); ok {
		return named.Name()
	}
	return "model"
}

// Phases prompts the model and parses the phases out of its answer.
func (s *ModelSource) Phases(ctx context.Context, input model.FormInput) ([]model.PhaseStep, error) {
	if s.model == nil {
		return nil, errors.New("generator: model is not configured")
	}
	text, err := s.model.GenerateText(ctx, SystemInstruction, BuildPrompt(input))
	if err != nil {
		return nil, err
	}
	steps, err := ParseResponse(text)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("model phases parsed", zap.Int("phases", len(steps)))
	return steps, nil
}
