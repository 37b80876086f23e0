// File: services/intelligence/geminiClient.go
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"campuspilot/models"
	"campuspilot/utils"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const extractionPrompt = `Extract booking details from the user's message.
Respond with ONLY a JSON object, no prose, with these keys (omit unknown ones):
{"intent": "book|check|cancel|chat", "room_name": "...", "date": "YYYY-MM-DD",
"start_time": "HH:MM", "end_time": "HH:MM", "module_code": "...",
"group_size": 0, "booking_id": "..."}
Message: %s`

// GeminiExtractor extracts intent and entities with a Gemini call, falling
// back to the rule-based parser whenever the model fails or returns something
// unparseable. The fallback keeps the assistant usable without the API.
type GeminiExtractor struct {
	model    *genai.GenerativeModel
	fallback *RuleBasedExtractor
}

func NewGeminiExtractor(apiKey string, fallback *RuleBasedExtractor) (*GeminiExtractor, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("models/gemini-1.5-pro")
	return &GeminiExtractor{model: model, fallback: fallback}, nil
}

func (g *GeminiExtractor) Extract(ctx context.Context, text string) (models.ExtractedRequest, error) {
	raw, err := g.generate(ctx, fmt.Sprintf(extractionPrompt, text))
	if err != nil {
		utils.GetLogger().Warn("gemini extraction failed, using rule-based parser", zap.Error(err))
		return g.fallback.Extract(ctx, text)
	}

	extracted, err := parseExtractionJSON(raw)
	if err != nil {
		utils.GetLogger().Warn("gemini returned unparseable extraction, using rule-based parser",
			zap.String("raw", raw), zap.Error(err))
		return g.fallback.Extract(ctx, text)
	}
	return extracted, nil
}

func (g *GeminiExtractor) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

// parseExtractionJSON decodes the model's JSON reply, tolerating markdown code
// fences, and converts clock strings to minutes.
func parseExtractionJSON(raw string) (models.ExtractedRequest, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var payload struct {
		Intent     string `json:"intent"`
		RoomName   string `json:"room_name"`
		Date       string `json:"date"`
		StartTime  string `json:"start_time"`
		EndTime    string `json:"end_time"`
		ModuleCode string `json:"module_code"`
		GroupSize  int    `json:"group_size"`
		BookingID  string `json:"booking_id"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return models.ExtractedRequest{}, err
	}

	out := models.ExtractedRequest{
		Intent:    payload.Intent,
		BookingID: payload.BookingID,
	}
	out.Request.RoomName = strings.ToUpper(strings.TrimSpace(payload.RoomName))
	out.Request.ModuleCode = strings.ToUpper(strings.TrimSpace(payload.ModuleCode))
	out.Request.GroupSize = payload.GroupSize

	if payload.Date != "" {
		if normalized, err := utils.ParseDate(payload.Date); err == nil {
			out.Request.Date = normalized
		}
	}
	if payload.StartTime != "" {
		if start, err := utils.ParseClock(payload.StartTime); err == nil {
			out.Request.Start = &start
		}
	}
	if payload.EndTime != "" {
		if end, err := utils.ParseClock(payload.EndTime); err == nil {
			out.Request.End = &end
		}
	}

	if out.Intent == "" && out.Request == (models.BookingRequest{}) && out.BookingID == "" {
		return models.ExtractedRequest{}, ErrExtractionFailure
	}
	return out, nil
}
