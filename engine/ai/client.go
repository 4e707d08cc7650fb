// Package ai talks to Gemini for transcript summarization, categorization,
// and personal-story extraction. The service is treated as unreliable:
// responses are sanitized and validated, quota errors surface as
// domain.ErrRateLimited, and calls run through a circuit breaker.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"sermonscribe/engine/domain"
	"sermonscribe/pkg/resilience"
)

const (
	// maxInputChars bounds transcript text sent upstream to stay within
	// token limits.
	maxInputChars = 50000
	// minInputChars short-circuits requests for texts too short to analyze.
	minInputChars = 10
)

// ErrTextTooShort is returned when the input is below minInputChars; no API
// call is made.
var ErrTextTooShort = errors.New("text too short to analyze")

// Client wraps the Gemini SDK with a circuit breaker.
type Client struct {
	textModel *genai.GenerativeModel
	jsonModel *genai.GenerativeModel
	breaker   *resilience.Breaker
	log       *slog.Logger
}

// New creates a Gemini client. The json model is configured for
// application/json responses and serves categorization and story extraction.
func New(ctx context.Context, apiKey, modelName string, log *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key required")
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	if log == nil {
		log = slog.Default()
	}

	sdk, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	textModel := sdk.GenerativeModel(modelName)

	jsonModel := sdk.GenerativeModel(modelName)
	jsonModel.GenerationConfig.ResponseMIMEType = "application/json"

	return &Client{
		textModel: textModel,
		jsonModel: jsonModel,
		breaker:   resilience.NewBreaker(resilience.DefaultBreakerOpts),
		log:       log,
	}, nil
}

// Summarize produces a free-text summary of transcript text. maxWords <= 0
// leaves the length unconstrained.
func (c *Client) Summarize(ctx context.Context, text string, maxWords int) (string, error) {
	if len(strings.TrimSpace(text)) < minInputChars {
		return "", ErrTextTooShort
	}

	prompt := "Provide a clear and concise summary of the following sermon transcript. " +
		"Focus on the main points and key takeaways.\n\n" + truncate(text)
	if maxWords > 0 {
		prompt += fmt.Sprintf("\n\nKeep the summary within approximately %d words.", maxWords)
	}

	return c.generate(ctx, c.textModel, prompt)
}

// Categorize assigns the transcript to the fixed category vocabularies.
// Categories outside the vocabularies are discarded.
func (c *Client) Categorize(ctx context.Context, text string) (domain.CategorySet, error) {
	if len(strings.TrimSpace(text)) < minInputChars {
		return domain.CategorySet{}, nil
	}

	prompt := fmt.Sprintf(`Analyze this sermon transcript and categorize it into three category types.
Pick only the most relevant categories, strictly from these lists:

christian_life: %s
church_ministry: %s
theology: %s

Respond with a JSON object of three string arrays keyed
"christian_life", "church_ministry", and "theology".

Transcript:

%s`,
		strings.Join(domain.ChristianLifeCategories, ", "),
		strings.Join(domain.ChurchMinistryCategories, ", "),
		strings.Join(domain.TheologyCategories, ", "),
		truncate(text))

	raw, err := c.generate(ctx, c.jsonModel, prompt)
	if err != nil {
		return domain.CategorySet{}, err
	}

	var cs domain.CategorySet
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &cs); err != nil {
		c.log.Error("malformed categorization response", "error", err)
		return domain.CategorySet{}, domain.NewExternalServiceError("gemini",
			fmt.Errorf("malformed categorization JSON: %w", err))
	}
	return domain.FilterCategories(cs), nil
}

// GenerateStories extracts personal or illustrative stories told in the
// sermon, each with a title, short summary, and takeaway message.
func (c *Client) GenerateStories(ctx context.Context, text string) ([]domain.PersonalStory, error) {
	if len(strings.TrimSpace(text)) < minInputChars {
		return nil, nil
	}

	prompt := `Identify the personal or illustrative stories told in this sermon transcript.
Respond with a JSON array of objects, each with "title", "summary", and
"message" (the point the story illustrates). Return [] if there are none.

Transcript:

` + truncate(text)

	raw, err := c.generate(ctx, c.jsonModel, prompt)
	if err != nil {
		return nil, err
	}

	var stories []domain.PersonalStory
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &stories); err != nil {
		c.log.Error("malformed stories response", "error", err)
		return nil, domain.NewExternalServiceError("gemini",
			fmt.Errorf("malformed stories JSON: %w", err))
	}
	return stories, nil
}

// generate runs one breaker-guarded completion and flattens the text parts.
func (c *Client) generate(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	var out string
	err := c.breaker.Call(ctx, func(ctx context.Context) error {
		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return mapErr(err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			return domain.NewExternalServiceError("gemini", fmt.Errorf("empty response"))
		}

		var sb strings.Builder
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				sb.WriteString(string(txt))
			}
		}
		out = strings.TrimSpace(sb.String())
		if out == "" {
			return domain.NewExternalServiceError("gemini", fmt.Errorf("empty response text"))
		}
		return nil
	})
	return out, err
}

// mapErr converts SDK errors to the domain taxonomy. Quota exhaustion maps
// to ErrRateLimited so callers can back off (the service recovers in about
// an hour).
func mapErr(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && (gerr.Code == 429 || gerr.Code == 403) {
		return fmt.Errorf("%w: gemini status %d", domain.ErrRateLimited, gerr.Code)
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "rate limit") {
		return fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
	}
	return domain.NewExternalServiceError("gemini", err)
}

// truncate caps text at maxInputChars, marking the cut.
func truncate(text string) string {
	if len(text) > maxInputChars {
		return text[:maxInputChars] + "..."
	}
	return text
}
