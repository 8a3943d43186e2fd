package improve

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	apperrors "github.com/Teapot-Agency/whisper-trascription-app/internal/app/errors"
)

// maxChunkChars keeps each request comfortably inside the model's context
// window. Longer transcripts are split on sentence boundaries.
const maxChunkChars = 8000

// minUsableChars guards against the model returning commentary or an empty
// body instead of the transcript.
const minUsableChars = 10

const correctionPrompt = `You are a transcript correction assistant. Deliver a corrected version of the transcript that is fluent and properly punctuated while preserving all of the original meaning and sentence count.

Rules:
1. Do not add or remove sentences, phrases, or information.
2. Correct spelling, diacritics, homophones, and obvious mis-hearings.
3. Fix grammar and word order only as needed for natural flow.
4. Insert appropriate punctuation and capitalization.
5. Keep all jargon, proper names, numbers, and measurement units unchanged.
6. Do not translate; retain every language exactly as it appears.
7. Preserve existing speaker labels or timestamps if present.
8. Return only the improved transcript, with no commentary and no markdown.

Input transcript:
%s

Improved transcript:`

const punctuationPrompt = `You are a punctuation specialist. Review the following text and make only punctuation and capitalization adjustments.

Rules:
1. Do not change, add, or remove any words.
2. Only insert, remove, or adjust punctuation marks.
3. Only adjust capitalization where grammatically required.
4. Ensure proper sentence boundaries and flow.
5. Preserve all proper names, numbers, and technical terms exactly as written.
6. Return only the corrected text, with no commentary.

Input text:
%s

Punctuation-corrected text:`

// TranscriptImprover rewrites raw Whisper output with GPT-4o-mini in two
// passes: a correction pass for mis-hearings and grammar, then a
// punctuation-only refinement. A failed second pass falls back to the first
// pass result instead of erroring.
type TranscriptImprover struct {
	client *openai.Client
	logger *zap.Logger
}

func NewTranscriptImprover(client *openai.Client, logger *zap.Logger) *TranscriptImprover {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptImprover{client: client, logger: logger}
}

// Improve returns the refined transcript. Empty input comes back unchanged
// without a network call.
func (t *TranscriptImprover) Improve(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	var corrected string
	if len(text) <= maxChunkChars {
		out, err := t.complete(ctx, correctionPrompt, text)
		if err != nil {
			return "", err
		}
		corrected = out
	} else {
		chunks := splitChunks(text)
		improved := make([]string, 0, len(chunks))
		for _, chunk := range chunks {
			out, err := t.complete(ctx, correctionPrompt, chunk)
			if err != nil {
				return "", err
			}
			improved = append(improved, out)
		}
		corrected = strings.Join(improved, " ")
	}

	if len(corrected) > maxChunkChars {
		return corrected, nil
	}

	refined, err := t.complete(ctx, punctuationPrompt, corrected)
	if err != nil {
		t.logger.Warn("punctuation pass failed, keeping first pass result", zap.Error(err))
		return corrected, nil
	}
	return refined, nil
}

// complete runs one chat completion and sanity-checks the output, falling
// back to the input when the model returns something unusable.
func (t *TranscriptImprover) complete(ctx context.Context, prompt, text string) (string, error) {
	words := len(strings.Fields(text))
	response, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(prompt, text)},
		},
		// Roughly twice the input length, so corrections have headroom.
		MaxTokens: int(float64(words)*2.5) + 50,
	})
	if err != nil {
		return "", classifyError(err)
	}

	if len(response.Choices) == 0 {
		return text, nil
	}
	out := strings.TrimSpace(response.Choices[0].Message.Content)
	if len(out) < minUsableChars {
		t.logger.Warn("improvement pass returned unusable output, keeping input",
			zap.Int("output_chars", len(out)))
		return text, nil
	}
	return out, nil
}

// splitChunks splits on sentence ends, packing sentences until the chunk
// limit is reached.
func splitChunks(text string) []string {
	sentences := strings.SplitAfter(text, ". ")
	chunks := make([]string, 0, len(text)/maxChunkChars+1)

	var current strings.Builder
	for _, sentence := range sentences {
		if current.Len() > 0 && current.Len()+len(sentence) > maxChunkChars {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
		current.WriteString(sentence)
	}
	if strings.TrimSpace(current.String()) != "" {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}
	return chunks
}

// classifyError mirrors the transcription client's taxonomy mapping. The
// auth message never includes the configured key.
func classifyError(err error) error {
	var apiErr *openai.APIError
	if stderrors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return apperrors.New(apperrors.KindAuth, "OpenAI API key is invalid or missing")
		case http.StatusTooManyRequests:
			return apperrors.Wrap(err, apperrors.KindTransient, "improvement service rate limit exceeded")
		}
	}
	return apperrors.Wrap(err, apperrors.KindTransient, "transcript improvement request failed")
}
