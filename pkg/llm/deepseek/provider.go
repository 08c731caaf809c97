package deepseek

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"adv-assistant-be/pkg/llm"
)

const (
	MsgTimeout    = "Erreur: Timeout de la requête"
	MsgGeneration = "Erreur lors de la génération de la réponse"
	MsgNoAnswer   = "Aucune réponse générée"

	defaultBaseURL = "https://api.deepseek.com/v1/chat/completions"
	doneSentinel   = "[DONE]"
)

// DeepseekProvider talks to the hosted DeepSeek API, which follows the
// OpenAI chat-completions wire format (SSE data: lines, [DONE] sentinel).
type DeepseekProvider struct {
	APIKey  string
	Model   string
	BaseURL string
	Client  *http.Client
}

var _ llm.Provider = &DeepseekProvider{}

func NewDeepseekProvider(apiKey, model string) *DeepseekProvider {
	return &DeepseekProvider{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: defaultBaseURL,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Stream      bool          `json:"stream"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
	Delta   chatMessage `json:"delta"`
}

type chatResponse struct {
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
}

// --- Interface Implementation ---

func (d *DeepseekProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	resp, err := d.do(ctx, prompt, false, opts)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", llm.ErrBackendUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d, body: %s", llm.ErrBackendUnavailable, resp.StatusCode, string(bodyBytes))
	}

	var parsed chatResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return MsgNoAnswer, nil
	}
	return parsed.Choices[0].Message.Content, nil
}

// GenerateStream parses the SSE framing of the chat-completions stream
// and re-emits each non-empty delta. The [DONE] sentinel closes the
// stream; transport failures become a single placeholder chunk.
func (d *DeepseekProvider) GenerateStream(ctx context.Context, prompt string, opts ...llm.Option) *llm.Stream {
	stream := llm.NewStream()

	go func() {
		defer stream.Close()

		resp, err := d.do(ctx, prompt, true, opts)
		if err != nil {
			stream.Send(ctx, placeholderFor(err))
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			stream.Send(ctx, fmt.Sprintf("Erreur API: %d", resp.StatusCode))
			return
		}

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if !strings.HasPrefix(line, "data:") {
				continue
			}
			payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			if payload == doneSentinel {
				return
			}
			if payload == "" {
				continue
			}

			var chunk chatResponse
			if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
				continue
			}
			if len(chunk.Choices) == 0 {
				continue
			}
			if content := chunk.Choices[0].Delta.Content; content != "" {
				if !stream.Send(ctx, content) {
					return
				}
			}
		}
		if err := scanner.Err(); err != nil {
			stream.Send(ctx, placeholderFor(err))
		}
	}()

	return stream
}

func (d *DeepseekProvider) do(ctx context.Context, prompt string, streaming bool, opts []llm.Option) (*http.Response, error) {
	options := llm.ApplyOptions(opts)

	model := d.Model
	if options.Model != "" {
		model = options.Model
	}

	reqPayload := chatRequest{
		Model:       model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Stream:      streaming,
		Temperature: options.Temperature,
		MaxTokens:   options.MaxTokens,
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", d.BaseURL, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+d.APIKey)

	resp, err := d.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", llm.ErrBackendUnavailable, err)
	}
	return resp, nil
}

func placeholderFor(err error) string {
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return MsgTimeout
	}
	return MsgGeneration
}
