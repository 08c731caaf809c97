package ollama

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
	"time"

	"adv-assistant-be/pkg/llm"
)

// User-visible placeholders for backend failures. The streaming path emits
// these instead of propagating transport errors mid-stream.
const (
	MsgTimeout      = "Erreur: Timeout de la requête"
	MsgGeneration   = "Erreur lors de la génération de la réponse"
	apiErrorFormat  = "Erreur API: %d"
	generateTimeout = 60 * time.Second
)

type OllamaProvider struct {
	BaseURL string
	Model   string
	Client  *http.Client
}

// Ensure OllamaProvider implements Provider
var _ llm.Provider = &OllamaProvider{}

func NewOllamaProvider(baseURL, model string) *OllamaProvider {
	return &OllamaProvider{
		BaseURL: baseURL,
		Model:   model,
		Client: &http.Client{
			Timeout: generateTimeout,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options *ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaGenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// --- Interface Implementation ---

func (o *OllamaProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	resp, err := o.do(ctx, prompt, false, opts)
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

	var ollamaResp ollamaGenerateResponse
	if err := json.Unmarshal(bodyBytes, &ollamaResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	return ollamaResp.Response, nil
}

// GenerateStream consumes Ollama's NDJSON stream and re-emits the
// "response" field of each line. Empty chunks and unparseable lines are
// dropped; transport failures become a single placeholder chunk.
func (o *OllamaProvider) GenerateStream(ctx context.Context, prompt string, opts ...llm.Option) *llm.Stream {
	stream := llm.NewStream()

	go func() {
		defer stream.Close()

		resp, err := o.do(ctx, prompt, true, opts)
		if err != nil {
			stream.Send(ctx, placeholderFor(err))
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			stream.Send(ctx, fmt.Sprintf(apiErrorFormat, resp.StatusCode))
			return
		}

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}

			var chunk ollamaGenerateResponse
			if err := json.Unmarshal(line, &chunk); err != nil {
				// Skip malformed lines, the stream may recover
				continue
			}
			if chunk.Response != "" {
				if !stream.Send(ctx, chunk.Response) {
					return
				}
			}
			if chunk.Done {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			stream.Send(ctx, placeholderFor(err))
		}
	}()

	return stream
}

func (o *OllamaProvider) do(ctx context.Context, prompt string, streaming bool, opts []llm.Option) (*http.Response, error) {
	options := llm.ApplyOptions(opts)

	model := o.Model
	if options.Model != "" {
		model = options.Model
	}

	reqPayload := ollamaGenerateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: streaming,
		Options: &ollamaOptions{
			Temperature: options.Temperature,
			NumPredict:  options.MaxTokens,
		},
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := o.BaseURL + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.Client.Do(req)
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
