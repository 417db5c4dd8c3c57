// Package interpreter wraps the OpenAI HTTP API for the bilingual
// text/voice/photo interpreter: translation, transcription, speech
// synthesis, and image text extraction.
package interpreter

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

const defaultBaseURL = "https://api.openai.com/v1"

// ErrNoAPIKey is returned when the interpreter is used without a key;
// callers treat it as "feature disabled" rather than a hard failure.
var ErrNoAPIKey = errors.New("interpreter: OpenAI API key is not configured")

// Config selects the models and voice used for each capability.
// BaseURL overrides the OpenAI endpoint when set.
type Config struct {
	APIKey         string
	BaseURL        string
	TranslateModel string
	STTModel       string
	TTSModel       string
	TTSVoice       string
	OCRModel       string
}

// AudioClip is an in-memory audio recording with its declared identity,
// as the transcription endpoint needs a filename and MIME type.
type AudioClip struct {
	Data     []byte
	Filename string
	MIME     string
}

// Client calls the OpenAI API. Calls are synchronous with no retry;
// failures surface to the caller for inline display.
type Client struct {
	http    *http.Client
	baseURL string
	cfg     Config
}

// NewClient creates an interpreter client. A nil httpClient falls back to
// http.DefaultClient.
func NewClient(httpClient *http.Client, cfg Config) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{http: httpClient, baseURL: baseURL, cfg: cfg}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return strings.TrimSpace(c.cfg.APIKey) != ""
}

const translateSystemPrompt = "You are a professional travel interpreter. " +
	"Translate accurately, preserve meaning and nuance, and keep it natural. " +
	"Return only the translation without extra commentary."

// Translate renders text from the source language into the target language.
func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if !c.Enabled() {
		return "", ErrNoAPIKey
	}
	user := fmt.Sprintf("Translate from %s to %s.\n\nText:\n%s", sourceLang, targetLang, text)
	payload := map[string]any{
		"model": c.cfg.TranslateModel,
		"messages": []map[string]any{
			{"role": "system", "content": translateSystemPrompt},
			{"role": "user", "content": user},
		},
		"max_tokens":  400,
		"temperature": 0.2,
	}
	return c.chatCompletion(ctx, payload)
}

// Transcribe converts recorded audio into text. language is an optional
// hint (e.g. "ko", "ja") that improves accuracy when set.
func (c *Client) Transcribe(ctx context.Context, clip AudioClip, language string) (string, error) {
	if !c.Enabled() {
		return "", ErrNoAPIKey
	}
	if len(clip.Data) == 0 {
		return "", errors.New("interpreter: empty audio clip")
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("model", c.cfg.STTModel); err != nil {
		return "", err
	}
	if language != "" {
		if err := mw.WriteField("language", language); err != nil {
			return "", err
		}
	}
	fw, err := mw.CreateFormFile("file", clip.Filename)
	if err != nil {
		return "", err
	}
	if _, err := fw.Write(clip.Data); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", statusError("transcription", resp)
	}
	var decoded struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	return strings.TrimSpace(decoded.Text), nil
}

// Speak synthesizes text into MP3 bytes with the configured voice.
func (c *Client) Speak(ctx context.Context, text string) ([]byte, error) {
	if !c.Enabled() {
		return nil, ErrNoAPIKey
	}
	payload := map[string]any{
		"model": c.cfg.TTSModel,
		"voice": c.cfg.TTSVoice,
		"input": text,
	}
	buf, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/speech", bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, statusError("speech", resp)
	}
	return io.ReadAll(resp.Body)
}

const ocrPrompt = "Extract all visible text from this image. " +
	"Preserve line breaks. Return only the text. " +
	"If no text is visible, return an empty string."

// ExtractImageText pulls visible text out of an image, preserving line
// breaks. An image with no text yields an empty string.
func (c *Client) ExtractImageText(ctx context.Context, image []byte, mimeType string) (string, error) {
	if !c.Enabled() {
		return "", ErrNoAPIKey
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))
	payload := map[string]any{
		"model": c.cfg.OCRModel,
		"messages": []map[string]any{
			{
				"role": "user",
				"content": []map[string]any{
					{"type": "text", "text": ocrPrompt},
					{"type": "image_url", "image_url": map[string]string{"url": dataURL}},
				},
			},
		},
		"max_tokens":  400,
		"temperature": 0,
	}
	return c.chatCompletion(ctx, payload)
}

// chatCompletion posts a chat payload and returns the first choice's text.
func (c *Client) chatCompletion(ctx context.Context, payload map[string]any) (string, error) {
	buf, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(buf))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", statusError("chat completion", resp)
	}
	var wrapper struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wrapper); err != nil {
		return "", err
	}
	if len(wrapper.Choices) == 0 {
		return "", errors.New("interpreter: empty completion response")
	}
	return strings.TrimSpace(wrapper.Choices[0].Message.Content), nil
}

func statusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("interpreter: %s status %d: %s", op, resp.StatusCode, strings.TrimSpace(string(body)))
}
