package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/minsukim/tripdeck/internal/interpreter"
)

const maxMediaBytes = 25 << 20 // OpenAI audio/image upload ceiling

// Translate handles POST /api/translate. Automatic requests are subject
// to the cooldown gate; explicit ones always go through.
func (h *Handler) Translate(w http.ResponseWriter, r *http.Request) {
	var req TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Text == "" || req.Source == "" || req.Target == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("text, source and target are required"))
		return
	}
	if req.Auto && !h.cooldown.Allow(req.Text) {
		writeJSON(w, http.StatusTooManyRequests, errorBody("auto translate cooling down"))
		return
	}
	translation, err := h.interp.Translate(r.Context(), req.Text, req.Source, req.Target)
	if err != nil {
		h.interpreterError(w, "translate", err)
		return
	}
	writeJSON(w, http.StatusOK, TranslateResponse{Translation: translation})
}

// Transcribe handles POST /api/transcribe (multipart/form-data, field
// "audio", optional field "language").
func (h *Handler) Transcribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxMediaBytes)
	if err := r.ParseMultipartForm(maxMediaBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("audio too large or invalid multipart"))
		return
	}
	file, header, err := r.FormFile("audio")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'audio' field in multipart form"))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read audio"))
		return
	}

	clip := interpreter.AudioClip{
		Data:     data,
		Filename: header.Filename,
		MIME:     header.Header.Get("Content-Type"),
	}
	if clip.Filename == "" {
		clip.Filename = "voice.wav"
	}
	text, err := h.interp.Transcribe(r.Context(), clip, r.FormValue("language"))
	if err != nil {
		h.interpreterError(w, "transcribe", err)
		return
	}
	writeJSON(w, http.StatusOK, TranscriptResponse{Text: text})
}

// Speak handles POST /api/speak and responds with MP3 bytes.
func (h *Handler) Speak(w http.ResponseWriter, r *http.Request) {
	var req SpeakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("text is required"))
		return
	}
	audio, err := h.interp.Speak(r.Context(), req.Text)
	if err != nil {
		h.interpreterError(w, "speak", err)
		return
	}
	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}

// OCR handles POST /api/ocr (multipart/form-data, field "image").
// Extracted text is also translated into the home language so a menu or
// sign photo is readable straight away.
func (h *Handler) OCR(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxMediaBytes)
	if err := r.ParseMultipartForm(maxMediaBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("image too large or invalid multipart"))
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'image' field in multipart form"))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read image"))
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	text, err := h.interp.ExtractImageText(r.Context(), data, mimeType)
	if err != nil {
		h.interpreterError(w, "ocr", err)
		return
	}

	resp := OCRResponse{Text: text}
	if text != "" {
		translation, err := h.interp.Translate(r.Context(), text, "Any", "Korean")
		if err != nil {
			h.interpreterError(w, "ocr translate", err)
			return
		}
		resp.Translation = translation
	}
	writeJSON(w, http.StatusOK, resp)
}

// interpreterError maps interpreter failures onto API statuses: a missing
// key means the feature is disabled, anything else is an upstream failure
// surfaced to the user.
func (h *Handler) interpreterError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, interpreter.ErrNoAPIKey) {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("interpreter is not configured"))
		return
	}
	slog.Error(op+" failed", slog.String("error", err.Error()))
	writeJSON(w, http.StatusBadGateway, errorBody(err.Error()))
}
