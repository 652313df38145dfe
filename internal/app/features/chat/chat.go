package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	"github.com/dalemusser/capstonehub/internal/app/system/ratelimit"
	"github.com/dalemusser/capstonehub/internal/app/system/sanitize"
	"github.com/dalemusser/capstonehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

const (
	systemPromptEN = "You are a helpful assistant for university graduation-project teams. " +
		"Answer questions about project planning, research methods, and academic writing. " +
		"Keep answers concise and practical."
	systemPromptAR = "أنت مساعد مفيد لفرق مشاريع التخرج الجامعية. " +
		"أجب عن الأسئلة المتعلقة بتخطيط المشاريع ومناهج البحث والكتابة الأكاديمية. " +
		"اجعل الإجابات موجزة وعملية."
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages []chatMessage `json:"messages"`
	Language string        `json:"language"`
}

type upstreamRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type upstreamResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Serve handles POST /api/chat. Message content is sanitized before
// the length caps apply, so markup cannot smuggle an oversized payload
// through, and the upstream never sees raw HTML.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ClientIP(r)
	if !h.Limiter.Allow(ip) {
		retry := int(h.Limiter.RetryAfter(ip).Seconds()) + 1
		httpjson.TooManyRequests(w, "Too many chat requests. Please wait before trying again.", retry)
		return
	}

	var req chatRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "chat: decode failed", err, "Invalid request body.")
		return
	}
	if len(req.Messages) == 0 {
		httpjson.Error(w, http.StatusBadRequest, "At least one message is required.")
		return
	}
	if len(req.Messages) > maxMessages {
		httpjson.Error(w, http.StatusBadRequest,
			fmt.Sprintf("Conversations are capped at %d messages.", maxMessages))
		return
	}
	for i := range req.Messages {
		m := &req.Messages[i]
		if m.Role != "user" && m.Role != "assistant" {
			httpjson.Error(w, http.StatusBadRequest, "Message roles must be user or assistant.")
			return
		}
		m.Content = sanitize.Text(m.Content)
		if m.Content == "" {
			httpjson.Error(w, http.StatusBadRequest, "Messages cannot be empty.")
			return
		}
		if len(m.Content) > maxMessageLen {
			httpjson.Error(w, http.StatusBadRequest,
				fmt.Sprintf("Messages are capped at %d characters.", maxMessageLen))
			return
		}
	}

	if h.APIKey == "" || h.UpstreamURL == "" {
		h.Log.Error("chat request with unconfigured upstream")
		httpjson.Error(w, http.StatusInternalServerError, "The chat service is not configured.")
		return
	}

	prompt := systemPromptEN
	if req.Language == "ar" {
		prompt = systemPromptAR
	}
	messages := append([]chatMessage{{Role: "system", Content: prompt}}, req.Messages...)

	reply, status, err := h.complete(r.Context(), messages)
	if err != nil {
		h.ErrLog.LogUpstreamError(w, r, "chat: upstream call failed", err,
			"The chat service is unavailable. Please try again later.")
		return
	}
	if status != http.StatusOK {
		h.Log.Error("chat upstream returned non-200", zap.Int("status", status))
		httpjson.Error(w, http.StatusBadGateway, "The chat service is unavailable. Please try again later.")
		return
	}

	httpjson.Respond(w, http.StatusOK, map[string]any{"reply": reply})
}

// complete posts the conversation upstream and extracts the reply text.
func (h *Handler) complete(ctx context.Context, messages []chatMessage) (string, int, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Upstream())
	defer cancel()

	payload, err := json.Marshal(upstreamRequest{Model: h.Model, Messages: messages})
	if err != nil {
		return "", 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.UpstreamURL, bytes.NewReader(payload))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.APIKey)

	resp, err := h.Client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", resp.StatusCode, nil
	}

	var out upstreamResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", 0, err
	}
	if len(out.Choices) == 0 {
		return "", 0, fmt.Errorf("upstream returned no choices")
	}
	return out.Choices[0].Message.Content, http.StatusOK, nil
}
