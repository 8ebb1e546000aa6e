package wheel

import (
	"context"
	"errors"
	"fmt"
	dto "fortune_wheel/internal/api/dto/wheel"
	"fortune_wheel/internal/converter"
	"fortune_wheel/internal/repository"
	"fortune_wheel/internal/service"
	wheelServ "fortune_wheel/internal/service/wheel"
	"fortune_wheel/internal/wheel"
	"fortune_wheel/pkg/req"
	"fortune_wheel/pkg/resp"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

const (
	defaultResultWait = 30 * time.Second
	maxResultWait     = 2 * time.Minute
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type HandlerDeps struct {
	Serv service.WheelService
	Log  *zap.Logger
}

type Handler struct {
	serv service.WheelService
	log  *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{serv: deps.Serv, log: log}
}

// Create builds a wheel from the request body.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.CreateWheelRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	settings, err := converter.ToWheelSettings(payload)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	v, err := h.serv.Create(r.Context(), settings)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToWheelResponse(*v))
}

func (h *Handler) CreateFromPreset(w http.ResponseWriter, r *http.Request) {
	v, err := h.serv.CreateFromPreset(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.writeErr(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToWheelResponse(*v))
}

func (h *Handler) Presets(w http.ResponseWriter, _ *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToPresetResponses(h.serv.Presets()))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	v, err := h.serv.Get(r.Context(), id)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToWheelResponse(*v))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.serv.Delete(r.Context(), id); err != nil {
		h.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Spin starts a spin and answers before it settles.
func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	started, err := h.serv.Spin(r.Context(), id)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusAccepted, converter.ToSpinResponse(*started))
}

// Result waits for a spin in flight, up to ?wait= (default 30s), and returns
// the latest result.
func (h *Handler) Result(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	wait := defaultResultWait
	if raw := r.URL.Query().Get("wait"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 || d > maxResultWait {
			resp.WriteError(w, http.StatusBadRequest, fmt.Sprintf("wait must be a duration up to %s", maxResultWait))
			return
		}
		wait = d
	}

	ctx, cancel := context.WithTimeout(r.Context(), wait)
	defer cancel()
	res, err := h.serv.Result(ctx, id)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToResultResponse(*res))
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.serv.Reset(r.Context(), id); err != nil {
		h.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Events streams tick, settle and reset events as server-sent events.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		resp.WriteError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	events, err := h.serv.Watch(r.Context(), id)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for ev := range events {
		data, err := json.Marshal(converter.ToEventResponse(ev))
		if err != nil {
			h.log.Error("encode wheel event", zap.Error(err))
			return
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Kind, data); err != nil {
			return
		}
		flusher.Flush()
	}
}

// Image renders the wheel as PNG at ?angle=, or at its current rotation.
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var angle *float64
	if raw := r.URL.Query().Get("angle"); raw != "" {
		a, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			resp.WriteError(w, http.StatusBadRequest, "invalid angle")
			return
		}
		angle = &a
	}

	w.Header().Set("Content-Type", "image/png")
	if err := h.serv.RenderPNG(r.Context(), id, angle, w); err != nil {
		w.Header().Del("Content-Type")
		h.writeErr(w, err)
	}
}

func (h *Handler) QR(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	png, err := h.serv.ShareQR(r.Context(), id)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid wheel id")
		return uuid.Nil, false
	}
	return id, true
}

// writeErr maps service errors onto HTTP status codes.
func (h *Handler) writeErr(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, wheel.ErrConfiguration):
		status = http.StatusBadRequest
	case errors.Is(err, wheel.ErrClosed):
		status = http.StatusServiceUnavailable
	case errors.Is(err, wheel.ErrState):
		status = http.StatusConflict
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, wheelServ.ErrPresetNotFound):
		status = http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", zap.Error(err))
		resp.WriteError(w, status, "internal error")
		return
	}
	resp.WriteError(w, status, err.Error())
}
