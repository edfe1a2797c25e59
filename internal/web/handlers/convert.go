package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jusunglee/hangulnum/internal/db"
	"github.com/jusunglee/hangulnum/internal/metrics"
	"github.com/jusunglee/hangulnum/internal/numeral"
	"github.com/jusunglee/hangulnum/internal/transliteration"
	"github.com/samber/lo"
)

const maxBatchSize = 100

type ConvertHandler struct {
	repo db.Repository
	log  *slog.Logger
}

// NewConvertHandler builds the encode/decode handler. repo may be nil, in
// which case conversions are not recorded.
func NewConvertHandler(repo db.Repository, log *slog.Logger) *ConvertHandler {
	return &ConvertHandler{repo: repo, log: log}
}

type encodeOptionsRequest struct {
	ZeroChar                    *string `json:"zero_char"`
	OmitOneForSmallUnits        *bool   `json:"omit_one_for_small_units"`
	OmitOneForLargeUnits        *bool   `json:"omit_one_for_large_units"`
	UseSpacingBetweenLargeUnits *bool   `json:"use_spacing_between_large_units"`
	NegativeWord                *string `json:"negative_word"`
}

func (o *encodeOptionsRequest) options() numeral.EncodeOptions {
	opts := numeral.DefaultEncodeOptions()
	if o == nil {
		return opts
	}
	if o.ZeroChar != nil {
		opts.ZeroChar = *o.ZeroChar
	}
	if o.OmitOneForSmallUnits != nil {
		opts.KeepOneForSmallUnits = !*o.OmitOneForSmallUnits
	}
	if o.OmitOneForLargeUnits != nil {
		opts.KeepOneForLargeUnits = !*o.OmitOneForLargeUnits
	}
	if o.UseSpacingBetweenLargeUnits != nil {
		opts.UseSpacingBetweenLargeUnits = *o.UseSpacingBetweenLargeUnits
	}
	if o.NegativeWord != nil {
		opts.NegativeWord = *o.NegativeWord
	}
	return opts
}

type decodeOptionsRequest struct {
	ZeroChar     string `json:"zero_char"`
	NegativeWord string `json:"negative_word"`
	Output       string `json:"output"`
}

func (o *decodeOptionsRequest) options() (numeral.DecodeOptions, error) {
	opts := numeral.DefaultDecodeOptions()
	if o == nil {
		return opts, nil
	}
	if o.ZeroChar != "" {
		opts.ZeroChar = o.ZeroChar
	}
	if o.NegativeWord != "" {
		opts.NegativeWord = o.NegativeWord
	}
	mode, err := numeral.ParseOutputMode(o.Output)
	if err != nil {
		return opts, err
	}
	opts.Output = mode
	return opts, nil
}

type encodeRequest struct {
	Value   any                   `json:"value"`
	Options *encodeOptionsRequest `json:"options"`
}

type encodeResponse struct {
	Text      string `json:"text"`
	Romanized string `json:"romanized"`
}

type batchEncodeRequest struct {
	Values  []any                 `json:"values"`
	Options *encodeOptionsRequest `json:"options"`
}

type batchEncodeResult struct {
	Value any    `json:"value"`
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

type batchEncodeResponse struct {
	Results []batchEncodeResult `json:"results"`
}

type decodeRequest struct {
	Text    any                   `json:"text"`
	Options *decodeOptionsRequest `json:"options"`
}

type decodeResponse struct {
	Value any `json:"value"`
}

func (h *ConvertHandler) Encode(w http.ResponseWriter, r *http.Request) {
	var req encodeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	n, err := numeral.Normalize(req.Value)
	var text string
	if err == nil {
		text, err = numeral.EncodeInt(n, req.Options.options())
	}
	metrics.ObserveConversion(string(db.DirectionEncode), "web", err)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	h.record(r.Context(), db.DirectionEncode, n.String(), text)

	writeJSON(w, http.StatusOK, encodeResponse{
		Text:      text,
		Romanized: transliteration.Romanize(text),
	})
}

func (h *ConvertHandler) EncodeBatch(w http.ResponseWriter, r *http.Request) {
	var req batchEncodeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Values) == 0 {
		writeError(w, http.StatusBadRequest, "values must not be empty")
		return
	}
	if len(req.Values) > maxBatchSize {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("at most %d values per batch", maxBatchSize))
		return
	}

	opts := req.Options.options()
	results := lo.Map(req.Values, func(v any, _ int) batchEncodeResult {
		text, err := numeral.Encode(v, opts)
		metrics.ObserveConversion(string(db.DirectionEncode), "web", err)
		if err != nil {
			return batchEncodeResult{Value: v, Error: err.Error()}
		}
		return batchEncodeResult{Value: v, Text: text}
	})

	writeJSON(w, http.StatusOK, batchEncodeResponse{Results: results})
}

func (h *ConvertHandler) Decode(w http.ResponseWriter, r *http.Request) {
	var req decodeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	opts, err := req.Options.options()
	var value any
	if err == nil {
		value, err = numeral.Decode(req.Text, opts)
	}
	metrics.ObserveConversion(string(db.DirectionDecode), "web", err)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	h.record(r.Context(), db.DirectionDecode, req.Text.(string), fmt.Sprint(value))

	writeJSON(w, http.StatusOK, decodeResponse{Value: value})
}

// record stores a successful conversion. Failures are logged, not returned:
// history is best effort.
func (h *ConvertHandler) record(ctx context.Context, direction db.Direction, input, output string) {
	if h.repo == nil {
		return
	}
	_, err := h.repo.RecordConversion(ctx, db.RecordConversionParams{
		Direction: direction,
		Surface:   "web",
		Input:     input,
		Output:    output,
	})
	if err != nil {
		metrics.HistoryWritesTotal.WithLabelValues("error").Inc()
		h.log.ErrorContext(ctx, "recording conversion", "direction", direction, "error", err)
		return
	}
	metrics.HistoryWritesTotal.WithLabelValues("success").Inc()
}
