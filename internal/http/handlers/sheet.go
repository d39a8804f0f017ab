package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/strokesheet/internal/clients/redis"
	"github.com/yungbote/strokesheet/internal/http/response"
	"github.com/yungbote/strokesheet/internal/modules/practice/sheet"
	"github.com/yungbote/strokesheet/internal/observability"
	"github.com/yungbote/strokesheet/internal/platform/apierr"
	"github.com/yungbote/strokesheet/internal/platform/gcp"
	"github.com/yungbote/strokesheet/internal/platform/logger"
)

const (
	defaultFormCharacters = "你好"
	publishPrefix         = "sheets"
)

type SheetHandlerDeps struct {
	Log     *logger.Logger
	Sheets  sheet.Service
	Cache   redis.SheetCache
	Bucket  gcp.BucketService
	Metrics *observability.Metrics

	DefaultCharacters string
	DefaultCellSize   int
	KeepArtifacts     bool
}

type SheetHandler struct {
	log     *logger.Logger
	sheets  sheet.Service
	cache   redis.SheetCache
	bucket  gcp.BucketService
	metrics *observability.Metrics

	defaultCharacters string
	defaultCellSize   int
	formCharacters    string
	keepArtifacts     bool
}

func NewSheetHandlerWithDeps(deps SheetHandlerDeps) *SheetHandler {
	log := deps.Log
	if log == nil {
		log = logger.NewNop()
	}
	h := &SheetHandler{
		log:               log.With("handler", "SheetHandler"),
		sheets:            deps.Sheets,
		cache:             deps.Cache,
		bucket:            deps.Bucket,
		metrics:           deps.Metrics,
		defaultCharacters: strings.TrimSpace(deps.DefaultCharacters),
		defaultCellSize:   deps.DefaultCellSize,
		formCharacters:    defaultFormCharacters,
		keepArtifacts:     deps.KeepArtifacts,
	}
	if h.defaultCharacters == "" {
		h.defaultCharacters = "X"
	}
	if h.defaultCellSize == 0 {
		h.defaultCellSize = 10
	}
	return h
}

// Generate handles the form post: chars and size fall back to defaults when
// blank, seed is optional. The PDF is returned inline.
func (h *SheetHandler) Generate(c *gin.Context) {
	chars := strings.TrimSpace(c.PostForm("chars"))
	if chars == "" {
		chars = h.defaultCharacters
	}
	size := h.defaultCellSize
	if raw := strings.TrimSpace(c.PostForm("size")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_size", fmt.Errorf("size %q is not an integer", raw))
			return
		}
		size = n
	}
	seed, err := parseSeed(c.PostForm("seed"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_seed", err)
		return
	}

	pdf, err := h.render(c.Request.Context(), sheet.Request{Characters: chars, CellSize: size, Seed: seed})
	if err != nil {
		h.log.Warn("Sheet generation failed", "error", err)
		response.RespondAPIError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="sheet.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

type publishRequest struct {
	Characters string `json:"characters"`
	CellSize   int    `json:"cell_size"`
	Seed       *int64 `json:"seed,omitempty"`
}

type publishResponse struct {
	RunID  string `json:"run_id"`
	URL    string `json:"url"`
	Header string `json:"header"`
	Cells  int    `json:"cells"`
}

// Publish generates a sheet and uploads the PDF to the sheet bucket.
func (h *SheetHandler) Publish(c *gin.Context) {
	if h.bucket == nil {
		response.RespondError(c, http.StatusServiceUnavailable, "publishing_disabled", fmt.Errorf("no sheet bucket configured"))
		return
	}
	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.CellSize == 0 {
		req.CellSize = h.defaultCellSize
	}

	ctx := c.Request.Context()
	res, err := h.generate(ctx, sheet.Request{Characters: req.Characters, CellSize: req.CellSize, Seed: req.Seed})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	defer h.cleanup(res)

	pdf, err := os.ReadFile(res.PDFPath)
	if err != nil {
		response.RespondAPIError(c, fmt.Errorf("read pdf: %w", err))
		return
	}
	key := path.Join(publishPrefix, res.RunID.String()+".pdf")
	if err := h.bucket.UploadFile(ctx, gcp.BucketCategorySheet, key, bytes.NewReader(pdf)); err != nil {
		h.log.Error("Sheet upload failed", "run_id", res.RunID.String(), "error", err)
		response.RespondAPIError(c, apierr.New(http.StatusBadGateway, "upload_failed", err))
		return
	}
	response.RespondOK(c, publishResponse{
		RunID:  res.RunID.String(),
		URL:    h.bucket.GetPublicURL(gcp.BucketCategorySheet, key),
		Header: res.Page.Header,
		Cells:  len(res.Page.Placements),
	})
}

// render returns the PDF bytes, going through the sheet cache for seeded
// requests.
func (h *SheetHandler) render(ctx context.Context, req sheet.Request) ([]byte, error) {
	var cacheKey string
	if h.cache != nil && req.Seed != nil {
		cacheKey = redis.SheetKey(sheet.Canonical(req.Characters), req.CellSize, *req.Seed, h.sheets.CacheTag())
		if pdf, ok, err := h.cache.Get(ctx, cacheKey); err != nil {
			h.log.Warn("Sheet cache read failed (ignored)", "error", err)
		} else if ok {
			h.log.Debug("Sheet cache hit", "key", cacheKey)
			return pdf, nil
		}
	}

	res, err := h.generate(ctx, req)
	if err != nil {
		return nil, err
	}
	defer h.cleanup(res)

	pdf, err := os.ReadFile(res.PDFPath)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	if cacheKey != "" {
		if err := h.cache.Set(ctx, cacheKey, pdf); err != nil {
			h.log.Warn("Sheet cache write failed (ignored)", "error", err)
		}
	}
	return pdf, nil
}

func (h *SheetHandler) generate(ctx context.Context, req sheet.Request) (*sheet.Result, error) {
	req.KeepArtifacts = h.keepArtifacts
	start := time.Now()
	res, err := h.sheets.Generate(ctx, req)
	if err != nil {
		h.metrics.ObserveSheet("error", time.Since(start), 0, 0)
		return nil, err
	}
	h.metrics.ObserveSheet("ok", time.Since(start), res.Stats.Renders, res.Stats.Hits)
	return res, nil
}

func (h *SheetHandler) cleanup(res *sheet.Result) {
	if h.keepArtifacts {
		return
	}
	if err := res.Cleanup(); err != nil {
		h.log.Warn("Failed to remove run dir (ignored)", "run_id", res.RunID.String(), "error", err)
	}
}

func parseSeed(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("seed %q is not an integer", raw)
	}
	return &v, nil
}
