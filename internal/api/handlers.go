package api

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ironsheep/synthgen/internal/corpus"
	"github.com/ironsheep/synthgen/internal/synth"
)

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type assetsRequest struct {
	BackgroundDir string `json:"background_dir" binding:"required"`
	ObjectDir     string `json:"object_dir" binding:"required"`
}

// assetsHandler lists the files a run over the given directories would sample.
// Empty lists are reported rather than treated as errors.
func assetsHandler(c *gin.Context) {
	var req assetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reg := corpus.NewDirRegistry(req.BackgroundDir, req.ObjectDir)
	bgs, err := reg.Backgrounds()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	objs, err := reg.Objects()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"backgrounds":      bgs,
		"objects":          objs,
		"background_count": len(bgs),
		"object_count":     len(objs),
	})
}

// generateHandler runs one batch synchronously. The body uses the
// synth.Config JSON fields over the defaults.
func generateHandler(c *gin.Context) {
	cfg := synth.DefaultConfig()
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gen, err := synth.NewGenerator(cfg, nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := gen.Run(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error(), "summary": summary})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// statusFor maps a run error to an HTTP status.
func statusFor(err error) int {
	var empty *corpus.EmptyCorpusError
	switch {
	case errors.As(err, &empty):
		return http.StatusUnprocessableEntity
	case errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
