package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cosmos-newsdesk/internal/media"
	"cosmos-newsdesk/internal/model"
	"cosmos-newsdesk/internal/moon"
	"cosmos-newsdesk/internal/retention"
	"cosmos-newsdesk/internal/storage"
	"cosmos-newsdesk/internal/verify"

	"github.com/gin-gonic/gin"
)

// Server exposes the moderation core and the news store over JSON HTTP.
type Server struct {
	addr    string
	store   storage.Store
	media   *media.Store
	policy  *retention.Policy
	checker *verify.CrossChecker // nil disables the cross-check
}

func New(addr string, store storage.Store, m *media.Store, p *retention.Policy, checker *verify.CrossChecker) *Server {
	return &Server{addr: addr, store: store, media: m, policy: p, checker: checker}
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", s.health)
	r.GET("/api/moon", s.moonPhase)
	r.POST("/api/news", s.submitNews)
	r.GET("/api/news", s.listNews)
	r.GET("/api/news/:id", s.getNews)
	r.DELETE("/api/news/:id", s.deleteNews)
	r.POST("/api/cleanup", s.cleanup)
	r.GET("/api/uploads/check", s.checkUploads)
	r.GET("/api/duplicates", s.duplicates)
	r.Static("/uploads", s.media.Dir())
	return r
}

// Start serves until the context is cancelled. Implements worker.Worker.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.Router()}
	errs := make(chan error, 1)
	go func() { errs <- srv.ListenAndServe() }()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "utc": time.Now().UTC().Format(time.RFC3339)})
}

func (s *Server) moonPhase(c *gin.Context) {
	if at := c.Query("at"); at != "" {
		t, err := time.Parse(time.RFC3339, at)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'at' timestamp, want RFC3339"})
			return
		}
		c.JSON(http.StatusOK, moon.At(t))
		return
	}
	c.JSON(http.StatusOK, moon.Now())
}

func (s *Server) submitNews(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	author := strings.TrimSpace(c.PostForm("author"))
	content := strings.TrimSpace(c.PostForm("content"))
	if title == "" || content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and content are required"})
		return
	}

	sub := model.Submission{Title: title, Author: author, Content: content}
	var err error
	if sub.Image, err = s.stageUpload(c, "image", media.Image); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if sub.Audio, err = s.stageUpload(c, "audio", media.Audio); err != nil {
		if sub.Image != "" {
			s.media.Remove(sub.Image)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	decision, item, err := s.policy.Submit(c.Request.Context(), sub)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !decision.Accepted {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"accepted": false,
			"score":    decision.Score,
			"error":    fmt.Sprintf("rejected: fake score %.1f exceeds the threshold", decision.Score),
		})
		return
	}

	resp := gin.H{"accepted": true, "score": decision.Score, "item": item}
	if s.checker != nil {
		if res, ok := s.crossCheck(c.Request.Context(), title, content); ok {
			resp["cross_check"] = res
		}
	}
	c.JSON(http.StatusCreated, resp)
}

// crossCheck runs the advisory embedding comparison. Failures only drop the
// field from the response; they never affect the stored item.
func (s *Server) crossCheck(ctx context.Context, title, content string) (verify.Result, bool) {
	headlines, err := s.store.TrustedHeadlines(ctx)
	if err != nil || len(headlines) == 0 {
		return verify.Result{}, false
	}
	res, err := s.checker.Check(ctx, title+"\n"+content, headlines)
	if err != nil {
		return verify.Result{}, false
	}
	return res, true
}

// stageUpload saves an optional multipart file into the media store and
// returns its stored name. Missing files are not an error.
func (s *Server) stageUpload(c *gin.Context, field string, kind media.Kind) (string, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return "", nil
	}
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s upload: %w", field, err)
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open %s upload: %w", field, err)
	}
	defer f.Close()
	name, err := s.media.Save(kind, fh.Filename, f)
	if err != nil {
		return "", fmt.Errorf("%s upload: %w", field, err)
	}
	return name, nil
}

func (s *Server) listNews(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}
	items, err := s.store.ListNews(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (s *Server) getNews(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	item, err := s.store.GetNews(c.Request.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) deleteNews(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	err = s.policy.Delete(c.Request.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) cleanup(c *gin.Context) {
	rep, err := s.policy.SweepAndPurge(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	purged := rep.PurgedIDs
	if purged == nil {
		purged = []int64{}
	}
	c.JSON(http.StatusOK, gin.H{
		"purged_count": rep.Purged(),
		"purged_ids":   purged,
		"failed":       len(rep.Failures),
	})
}

// checkUploads is a read-only audit: it reports stored media references
// whose files are missing from disk. It never deletes anything.
func (s *Server) checkUploads(c *gin.Context) {
	items, err := s.store.ListNews(c.Request.Context(), 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	missing := []gin.H{}
	for _, it := range items {
		for _, name := range []string{it.Image, it.Audio} {
			if name != "" && !s.media.Exists(name) {
				missing = append(missing, gin.H{"id": it.ID, "missing": name})
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "missing_files": missing})
}

func (s *Server) duplicates(c *gin.Context) {
	items, err := s.store.ListNews(c.Request.Context(), 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	counts := make(map[string]int)
	for _, it := range items {
		counts[it.Title]++
	}
	dups := []gin.H{}
	for title, n := range counts {
		if n > 1 {
			dups = append(dups, gin.H{"title": title, "count": n})
		}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "duplicates": dups})
}
