package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/atomsmith/app/database"
	"github.com/lysyi3m/atomsmith/app/tasks"
)

// AtomContentType is sent with every served feed.
const AtomContentType = "application/atom+xml; charset=utf-8"

func NewHandler(site string, artifactRepo database.ArtifactRepository,
	scheduler tasks.TaskSchedulerInterface, newTask tasks.TaskFactory) *Handler {
	return &Handler{
		site:         site,
		artifactRepo: artifactRepo,
		scheduler:    scheduler,
		newTask:      newTask,
	}
}

// GetFeed serves the last built feed stored under the requested destination.
func (h *Handler) GetFeed(c *gin.Context) {
	destination := strings.TrimPrefix(c.Param("path"), "/")
	if destination == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	artifact, err := h.artifactRepo.GetArtifact(destination)
	if err != nil {
		slog.Error("Database error", "operation", "get_artifact", "destination", destination, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	if artifact == nil {
		c.Status(http.StatusNotFound)
		return
	}

	c.Header("X-Feed-Entries", strconv.Itoa(artifact.EntryCount))
	c.Header("X-Last-Built", artifact.BuiltAt.Format(time.RFC3339))
	c.Header("ETag", `"`+artifact.ContentHash+`"`)

	if match := c.GetHeader("If-None-Match"); match != "" && match == `"`+artifact.ContentHash+`"` {
		c.Status(http.StatusNotModified)
		return
	}

	c.Data(http.StatusOK, AtomContentType, []byte(artifact.Contents))
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"site":      h.site,
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if count, err := h.artifactRepo.GetArtifactCount(); err == nil {
		health["feeds"] = count
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) APIListFeeds(c *gin.Context) {
	artifacts, err := h.artifactRepo.ListArtifacts()
	if err != nil {
		slog.Error("Database error", "operation", "list_artifacts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	feeds := make([]map[string]interface{}, 0, len(artifacts))
	for _, artifact := range artifacts {
		feeds = append(feeds, map[string]interface{}{
			"destination":  artifact.Destination,
			"url":          "/feeds/" + artifact.Destination,
			"entries":      artifact.EntryCount,
			"content_hash": artifact.ContentHash,
			"built_at":     artifact.BuiltAt,
		})
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"feeds": feeds,
		"total": len(feeds),
	})
}

// APIRebuild queues an immediate site build.
func (h *Handler) APIRebuild(c *gin.Context) {
	task := h.newTask()
	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Error enqueueing build task", "site", h.site, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Failed to enqueue build task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"message": "Build task enqueued",
		"task": gin.H{
			"id":   task.GetID(),
			"type": task.GetType(),
			"site": task.GetSite(),
		},
	})
}
