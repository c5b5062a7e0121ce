package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ApollonSMK/MEXperience-sub000/internal/stream"
)

// FeedHandler expose l'état fusionné du flux temps réel : la vue que
// les caisses reconstruisent localement, servie ici pour le rattrapage
// après reconnexion.
type FeedHandler struct {
	feed *stream.Feed
}

func NewFeedHandler(feed *stream.Feed) *FeedHandler {
	return &FeedHandler{feed: feed}
}

func (h *FeedHandler) Snapshot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"appointments": h.feed.Snapshot(),
	})
}
