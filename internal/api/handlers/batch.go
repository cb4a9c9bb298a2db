package handlers

import (
	"net/http"

	"github.com/anycommerce/storefront/internal/dispatch"
	"github.com/anycommerce/storefront/internal/logging"
	"github.com/gin-gonic/gin"
)

// HandleBatch answers the JSON API endpoint: the body is an array of
// flat request objects, the response an array of documents in the same
// order. Commands that fail execution produce error documents in place.
// A batch that does not decode rejects the whole POST, since clients
// correlate responses to requests by position and a partial decode
// would break the ordering.
func HandleBatch(h *CommandHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var batch []dispatch.Request
		if err := c.ShouldBindJSON(&batch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "invalid batch: " + err.Error(),
			})
			return
		}

		responses := make([]gin.H, 0, len(batch))
		for _, req := range batch {
			doc := h.Execute(req)
			if ok, _ := doc["ok"].(bool); !ok {
				logging.Warn("Command %s failed: %v", req.Cmd, doc["errors"])
			}
			responses = append(responses, doc)
		}

		logging.Debug("Executed batch of %d command(s)", len(batch))
		c.JSON(http.StatusOK, responses)
	}
}
