package api

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"github.com/weareasocialyazilim/travelmatch-moderation/models"
)

// audit publishes the moderation decision to Kafka. Runs in the
// background so a slow broker never delays the response.
func (api *API) audit(reqID, text string, result models.Result) {
	if api.kw == nil {
		return
	}

	entry := AuditEntry{
		Timestamp:  time.Now(),
		RequestID:  reqID,
		TextSHA:    textSHA(text),
		Blocked:    result.Blocked,
		Severity:   result.Severity.String(),
		Categories: categoriesOf(result),
		Service:    api.ServiceName,
	}

	go func() {
		jsonEntry, err := json.Marshal(entry)
		if err != nil {
			log.Errorf("[audit] failed to marshal audit entry for request %s", entry.RequestID)
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err = api.kw.WriteMessages(ctx, kafka.Message{Value: jsonEntry})
		if err != nil {
			log.Errorf("[audit] failed to write audit entry to Kafka: %v", err)
			return
		}
		log.Debugf("[audit] audit entry sent to Kafka request_id:%s", entry.RequestID)
	}()
}

// textSHA returns the first 16 hex characters of the SHA-256 digest, enough
// to correlate repeated submissions without storing user text.
func textSHA(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:8])
}

func categoriesOf(result models.Result) []string {
	seen := make(map[models.Category]bool, len(result.Violations))
	categories := make([]string, 0, len(result.Violations))
	for _, v := range result.Violations {
		if seen[v.Category] {
			continue
		}
		seen[v.Category] = true
		categories = append(categories, string(v.Category))
	}
	return categories
}
