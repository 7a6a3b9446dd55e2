package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ulp_backend/internal/models"
)

// Запрос, пришедший в окно shutdown, должен тихо потерять событие,
// а не паниковать на send в закрытый канал
func TestCollector_EnqueueAfterClose(t *testing.T) {
	c := NewCollector(nil, nil, 4)
	c.Close()

	event := &models.Event{
		VisitorID: NewVisitorID(),
		EventType: models.EventTypeClick,
		PageURL:   "https://example.com/courses/nios",
		PageSlug:  "nios",
	}
	assert.NotPanics(t, func() {
		assert.False(t, c.Enqueue(Submission{Event: event}))
	})
}

func TestCollector_CloseIsIdempotent(t *testing.T) {
	c := NewCollector(nil, nil, 4)
	c.Close()
	assert.NotPanics(t, func() { c.Close() })
}
