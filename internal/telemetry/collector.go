package telemetry

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"gorm.io/datatypes"

	"ulp_backend/internal/logger"
	"ulp_backend/internal/models"
	"ulp_backend/internal/repositories"
	"ulp_backend/internal/tracking"
)

// Submission - событие в очереди вместе с данными запроса,
// нужными для дообогащения.
type Submission struct {
	Event     *models.Event
	UserAgent string
	IP        string
}

// Collector принимает события и пишет их в фоне. Enqueue никогда не
// блокирует вызывающий запрос: переполненная очередь роняет событие
// с warning-логом, а не задерживает ответ клиенту.
type Collector struct {
	eventRepo repositories.EventRepository
	geo       *tracking.GeoClient

	queue chan Submission
	wg    sync.WaitGroup

	// mu закрывает и seen, и жизненный цикл очереди: Enqueue после
	// Close обязан тихо отбросить событие, а не паниковать на send
	// в закрытый канал.
	mu     sync.Mutex
	closed bool
	seen   map[string]struct{}
}

func NewCollector(eventRepo repositories.EventRepository, geo *tracking.GeoClient, queueSize int) *Collector {
	c := &Collector{
		eventRepo: eventRepo,
		geo:       geo,
		queue:     make(chan Submission, queueSize),
		seen:      make(map[string]struct{}),
	}
	c.wg.Add(1)
	go c.run()
	return c
}

// Enqueue ставит событие в очередь на запись. Возвращает false, если
// событие потеряно: очередь переполнена или коллектор уже остановлен
// (запрос пришел в окно shutdown).
func (c *Collector) Enqueue(sub Submission) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		logger.Warn("telemetry collector closed, event dropped",
			"visitor_id", sub.Event.VisitorID,
			"event_type", sub.Event.EventType,
		)
		return false
	}

	select {
	case c.queue <- sub:
		return true
	default:
		logger.Warn("telemetry queue full, event dropped",
			"visitor_id", sub.Event.VisitorID,
			"event_type", sub.Event.EventType,
		)
		return false
	}
}

// Close останавливает воркер, дописав все события из очереди.
// Повторный вызов безопасен.
func (c *Collector) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.queue)
	c.mu.Unlock()

	c.wg.Wait()
}

func (c *Collector) run() {
	defer c.wg.Done()
	for sub := range c.queue {
		c.process(sub)
	}
	logger.Info("telemetry collector stopped")
}

func (c *Collector) process(sub Submission) {
	event := sub.Event

	if event.EventType == models.EventTypePageView && c.alreadySeen(event) {
		logger.Debug("duplicate page view suppressed",
			"visitor_id", event.VisitorID,
			"page_slug", event.PageSlug,
		)
		return
	}

	c.enrich(sub)

	if err := c.eventRepo.Create(event); err != nil {
		// Fire-and-forget: потеря события не должна никого ронять
		logger.Error("failed to persist event",
			"visitor_id", event.VisitorID,
			"event_type", event.EventType,
			"error", err.Error(),
		)
		return
	}
	logger.Debug("event persisted", "event_id", event.ID, "event_type", event.EventType)
}

func (c *Collector) alreadySeen(event *models.Event) bool {
	key := event.VisitorID + "|" + event.PageSlug + "|" + event.QueryParam

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.seen[key]; ok {
		return true
	}
	c.seen[key] = struct{}{}
	return false
}

// enrich дополняет событие дескриптором устройства и геолокацией,
// если клиент их не прислал. Оба шага best-effort.
func (c *Collector) enrich(sub Submission) {
	event := sub.Event

	if len(event.DeviceInfo) == 0 {
		if info := tracking.ParseUserAgent(sub.UserAgent); info != nil {
			if encoded, err := json.Marshal(info); err == nil {
				event.DeviceInfo = datatypes.JSON(encoded)
			}
		}
	}

	if len(event.Geolocation) == 0 && c.geo != nil && tracking.IsPublicIP(sub.IP) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		geo, err := c.geo.Lookup(ctx, sub.IP)
		if err != nil {
			logger.Debug("geolocation lookup failed", "ip", sub.IP, "error", err.Error())
			return
		}
		if encoded, err := json.Marshal(geo); err == nil {
			event.Geolocation = datatypes.JSON(encoded)
		}
	}
}
