package handler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/library-portal/internal/dto"
	"github.com/noah-isme/library-portal/internal/models"
	"github.com/noah-isme/library-portal/internal/service"
)

const liveWriteTimeout = 10 * time.Second

// LiveHandler runs interactive listing sessions over a websocket: the browser
// changes filters or navigates, the server pushes the new listing state.
type LiveHandler struct {
	catalog        *service.CatalogService
	validator      *validator.Validate
	metrics        *service.MetricsService
	logger         *zap.Logger
	originPatterns []string
}

// NewLiveHandler constructs the handler. originPatterns restricts cross-origin
// upgrades; same-origin requests are always accepted.
func NewLiveHandler(catalog *service.CatalogService, validate *validator.Validate, metrics *service.MetricsService, logger *zap.Logger, originPatterns []string) *LiveHandler {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LiveHandler{catalog: catalog, validator: validate, metrics: metrics, logger: logger, originPatterns: originPatterns}
}

// Listing upgrades GET /ws/resources/:type and runs the message loop until the
// client disconnects.
func (h *LiveHandler) Listing(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{OriginPatterns: h.originPatterns})
	if err != nil {
		h.logger.Warn("live: websocket accept failed", zap.Error(err))
		return
	}
	defer conn.CloseNow()

	h.metrics.LiveSessionOpened()
	defer h.metrics.LiveSessionClosed()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	session := &liveSession{conn: conn, controller: service.NewPageController(h.catalog), logger: h.logger}
	defer session.controller.Close()

	resourceType := c.Param("type")
	session.navigate(ctx, resourceType, filtersFromRequest(c, h.catalog.Schema(resourceType)))

	for {
		var msg dto.LiveClientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			if status := websocket.CloseStatus(err); status == -1 && !errors.Is(err, context.Canceled) {
				h.logger.Debug("live: read failed", zap.Error(err))
			}
			session.wait()
			return
		}

		if err := h.validator.Struct(msg); err != nil {
			session.send(ctx, dto.LiveServerMessage{Type: dto.LiveError, Data: dto.LiveErrorData{Code: "invalid_message", Message: err.Error()}})
			continue
		}

		switch msg.Type {
		case dto.LiveNavigate:
			session.navigate(ctx, msg.Resource, nil)
		case dto.LiveFilter:
			session.sendState(ctx, session.controller.SetFilter(msg.Field, msg.Value))
		case dto.LivePing:
			session.send(ctx, dto.LiveServerMessage{Type: dto.LivePong})
		}
	}
}

type liveSession struct {
	conn       *websocket.Conn
	controller *service.PageController
	logger     *zap.Logger

	sendMu       sync.Mutex
	sentRevision uint64
	inflight     sync.WaitGroup
}

// navigate pushes the Loading state synchronously and resolves the fetch in
// the background so filter and ping messages keep flowing.
func (s *liveSession) navigate(ctx context.Context, resourceType string, filters models.FilterState) {
	run := s.controller.Start(ctx, models.PageParams{Type: resourceType, Filters: filters})
	s.sendState(ctx, s.controller.State())

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		state, current := run()
		if !current {
			return
		}
		s.sendState(ctx, state)
	}()
}

// sendState drops snapshots of superseded navigations and snapshots older
// than one already written.
func (s *liveSession) sendState(ctx context.Context, state models.PageState) {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if state.Generation != s.controller.Generation() || state.Revision < s.sentRevision {
		return
	}
	s.sentRevision = state.Revision
	s.writeLocked(ctx, dto.LiveServerMessage{Type: dto.LiveState, Data: dto.NewLiveState(state)})
}

func (s *liveSession) send(ctx context.Context, msg dto.LiveServerMessage) {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	s.writeLocked(ctx, msg)
}

func (s *liveSession) writeLocked(ctx context.Context, msg dto.LiveServerMessage) {
	writeCtx, cancel := context.WithTimeout(ctx, liveWriteTimeout)
	defer cancel()
	if err := wsjson.Write(writeCtx, s.conn, msg); err != nil && ctx.Err() == nil {
		s.logger.Debug("live: write failed", zap.String("type", msg.Type), zap.Error(err))
	}
}

func (s *liveSession) wait() {
	s.controller.Close()
	s.inflight.Wait()
}
