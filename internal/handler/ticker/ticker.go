package ticker

import (
	"net/http"

	"signalboard/internal/service"
	"signalboard/pkg/logger"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// TickerHandler 把模拟行情通过websocket推给前端报价栏
type TickerHandler struct {
	service  *service.TickerService
	upgrader websocket.Upgrader
}

func NewTickerHandler(service *service.TickerService) *TickerHandler {
	return &TickerHandler{
		service: service,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS 连接建立后先推一帧当前快照，之后跟随行情广播
func (handler *TickerHandler) ServeWS(c *gin.Context) {
	conn, err := handler.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("行情ws升级失败: %v", err)
		return
	}
	defer conn.Close()

	ch, cancel := handler.service.Subscribe()
	defer cancel()

	if err := writeSnapshot(conn, handler.service.Snapshot()); err != nil {
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case snapshot, ok := <-ch:
			if !ok {
				return
			}
			if err := writeSnapshot(conn, snapshot); err != nil {
				return
			}
		}
	}
}

func writeSnapshot(conn *websocket.Conn, snapshot interface{}) error {
	data, err := json.Marshal(map[string]interface{}{
		"action": "price_update",
		"data":   snapshot,
	})
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}
