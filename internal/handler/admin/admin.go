package admin

import (
	"context"
	"net/http"
	"sync"

	"signalboard/conf"
	"signalboard/internal/model"
	"signalboard/internal/service"
	"signalboard/pkg/errors"
	"signalboard/pkg/errors/ecode"
	"signalboard/pkg/kafka"
	"signalboard/pkg/logger"
	"signalboard/pkg/response"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// AdminHandler 管理端：用户总览 + 活动事件实时推送。
// 活动事件由业务侧写入kafka，这里消费后广播给所有在线的管理端连接
type AdminHandler struct {
	service  service.AdminService
	consumer kafka.ConsumerService

	mu      sync.RWMutex
	clients map[*websocket.Conn]chan []byte

	upgrader websocket.Upgrader

	startOnce sync.Once
}

func NewAdminHandler(service service.AdminService, consumer kafka.ConsumerService) *AdminHandler {
	return &AdminHandler{
		service:  service,
		consumer: consumer,
		clients:  make(map[*websocket.Conn]chan []byte),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// @Summary		用户总览
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 管理员令牌"
// @Param			search			query		string	false	"username/email/IP子串过滤"
// @Success		200				{object}	response.ApiResponse{data=model.AdminUserListRes}
// @Router			/api/v1/admin/users [get]
func (handler *AdminHandler) UserGetList() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.AdminUserListReq
		if err := ctx.ShouldBindQuery(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "请求参数错误"), nil)
			return
		}
		res, err := handler.service.AdminUserList(ctx, req)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.DatabaseErr, "用户列表查询失败"), nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// ServeActivityWS 管理端实时活动日志，通过websocket推送
func (handler *AdminHandler) ServeActivityWS(c *gin.Context) {
	conn, err := handler.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("活动日志ws升级失败: %v", err)
		return
	}

	handler.startOnce.Do(func() {
		go handler.consumeLoop(context.Background())
	})

	send := make(chan []byte, 64)
	handler.mu.Lock()
	handler.clients[conn] = send
	handler.mu.Unlock()

	go handler.writeLoop(conn, send)

	// 读循环只用于感知断连
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	handler.removeClient(conn)
}

func (handler *AdminHandler) writeLoop(conn *websocket.Conn, send chan []byte) {
	for data := range send {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			handler.removeClient(conn)
			return
		}
	}
}

func (handler *AdminHandler) removeClient(conn *websocket.Conn) {
	handler.mu.Lock()
	defer handler.mu.Unlock()
	if send, ok := handler.clients[conn]; ok {
		delete(handler.clients, conn)
		close(send)
	}
	_ = conn.Close()
}

// consumeLoop 从kafka消费活动事件并广播。消息不可解析直接丢弃
func (handler *AdminHandler) consumeLoop(ctx context.Context) {
	msgCh, err := handler.consumer.Consume(ctx, conf.AppConfig.Kafka.ActivityTopic, conf.AppConfig.Kafka.GroupID)
	if err != nil {
		logger.Errorf("活动事件消费启动失败: %v", err)
		return
	}
	for msg := range msgCh {
		var event model.ActivityEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			continue
		}
		handler.broadcast(msg.Value)
	}
}

// broadcast 慢消费者直接跳过，不阻塞消费循环
func (handler *AdminHandler) broadcast(data []byte) {
	handler.mu.RLock()
	defer handler.mu.RUnlock()
	for _, send := range handler.clients {
		select {
		case send <- data:
		default:
		}
	}
}
