package controller

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"techgear-support-be/internal/dto"
	"techgear-support-be/internal/pkg/serverutils"
	"techgear-support-be/internal/service"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
	Info(ctx *fiber.Ctx) error
}

type chatController struct {
	supportService service.ISupportService
}

func NewChatController(supportService service.ISupportService) IChatController {
	return &chatController{
		supportService: supportService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("", c.Chat)
	h.Get("health", c.Health)
	h.Get("info", c.Info)

	// Websocket variant of the chat endpoint for live widgets.
	h.Use("ws", func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	h.Get("ws", websocket.New(c.socket))
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.supportService.Chat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *chatController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Health", c.supportService.Health()))
}

func (c *chatController) Info(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Info", c.supportService.Info()))
}

// socket runs the same turn pipeline over a websocket. Each text frame is one
// ChatRequest; each reply frame is one ChatResponse. The session token rides
// in the payload, same as the HTTP endpoint.
func (c *chatController) socket(conn *websocket.Conn) {
	defer conn.Close()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var req dto.ChatRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			c.writeSocketError(conn, "invalid message format")
			continue
		}

		if err := serverutils.ValidateRequest(req); err != nil {
			c.writeSocketError(conn, err.Error())
			continue
		}

		res, err := c.supportService.Chat(context.Background(), &req)
		if err != nil {
			c.writeSocketError(conn, "unable to process message")
			continue
		}

		out, err := json.Marshal(res)
		if err != nil {
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
			return
		}
	}
}

func (c *chatController) writeSocketError(conn *websocket.Conn, message string) {
	payload, _ := json.Marshal(fiber.Map{"error": message})
	_ = conn.WriteMessage(websocket.TextMessage, payload)
}
