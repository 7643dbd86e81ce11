package controller

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"collabsphere_backend/internals/features/chat/dto"
	"collabsphere_backend/internals/features/chat/service"
	helper "collabsphere_backend/internals/helpers"
	authmw "collabsphere_backend/internals/middlewares/auth"
	"collabsphere_backend/internals/policy"
	"collabsphere_backend/internals/realtime"
)

type ChatController struct {
	Service *service.Service
	Hub     *realtime.Hub
}

func NewChatController(db *gorm.DB, hub *realtime.Hub) *ChatController {
	return &ChatController{Service: service.NewService(db), Hub: hub}
}

// GET /api/teams/:id/messages (+ ?since=RFC3339)
func (ctl *ChatController) History(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	teamID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid team id")
	}

	var msgs []dto.MessageResponse
	if raw := c.Query("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "since must be RFC3339")
		}
		msgs, err = ctl.Service.GetRecentMessages(c.UserContext(), actor, teamID, since)
		if err != nil {
			return helper.FromError(c, err)
		}
	} else {
		msgs, err = ctl.Service.GetTeamMessages(c.UserContext(), actor, teamID)
		if err != nil {
			return helper.FromError(c, err)
		}
	}
	return helper.Success(c, "Messages retrieved successfully", msgs)
}

// Upgrade rejects plain HTTP requests on the websocket endpoint.
func (ctl *ChatController) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Websocket handles /ws/chat/:team_id. Inbound frames are persisted and then
// fanned out to every connection on the team's chat topic.
func (ctl *ChatController) Websocket() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		defer conn.Close()

		actor, ok := actorFromConn(conn)
		if !ok {
			return
		}
		teamID, err := uuid.Parse(conn.Params("team_id"))
		if err != nil {
			return
		}

		ctx := context.Background()
		allowed, err := ctl.Service.CanAccessTeam(ctx, actor, teamID)
		if err != nil || !allowed {
			return
		}

		topic := realtime.ChatTopic(teamID)
		sub := ctl.Hub.Subscribe(topic)
		defer ctl.Hub.Unsubscribe(sub)

		// Writer drains the topic until Unsubscribe closes the channel.
		go func() {
			for data := range sub.C {
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					return
				}
			}
		}()

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				break
			}
			var in dto.InboundMessage
			if err := json.Unmarshal(raw, &in); err != nil {
				continue
			}
			msg, err := ctl.Service.SendMessage(ctx, actor, teamID, in.Content)
			if err != nil {
				log.Printf("[WARN] chat send on %s: %v", topic, err)
				continue
			}
			ctl.Hub.Publish(topic, msg)
		}
	})
}

func actorFromConn(conn *websocket.Conn) (policy.Actor, bool) {
	idStr, _ := conn.Locals("user_id").(string)
	role, _ := conn.Locals("user_role").(string)
	id, err := uuid.Parse(idStr)
	if err != nil || role == "" {
		return policy.Actor{}, false
	}
	return policy.Actor{ID: id, Role: role}, true
}
