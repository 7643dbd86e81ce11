package controller

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"collabsphere_backend/internals/features/whiteboard/service"
	helper "collabsphere_backend/internals/helpers"
	authmw "collabsphere_backend/internals/middlewares/auth"
	"collabsphere_backend/internals/policy"
	"collabsphere_backend/internals/realtime"
)

type WhiteboardController struct {
	Service *service.Service
	Hub     *realtime.Hub
}

func NewWhiteboardController(db *gorm.DB, hub *realtime.Hub) *WhiteboardController {
	return &WhiteboardController{Service: service.NewService(db), Hub: hub}
}

// GET /api/teams/:id/whiteboard
func (ctl *WhiteboardController) Get(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	teamID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid team id")
	}
	data, err := ctl.Service.GetSnapshot(c.UserContext(), actor, teamID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Whiteboard retrieved successfully", json.RawMessage(data))
}

// PUT /api/teams/:id/whiteboard
func (ctl *WhiteboardController) Save(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	teamID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid team id")
	}
	body := c.Body()
	if !json.Valid(body) {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Body must be valid JSON")
	}
	if err := ctl.Service.SaveSnapshot(c.UserContext(), actor, teamID, datatypes.JSON(body)); err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Whiteboard saved successfully", nil)
}

// DELETE /api/teams/:id/whiteboard
func (ctl *WhiteboardController) Clear(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	teamID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid team id")
	}
	if err := ctl.Service.ClearSnapshot(c.UserContext(), actor, teamID); err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Whiteboard cleared successfully", nil)
}

// Upgrade rejects plain HTTP requests on the websocket endpoint.
func (ctl *WhiteboardController) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// drawEvent is the relayed frame. The payload passes through untouched; the
// server only stamps sender and time.
type drawEvent struct {
	TeamID    uuid.UUID       `json:"team_id"`
	SenderID  uuid.UUID       `json:"sender_id"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// Websocket handles /ws/whiteboard/:team_id. Frames are relayed to the
// team's board topic; nothing is persisted here.
func (ctl *WhiteboardController) Websocket() fiber.Handler {
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

		topic := realtime.WhiteboardTopic(teamID)
		sub := ctl.Hub.Subscribe(topic)
		defer ctl.Hub.Unsubscribe(sub)

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
			if !json.Valid(raw) {
				continue
			}
			ctl.Hub.Publish(topic, drawEvent{
				TeamID:    teamID,
				SenderID:  actor.ID,
				Payload:   json.RawMessage(raw),
				Timestamp: time.Now(),
			})
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
