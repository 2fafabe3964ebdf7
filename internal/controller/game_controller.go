package controller

import (
	"errors"
	"time"

	"chessrelay/internal/model"
	"chessrelay/internal/service"

	"github.com/gofiber/fiber/v2"
)

const matchWaitTimeout = 30 * time.Second

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"gameId": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		status := fiber.StatusConflict
		if errors.Is(err, service.ErrGameNotFound) {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"gameId": gameID,
		"color":  color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	state, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch game state",
		})
	}
	return c.JSON(state)
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.JoinMatchmaking(playerID); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

func (gc *GameController) CancelMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if !gc.gameService.LeaveMatchmaking(playerID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "player not in queue",
		})
	}
	gc.gameService.UnregisterMatchmakingChannel(playerID)
	return c.JSON(fiber.Map{
		"status": "cancelled",
	})
}

// WaitForMatch long-polls for the player's match notification. It answers
// 204 when nothing arrives before the poll window closes; clients simply
// poll again.
func (gc *GameController) WaitForMatch(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	ch := make(chan model.MatchFoundEvent, 1)
	gc.gameService.RegisterMatchmakingChannel(playerID, ch)
	defer gc.gameService.UnregisterMatchmakingChannel(playerID)

	select {
	case event, ok := <-ch:
		if !ok {
			// Superseded by a newer poll from the same player.
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.JSON(event)
	case <-time.After(matchWaitTimeout):
		return c.SendStatus(fiber.StatusNoContent)
	case <-c.Context().Done():
		return nil
	}
}
