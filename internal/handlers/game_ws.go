package handlers

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/chrisq/qonnect-server/internal/qonnect"
)

var commandNargs = map[string]int{
	"g": 2, // generate i j
	"s": 4, // swap ai aj bi bj
	"f": 0, // forfeit
	"b": 0, // board
}

func parseInts(args []string) ([]int, error) {
	ints := make([]int, len(args))
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d must be an int", i+1)
		}
		ints[i] = n
	}
	return ints, nil
}

// executeCommand runs one line of the text protocol against the game.
// The "b" command is read-only and handled by the caller.
func executeCommand(game *qonnect.GameState, rnd *rand.Rand, c string) error {
	parts := strings.Split(c, " ")

	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return errors.New("unknown command")
	}
	if nargs != len(parts)-1 {
		return errors.New("invalid number of arguments")
	}

	switch parts[0] {
	case "g":
		args, err := parseInts(parts[1:])
		if err != nil {
			return err
		}
		_, err = game.Apply(qonnect.Generate(args[0], args[1]), rnd)
		return err
	case "s":
		args, err := parseInts(parts[1:])
		if err != nil {
			return err
		}
		a := qonnect.Link{A: args[0], B: args[1]}
		b := qonnect.Link{A: args[2], B: args[3]}
		_, err = game.Apply(qonnect.Swap(a, b), rnd)
		return err
	case "f":
		game.Forfeit()
		return nil
	case "b":
		return nil
	}
	return errors.New("invalid command")
}

func (h GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	session, game, ok := h.fetchSession(w, r)
	if !ok {
		return
	}

	c, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Error("unable to upgrade")
		return
	}
	defer c.Close()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				h.log.WithError(err).Warn("abnormal ws break")
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}

		text := strings.TrimSpace(string(message))
		h.log.Debugf("\t> %s", text)

		dirty := false
		for _, line := range strings.Split(text, "\n") {
			if line == "b" {
				if err := c.WriteMessage(websocket.TextMessage, []byte(game.BoardString())); err != nil {
					h.log.WithError(err).Error("unable to write board")
					return
				}
				continue
			}
			if err := executeCommand(game, h.rnd, line); err != nil {
				if err := c.WriteJSON(wrapError(err)); err != nil {
					h.log.WithError(err).Error("unable to write json")
					return
				}
				continue
			}
			dirty = true
			if game.Over {
				break
			}
		}

		if !dirty {
			continue
		}

		updated, err := h.repo.SaveGame(r.Context(), session, game)
		if err != nil {
			h.log.WithError(err).Error("unable to update session in db")
			return
		}
		session = updated

		if err := c.WriteJSON(NewGameSessionDTO(session, game)); err != nil {
			h.log.WithError(err).Error("unable to write json")
			break
		}
		h.log.Debug("\t< <session data>")
	}
}
