package app

import (
	"github.com/dkeye/VirtOffice/internal/domain"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func logMeeting(room domain.RoomName, conn domain.ConnID) *zerolog.Event {
	return log.Info().Str("module", "app.meetings").Str("room", string(room)).Str("conn", string(conn))
}
