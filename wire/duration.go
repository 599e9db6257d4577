package wire

import "trivia/domain"

// Duration is domain.Duration's {"secs","nanos"} wire shape, aliased here
// so wire's own payload structs (CreateRoomPayload, RoomSnapshot) spell it
// as wire.Duration without wire and domain importing each other both ways.
type Duration = domain.Duration
