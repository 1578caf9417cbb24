package entity

import "github.com/google/uuid"

// Identity is the opaque handle for the signed-in staff member. It is produced
// by the external session mechanism; the core only reads its id.
type Identity struct {
	ID    uuid.UUID // Unique id of the signed-in user.
	Email string    // Contact email carried along for display purposes.
}
