package entity

import "time"

// Company representa una empresa del grupo. ParentID forma un árbol (nil = raíz):
// si está presente debe referenciar una empresa existente y distinta, sin
// introducir ciclos. El resolver de visibilidad depende de esa propiedad.
type Company struct {
	ID        string
	Name      string
	ParentID  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
