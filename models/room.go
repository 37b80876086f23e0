package models

// Room is a bookable lecture hall. Rooms are provisioned out of band; the
// booking engine only reads them.
type Room struct {
	Name        string `bson:"name" json:"name"` // Unique hall name, e.g. "LT1"
	Capacity    int    `bson:"capacity" json:"capacity"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}
