package model

// ActivityLogLimit caps how many entries a listing returns.
const ActivityLogLimit = 100

type ActivityLog struct {
	ID        int64    `db:"id" json:"id"`
	Entity    *string  `db:"entity" json:"entity"`
	EntityID  *int64   `db:"entity_id" json:"entity_id"`
	Action    *string  `db:"action" json:"action"`
	Details   *string  `db:"details" json:"details"`
	CreatedAt DateTime `db:"created_at" json:"created_at"`
}
