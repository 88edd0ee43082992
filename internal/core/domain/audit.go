package domain

import "time"

// AuditEntry records a mutating action performed through the console. Unlike
// every other record in this package it is owned by the console itself, not
// the backend: the remote API exposes no audit endpoint, so the admin audit
// log screen is served from entries written here.
type AuditEntry struct {
	ID     string    `json:"id" bson:"_id,omitempty"`
	Actor  string    `json:"actor" bson:"actor"`
	Role   Role      `json:"role,omitempty" bson:"role,omitempty"`
	Action string    `json:"action" bson:"action"`
	Target string    `json:"target,omitempty" bson:"target,omitempty"`
	Detail string    `json:"detail,omitempty" bson:"detail,omitempty"`
	At     time.Time `json:"at" bson:"at"`
}
