// Package models holds the GORM persistence models. Domain aggregates carry
// no ORM tags; each model converts to and from its aggregate with ToDomain
// and FromDomain, and free-form attributes are stored as JSON documents.
package models
