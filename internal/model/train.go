package model

import "time"

// Train represents a physical train set.  A train owns an ordered
// list of carriages; every scheduled trip of the train reuses the
// same carriage and seat layout.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – human readable train name (e.g. "IC 502").
//  CarriageCount – number of carriages provisioned for this train.
//  IsActive      – whether the train is in service.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Train struct {
	ID            string    // trains.id
	Name          string    // trains.name
	CarriageCount uint32    // trains.carriage_count
	IsActive      bool      // trains.is_active
	CreatedAt     time.Time // trains.created_at
	UpdatedAt     time.Time // trains.updated_at
}
