package model

import "time"

// Carriage is a single car of a train.  Carriages are ordered by
// their 1-based Index, which is also used by the seat suggestion
// scoring to prefer forward carriages.  A carriage exclusively owns
// its seats.
//
// Fields:
//  ID        – primary key identifier.
//  TrainID   – train to which the carriage belongs.
//  Index     – 1-based position of the carriage in the train.
//  CreatedAt – creation timestamp.
type Carriage struct {
	ID        string    // carriages.id
	TrainID   string    // carriages.train_id
	Index     uint32    // carriages.idx (1-based)
	CreatedAt time.Time // carriages.created_at
}
